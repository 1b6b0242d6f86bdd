// Package handler exposes the HTTP endpoints. Handlers decode requests, call a
// command or query service and map its errors onto status codes.
package handler

import (
	"net/http"

	"github.com/eaglebank/expense-ledger/shared/middleware"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/gin-gonic/gin"
)

// currentIdentity returns the authenticated caller. When there is none it
// answers 401 and reports false.
func currentIdentity(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return models.Identity{}, false
	}
	return identity, true
}
