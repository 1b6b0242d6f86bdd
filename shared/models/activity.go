package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

const (
	EntityTransaction = "Transaction"
	EntityUser        = "User"
)

type DetailsKind string

const (
	DetailsUpdate   DetailsKind = "update"
	DetailsDelete   DetailsKind = "delete"
	DetailsFreeform DetailsKind = "freeform"
)

type TransactionSnapshot struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// ActivityDetails is a tagged variant. Kind selects which of the remaining
// fields is populated.
type ActivityDetails struct {
	Kind               DetailsKind          `json:"kind"`
	Before             *TransactionSnapshot `json:"before,omitempty"`
	After              *TransactionSnapshot `json:"after,omitempty"`
	DeletedTransaction *TransactionSnapshot `json:"deletedTransaction,omitempty"`
	Text               string               `json:"text,omitempty"`
}

func UpdateDetails(before, after TransactionSnapshot) ActivityDetails {
	return ActivityDetails{Kind: DetailsUpdate, Before: &before, After: &after}
}

func DeleteDetails(deleted TransactionSnapshot) ActivityDetails {
	return ActivityDetails{Kind: DetailsDelete, DeletedTransaction: &deleted}
}

func FreeformDetails(text string) ActivityDetails {
	return ActivityDetails{Kind: DetailsFreeform, Text: text}
}

type updatePayload struct {
	Before *TransactionSnapshot `json:"before"`
	After  *TransactionSnapshot `json:"after"`
}

type deletePayload struct {
	DeletedTransaction *TransactionSnapshot `json:"deletedTransaction"`
}

type freeformPayload struct {
	Text string `json:"text"`
}

// Payload encodes the variant body stored next to its kind.
func (d ActivityDetails) Payload() ([]byte, error) {
	switch d.Kind {
	case DetailsUpdate:
		if d.Before == nil || d.After == nil {
			return nil, fmt.Errorf("update details need before and after")
		}
		return json.Marshal(updatePayload{Before: d.Before, After: d.After})
	case DetailsDelete:
		if d.DeletedTransaction == nil {
			return nil, fmt.Errorf("delete details need a snapshot")
		}
		return json.Marshal(deletePayload{DeletedTransaction: d.DeletedTransaction})
	case DetailsFreeform:
		return json.Marshal(freeformPayload{Text: d.Text})
	default:
		return nil, fmt.Errorf("unknown details kind %q", d.Kind)
	}
}

// DecodeActivityDetails rebuilds the variant from a stored kind and payload.
func DecodeActivityDetails(kind DetailsKind, payload []byte) (ActivityDetails, error) {
	d := ActivityDetails{Kind: kind}
	switch kind {
	case DetailsUpdate:
		var p updatePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return d, fmt.Errorf("failed to decode update details: %w", err)
		}
		d.Before, d.After = p.Before, p.After
	case DetailsDelete:
		var p deletePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return d, fmt.Errorf("failed to decode delete details: %w", err)
		}
		d.DeletedTransaction = p.DeletedTransaction
	case DetailsFreeform:
		var p freeformPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return d, fmt.Errorf("failed to decode freeform details: %w", err)
		}
		d.Text = p.Text
	default:
		return d, fmt.Errorf("unknown details kind %q", kind)
	}
	return d, nil
}

// ActivityLog is append-only. UserName is the actor's name at the time of the
// action and is never joined back to the users table.
type ActivityLog struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	UserName   string          `json:"userName"`
	Action     Action          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   int64           `json:"entityId"`
	Details    ActivityDetails `json:"details"`
	CreatedAt  time.Time       `json:"createdAt"`
}
