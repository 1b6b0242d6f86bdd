// Package export renders transaction lists as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	sheetName = "Transactions"
)

var header = []string{"id", "date", "user", "userEmail", "type", "category", "description", "amount"}

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"B", "B", 12},
	{"C", "D", 24},
	{"F", "G", 30},
}

// ParseFormat maps a query value to a format. Empty selects CSV.
func ParseFormat(value string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	}
	return "", false
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename is transactions_YYYY-MM-DD.<ext> for the UTC day of now.
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("transactions_%s.%s", now.UTC().Format("2006-01-02"), f)
}

// Write renders rows in format f.
func Write(w io.Writer, f Format, rows []models.TransactionView) error {
	if f == FormatXLSX {
		return WriteXLSX(w, rows)
	}
	return WriteCSV(w, rows)
}

func record(t models.TransactionView) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Date.UTC().Format("2006-01-02"),
		t.User.Name,
		t.User.Email,
		string(t.Type),
		t.Category,
		t.Description,
		t.Amount.StringFixed(2),
	}
}

func WriteCSV(w io.Writer, rows []models.TransactionView) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range rows {
		if err := writer.Write(record(t)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteXLSX(w io.Writer, rows []models.TransactionView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, t := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := record(t)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		// Amount goes in as a number so spreadsheets can sum the column.
		row[len(row)-1] = t.Amount.InexactFloat64()
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	for _, cw := range columnWidths {
		if err := f.SetColWidth(sheetName, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("failed to size xlsx columns: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
