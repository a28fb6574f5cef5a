// Package report renders the order ledger as the spreadsheet the fair
// staff hand over after the event: semicolon-delimited CSV, UTF-8 with
// BOM so Excel picks the encoding up, comma decimal separator and
// Polish headers.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/targihasta/fair-lottery/internal/model"
)

var headers = []string{
	"ID Zamówienia",
	"Numer Biletu",
	"Klient",
	"Wartość (PLN)",
	"Wystawca (ID)",
	"Wystawca (Nazwa)",
	"Data Zgłoszenia",
	"Godzina",
	"Czy Wygrał",
}

// WriteOrders writes the full order report to w: a BOM, the header row
// and one row per order in ledger order.
func WriteOrders(w io.Writer, orders []model.Order) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range orders {
		created := time.UnixMilli(o.CreatedAt)
		row := []string{
			o.ID,
			o.TicketNumber,
			o.ClientName,
			commaDecimal(o.OrderValue),
			o.ExhibitorID,
			o.CreatedBy,
			created.Format("02.01.2006"),
			created.Format("15:04:05"),
			winnerFlag(o.IsWinner),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReportFilename builds the dated download name, e.g.
// targi_hasta_wyniki_2026-08-30.csv.
func ReportFilename(at time.Time) string {
	return fmt.Sprintf("targi_hasta_wyniki_%s.csv", at.Format("2006-01-02"))
}

// commaDecimal formats to two decimal places with a comma separator,
// matching the locale convention of the report consumers.
func commaDecimal(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

func winnerFlag(isWinner bool) string {
	if isWinner {
		return "TAK"
	}
	return "NIE"
}
