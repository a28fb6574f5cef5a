package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targihasta/fair-lottery/internal/model"
)

func TestWriteOrders(t *testing.T) {
	created := time.Date(2025, 12, 24, 18, 30, 9, 0, time.Local)
	orders := []model.Order{
		{
			ID:           "o1",
			TicketNumber: "#001-4262",
			ClientName:   "ACME Sp. z o.o.",
			OrderValue:   500,
			ExhibitorID:  "e1",
			CreatedBy:    "Stoisko A",
			CreatedAt:    created.UnixMilli(),
			IsWinner:     true,
		},
		{
			ID:           "o2",
			TicketNumber: "#002-7311",
			ClientName:   "Beta",
			OrderValue:   49.9,
			CreatedAt:    created.UnixMilli(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, orders))
	out := buf.String()

	t.Run("starts with a BOM", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, "\ufeff"))
	})

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\ufeff"), "\n"), "\n")
	require.Len(t, lines, 3)

	t.Run("header row", func(t *testing.T) {
		assert.Equal(t, "ID Zamówienia;Numer Biletu;Klient;Wartość (PLN);Wystawca (ID);Wystawca (Nazwa);Data Zgłoszenia;Godzina;Czy Wygrał", lines[0])
	})

	t.Run("winner row with comma decimal and TAK", func(t *testing.T) {
		assert.Equal(t, "o1;#001-4262;ACME Sp. z o.o.;500,00;e1;Stoisko A;24.12.2025;18:30:09;TAK", lines[1])
	})

	t.Run("non-winner row with empty attribution and NIE", func(t *testing.T) {
		assert.Equal(t, "o2;#002-7311;Beta;49,90;;;24.12.2025;18:30:09;NIE", lines[2])
	})
}

func TestWriteOrdersEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, nil))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(buf.String(), "\ufeff"), "\n"), "\n")
	assert.Len(t, lines, 1, "only the header row")
}

func TestReportFilename(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "targi_hasta_wyniki_2026-08-30.csv", ReportFilename(at))
}
