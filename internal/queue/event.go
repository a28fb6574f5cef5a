// Package queue defines message payloads exchanged over the message broker.
package queue

// WinnerDrawnEvent is published after a drawing settles. It carries
// enough information for downstream consumers (audit log, stage
// display, notifications) without reading the primary store.
type WinnerDrawnEvent struct {
	OrderID       string  `json:"order_id"`
	TicketNumber  string  `json:"ticket_number"`
	ClientName    string  `json:"client_name"`
	OrderValue    float64 `json:"order_value"`
	ExhibitorID   string  `json:"exhibitor_id,omitempty"`
	ExhibitorName string  `json:"exhibitor_name,omitempty"`
	DrawnAt       string  `json:"drawn_at"`
}
