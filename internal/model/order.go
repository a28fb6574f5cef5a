package model

// Order is a single entry in the append-only order ledger. Each
// registered client order is worth exactly one raffle chance,
// identified by its ticket number. Orders are never deleted
// individually; the ledger can only be bulk-cleared by an
// administrator, and that path takes an automatic backup first.
//
// Fields:
//  ID           – immutable unique identifier assigned at creation.
//  ClientName   – client the order was taken for (free text, required).
//  OrderValue   – non-negative order amount.
//  TicketNumber – human-readable raffle ticket, unique per ledger
//                 lifetime, format #NNN-RRRR.
//  CreatedAt    – creation time in milliseconds since epoch.
//  IsWinner     – drawing outcome flag; transitions false→true once
//                 and never reverts.
//  CreatedBy    – display name of the exhibitor who registered the
//                 order; empty for admin-entered orders.
//  ExhibitorID  – id of that exhibitor, lookup-only back-reference;
//                 empty for admin-entered orders.
type Order struct {
	ID           string  `json:"id"`
	ClientName   string  `json:"clientName"`
	OrderValue   float64 `json:"orderValue"`
	TicketNumber string  `json:"ticketNumber"`
	CreatedAt    int64   `json:"createdAt"`
	IsWinner     bool    `json:"isWinner"`
	CreatedBy    string  `json:"createdBy,omitempty"`
	ExhibitorID  string  `json:"exhibitorId,omitempty"`
}

// ExhibitorAccount identifies an exhibitor allowed to register
// orders. The access code is the exhibitor's login credential and is
// compared case-sensitively as an exact string.
type ExhibitorAccount struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AccessCode string `json:"accessCode"`
}
