// Package queue defines message payloads exchanged over the message broker.
package queue

// FavoriteActivityEvent is published whenever a user saves or removes
// a favorite ticket.  It carries the full composite key plus the
// action so downstream consumers can log or notify without querying
// the primary database.
type FavoriteActivityEvent struct {
    Action     string `json:"action"` // "added" | "removed"
    UserID     string `json:"user_id"`
    TicketCode string `json:"ticket_code"`
    FlightID   string `json:"flight_id"`
    AirlineID  string `json:"airline_id"`
    OccurredAt string `json:"occurred_at"`
}
