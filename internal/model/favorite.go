package model

// Favorite is a row of the `hearts` table: one user's saved reference
// to one ticket.  All four components form the primary key, so adds
// are insert-or-ignore and removes are delete-if-exists; repeating
// either is a no-op.
//
// Fields:
//  TicketCode – fare code of the saved ticket.
//  FlightID   – flight component of the ticket key.
//  AirlineID  – airline component of the ticket key.
//  UserID     – owner of the favorite (FK → user.id).
type Favorite struct {
    TicketCode string // hearts.ticket_code
    FlightID   string // hearts.flight_id
    AirlineID  string // hearts.airline_id
    UserID     string // hearts.user_id
}
