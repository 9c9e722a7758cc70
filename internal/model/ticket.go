package model

// Ticket is a fare offer for one flight in the `ticket` table.  A
// flight carries several tickets, one per fare class (seeded data may
// hold multiple codes per class).  A ticket is searchable only while
// availability is positive.
//
// Fields:
//  Code         – fare code, first component of the composite key.
//  FlightID     – flight the fare belongs to (FK → flight.id).
//  AirlineID    – selling carrier (FK → airline.id).
//  Class        – fare tier, conventionally economy | business | first.
//  Price        – ticket price (>= 0).
//  Availability – remaining sellable seats (>= 0).
type Ticket struct {
    Code         string  // ticket.code
    FlightID     string  // ticket.flight_id
    AirlineID    string  // ticket.airline_id
    Class        string  // ticket.class
    Price        float64 // ticket.price
    Availability int     // ticket.availability
}
