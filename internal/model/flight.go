package model

import "time"

// Flight represents one scheduled directional leg in the `flight`
// table.  Duration is never stored; it is always derived from the
// two timestamps at query time so the stored row cannot drift from
// the value filters see.
//
// Fields:
//  ID              – flight identifier (primary key).
//  AirlineID       – operating carrier (FK → airline.id).
//  AirportDepartID – departure endpoint (FK → airport.id).
//  AirportArriveID – arrival endpoint (FK → airport.id).
//  TimeDeparture   – scheduled departure timestamp.
//  TimeArrival     – scheduled arrival timestamp.
//  NumTickets      – number of ticket rows seeded for the flight (>= 0).
type Flight struct {
    ID              string    // flight.id
    AirlineID       string    // flight.airline_id
    AirportDepartID string    // flight.airport_depart_id
    AirportArriveID string    // flight.airport_arrive_id
    TimeDeparture   time.Time // flight.time_departure
    TimeArrival     time.Time // flight.time_arrival
    NumTickets      int       // flight.num_tickets
}

// DurationMinutes derives the leg duration the same way the SQL layer
// does: whole minutes, floored on the seconds-to-minutes conversion.
func (f Flight) DurationMinutes() int64 {
    return int64(f.TimeArrival.Sub(f.TimeDeparture).Seconds()) / 60
}
