package model

// Airport is a row of the `airport` reference table.  Airports are
// immutable seed data: flights reference them as departure and
// arrival endpoints and searches resolve cities through them.  The
// mapping of airports to cities is many-to-one, so searches always
// match on the declared city rather than the airport code.
//
// Fields:
//  ID      – short airport code (primary key, e.g. "ATH").
//  City    – city the airport serves.
//  Country – country of the airport.
type Airport struct {
    ID      string // airport.id
    City    string // airport.city
    Country string // airport.country
}
