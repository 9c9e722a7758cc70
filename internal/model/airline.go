package model

// Airline is a row of the `airline` reference table.  Flights and
// tickets both carry an airline reference; the name is joined into
// search results so the caller never needs a second lookup.
//
// Fields:
//  ID          – airline identifier (primary key).
//  Name        – display name of the carrier.
//  WebsiteLink – optional homepage URL.
type Airline struct {
    ID          string  // airline.id
    Name        string  // airline.name
    WebsiteLink *string // airline.website_link (nullable)
}
