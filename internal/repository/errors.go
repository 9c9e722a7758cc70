// Package repository implements the parameterized query layer over the
// relational schema (airport, airline, flight, ticket, user, hearts).
// This file defines sentinel errors shared across repositories so that
// handlers can map failure scenarios to HTTP responses without string
// matching.
package repository

import "errors"

// ErrIncompleteKey is returned when a favorite operation is attempted
// with any component of the composite key missing.  Handlers should
// translate this into an HTTP 400 response; the query never reaches
// storage.
var ErrIncompleteKey = errors.New("incomplete favorite key")

// ErrUserExists is returned when registration collides with an
// existing user id.  Handlers should translate this into an HTTP 409
// response.
var ErrUserExists = errors.New("user already exists")
