package model

// User is a row of the `user` table.  The identifier is the email
// address the account registered with; everywhere else in the system
// it is treated as an opaque identity string.  Only the bcrypt hash
// of the password is stored.
//
// Fields:
//  ID           – user identifier (email, primary key).
//  PasswordHash – bcrypt hash of the password.
type User struct {
    ID           string // user.id
    PasswordHash string // user.password
}
