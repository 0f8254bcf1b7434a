// Package models defines the entities persisted by the local store. The JSON
// field names follow the remote API's snake_case wire format so local blobs
// shadow the backend's data shapes.
package models

// Account roles. Anything else is rejected by validation; an empty role
// defaults to RoleStudent on registration.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Account is a locally persisted user account.
//
// PasswordHash holds a bcrypt hash, never the plaintext password. The field
// is serialized because account lists live only in the on-device preference
// store and are never sent over the wire.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// IsAdmin reports whether the account has the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
