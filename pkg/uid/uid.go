// Package uid hands out the identifiers used for requests, bid sessions and
// live connections.
package uid

import "github.com/google/uuid"

// New returns a random UUID string.
func New() string {
	return uuid.New().String()
}

// Normalize parses id and returns it in canonical lower-case form. The second
// result is false when id is not a UUID.
func Normalize(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
