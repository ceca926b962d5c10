// Package auth holds the credential gate for the interactive session.
package auth

import (
	"crypto/subtle"

	"github.com/rl1809/bakery-ledger/internal/port"
)

var _ port.Authenticator = (*StaticAuthenticator)(nil)

// StaticAuthenticator compares against a single configured credential pair.
// It gates the session only; the store itself is never authenticated.
type StaticAuthenticator struct {
	username string
	password string
}

func NewStaticAuthenticator(username, password string) *StaticAuthenticator {
	return &StaticAuthenticator{username: username, password: password}
}

func (a *StaticAuthenticator) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}
