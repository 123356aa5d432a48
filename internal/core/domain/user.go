package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type User struct {
	ID         uint64
	Email      string
	FirstName  string
	LastName   string
	IsManager  bool
	FirstLogin bool
}

var titleCaser = cases.Title(language.Polish)

// FullName returns "First Last" with both parts capitalized.
func (u User) FullName() string {
	return strings.TrimSpace(titleCaser.String(u.FirstName) + " " + titleCaser.String(u.LastName))
}

type NewUser struct {
	Email     string
	FirstName string
	LastName  string
	IsManager bool
}

// Actor is the caller of a lifecycle operation together with the request
// details the audit log needs.
type Actor struct {
	User *User
	// RealIP is the X-Real-Ip header value as received.
	RealIP string
	// ClientIP is the address resolved by the transport.
	ClientIP string
}

func (a *Actor) UserID() uint64 {
	if a == nil || a.User == nil {
		return 0
	}
	return a.User.ID
}

func (a *Actor) IsManager() bool {
	return a != nil && a.User != nil && a.User.IsManager
}
