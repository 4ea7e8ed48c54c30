package entity

import "time"

// User is the identity record. Email is the login key. Staff and superuser
// flags drive the access policy: a flagged user administers the bank and can
// therefore never own a bank account or move money.
type User struct {
	ID          string
	Email       string
	Password    string // bcrypt hash
	FirstName   string
	LastName    string
	IsStaff     bool
	IsSuperuser bool
	IsActive    bool
	JoinedAt    time.Time
	UpdatedAt   time.Time
}

// IsAdmin reports whether the user holds any administrative flag.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

// FullName joins first and last name, dropping empty parts.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Address is the user's one and only postal address.
type Address struct {
	ID            string
	UserID        string
	StreetAddress string
	City          string
	PostalCode    string
	Country       string
}
