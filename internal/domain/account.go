package domain

import "time"

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// UserAccount is the public-facing account record. This is what an active
// session exposes; it never carries a credential field.
type UserAccount struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   *Address  `json:"address,omitempty"`
	JoinDate  time.Time `json:"joinDate"`
}

// DirectoryRecord is the privileged row in the registered-user directory.
// It is the only place the password lives; it is stripped before a record
// becomes the active session.
type DirectoryRecord struct {
	UserAccount
	Password string `json:"password"`
}

// Public returns the account with the credential stripped.
func (r DirectoryRecord) Public() UserAccount {
	return r.UserAccount
}
