package domain

import (
	"time"
)

// User is the account aggregate. It owns businesses by reference only.
type User struct {
	id         int64
	username   string
	email      string
	password   string
	isVerified bool
	joinDate   time.Time

	// Change tracking for optimized repository updates
	changes *ChangeTracker
}

// NewUser creates a new User (for registration).
// The password is stored as given; hashing it is the caller's concern.
func NewUser(id int64, username, email, password string, now time.Time) (*User, error) {
	if err := checkRequiredString(FieldUsername, username, MaxUsernameLength); err != nil {
		return nil, err
	}
	if err := checkRequiredString(FieldEmail, email, MaxEmailLength); err != nil {
		return nil, err
	}
	if err := checkRequiredString(FieldPassword, password, MaxPasswordLength); err != nil {
		return nil, err
	}

	u := &User{
		id:         id,
		username:   username,
		email:      email,
		password:   password,
		isVerified: DefaultIsVerified,
		joinDate:   now,
		changes:    NewChangeTracker(),
	}

	u.changes.MarkDirty(FieldUsername, FieldEmail, FieldPassword, FieldIsVerified, FieldJoinDate)

	return u, nil
}

// ReconstructUser reconstitutes a User from storage.
func ReconstructUser(id int64, username, email, password string, isVerified bool, joinDate time.Time) *User {
	return &User{
		id:         id,
		username:   username,
		email:      email,
		password:   password,
		isVerified: isVerified,
		joinDate:   joinDate,
		changes:    NewChangeTracker(),
	}
}

// Getters
func (u *User) ID() int64               { return u.id }
func (u *User) Username() string        { return u.username }
func (u *User) Email() string           { return u.email }
func (u *User) Password() string        { return u.password }
func (u *User) IsVerified() bool        { return u.isVerified }
func (u *User) JoinDate() time.Time     { return u.joinDate }
func (u *User) Changes() *ChangeTracker { return u.changes }

// SetUsername updates the username.
func (u *User) SetUsername(username string) error {
	if err := checkRequiredString(FieldUsername, username, MaxUsernameLength); err != nil {
		return err
	}
	if username == u.username {
		return nil
	}
	u.username = username
	u.changes.MarkDirty(FieldUsername)
	return nil
}

// SetEmail updates the email address.
func (u *User) SetEmail(email string) error {
	if err := checkRequiredString(FieldEmail, email, MaxEmailLength); err != nil {
		return err
	}
	if email == u.email {
		return nil
	}
	u.email = email
	u.changes.MarkDirty(FieldEmail)
	return nil
}

// SetPassword replaces the stored password.
func (u *User) SetPassword(password string) error {
	if err := checkRequiredString(FieldPassword, password, MaxPasswordLength); err != nil {
		return err
	}
	u.password = password
	u.changes.MarkDirty(FieldPassword)
	return nil
}

// SetVerified updates the verification flag.
func (u *User) SetVerified(verified bool) {
	if verified == u.isVerified {
		return
	}
	u.isVerified = verified
	u.changes.MarkDirty(FieldIsVerified)
}
