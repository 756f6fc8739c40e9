// Package contacts provides the contact directory port and the phone→name
// resolver used to attribute recordings to callers. The directory is loaded
// once per session; a denied or missing directory degrades to an empty
// resolver rather than failing.
package contacts

import (
	"context"
	"errors"
)

// ErrPermissionDenied is returned by a Directory when the underlying
// contact source exists but cannot be read. Callers treat it as an
// empty directory.
var ErrPermissionDenied = errors.New("contacts: permission denied")

// Contact is one entry of the device contact list.
type Contact struct {
	// DisplayName is the preferred name for display.
	DisplayName string `json:"display_name"`
	// GivenName is used when DisplayName is absent.
	GivenName string `json:"given_name,omitempty"`
	// PhoneNumbers holds the contact's raw phone numbers, in any format.
	PhoneNumbers []string `json:"phone_numbers"`
}

// Name returns the contact's display name, falling back to the given name.
func (c Contact) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.GivenName
}

// Directory is the port for bulk-loading device contacts.
type Directory interface {
	// LoadAll returns the full contact list. It may return
	// ErrPermissionDenied when access to the source is not granted.
	LoadAll(ctx context.Context) ([]Contact, error)
}

// StaticDirectory is a Directory backed by a fixed in-memory list.
type StaticDirectory struct {
	Contacts []Contact
}

// Compile-time check that StaticDirectory implements Directory.
var _ Directory = (*StaticDirectory)(nil)

// LoadAll returns the fixed contact list.
func (d *StaticDirectory) LoadAll(_ context.Context) ([]Contact, error) {
	return d.Contacts, nil
}
