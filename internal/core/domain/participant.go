package domain

import (
	"errors"
	"strings"
)

// CheckInStatus represents the lifecycle state of a participant's check-in.
type CheckInStatus string

const (
	StatusNotPrinted CheckInStatus = "Not Printed"
	StatusPrinted    CheckInStatus = "Printed"
)

var ErrParticipantNotFound = errors.New("participant not found")
var ErrStoreUnavailable = errors.New("row store unavailable")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("missing authentication")
var ErrForbidden = errors.New("access forbidden")

// Participant is one row of the registration sheet. The payment identifier is
// the sole lookup key; every other field may be absent.
type Participant struct {
	ID            string        `json:"id" bson:"payment_id"`
	Name          string        `json:"name" bson:"name"`
	College       string        `json:"college" bson:"college"`
	Gender        string        `json:"gender" bson:"gender"`
	Contact       string        `json:"contact" bson:"contact"`
	Accommodation string        `json:"accommodation" bson:"accommodation"`
	PassType      string        `json:"passType" bson:"pass_type"`
	CheckInStatus CheckInStatus `json:"checkInStatus" bson:"check_in_status"`
	CheckedInBy   string        `json:"checkedInBy,omitempty" bson:"checked_in_by,omitempty"`
	Timestamp     string        `json:"timestamp,omitempty" bson:"timestamp,omitempty"`

	// StoreRef is an opaque handle to the backing row (sheet row number,
	// document id, ...). Set by the row store on load, required by Save.
	StoreRef string `json:"-" bson:"-"`
}

// CheckedIn reports whether the participant has already been printed a badge.
func (p *Participant) CheckedIn() bool {
	return p.CheckInStatus == StatusPrinted
}

// NormalizeID canonicalises a payment identifier for comparison: surrounding
// whitespace is stripped and the identifier is lowercased.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// HistoryEntry is the dashboard projection of a checked-in participant.
type HistoryEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	College     string `json:"college"`
	CheckedInBy string `json:"checkedInBy"`
	Timestamp   string `json:"timestamp"`
}

// Stats holds the aggregate counters shown on the dashboard.
// Pending is always Total - CheckedIn.
type Stats struct {
	Total     int `json:"total"`
	CheckedIn int `json:"checkedIn"`
	Pending   int `json:"pending"`
}
