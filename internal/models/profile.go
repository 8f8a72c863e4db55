package models

import (
	"encoding/json"
	"time"
)

// TimestampLayout is how profile timestamps appear on the wire: UTC with
// exactly three fraction digits, so the strings sort chronologically.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Profile is the stored record for one user identifier.
type Profile struct {
	UserID    string    `json:"userId"`
	Email     *string   `json:"email,omitempty"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarshalJSON writes CreatedAt and UpdatedAt in TimestampLayout.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UserID    string  `json:"userId"`
		Email     *string `json:"email,omitempty"`
		Name      *string `json:"name,omitempty"`
		CreatedAt string  `json:"createdAt"`
		UpdatedAt string  `json:"updatedAt"`
	}{
		UserID:    p.UserID,
		Email:     p.Email,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt: p.UpdatedAt.UTC().Format(TimestampLayout),
	})
}

// Clone returns a copy that shares no pointers with p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Email = cloneString(p.Email)
	c.Name = cloneString(p.Name)
	return &c
}

// ProfileUpdate carries the optional fields of a PUT body.
// A nil field was not supplied by the client.
type ProfileUpdate struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
}

// Apply overwrites the fields of p that the update supplies with a
// non-empty value. Empty strings count as "no change".
func (u ProfileUpdate) Apply(p *Profile) {
	if present(u.Email) {
		p.Email = cloneString(u.Email)
	}
	if present(u.Name) {
		p.Name = cloneString(u.Name)
	}
}

// NewProfile builds the record created by the first upsert for userID.
func NewProfile(userID string, u ProfileUpdate, now time.Time) *Profile {
	return &Profile{
		UserID:    userID,
		Email:     cloneString(u.Email),
		Name:      cloneString(u.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpsertOutcome tells which branch an upsert took.
type UpsertOutcome int

const (
	Created UpsertOutcome = iota + 1
	Updated
)

func (o UpsertOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

type UpsertResult struct {
	Profile *Profile
	Outcome UpsertOutcome
}

// StringPtr is a small helper for building optional fields.
func StringPtr(s string) *string {
	return &s
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
