// Package pantry holds the pantry item entity and the merge policy that
// folds incoming items into a user's existing stock.
package pantry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a pantry row owned by a user. Unit and ExpiresOn are optional:
// a nil Unit means the item is counted without a measure, a nil ExpiresOn
// means no known expiry.
type Item struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Quantity  float64
	Unit      *string
	ExpiresOn *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Incoming is an item about to be merged into the pantry. It carries no
// identity; the merge policy decides whether it lands on an existing row
// or becomes a new one.
type Incoming struct {
	Name      string
	Quantity  float64
	Unit      *string
	ExpiresOn *time.Time
}

// NameKey returns the canonical merge key for an item name: trimmed and
// lowercased. Matching and merging both bucket by this key.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeUnit canonicalizes an optional unit: trimmed, with blank
// collapsing to absent. A client-supplied empty string and a missing
// unit mean the same thing everywhere.
func NormalizeUnit(u *string) *string {
	if u == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*u)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SameUnit compares two optional units NULL-safe and case-insensitively:
// both absent (or blank) is a match, one absent is not, both present
// compares the normalized strings.
func SameUnit(a, b *string) bool {
	a, b = NormalizeUnit(a), NormalizeUnit(b)
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(*a, *b)
}

// Validate checks an incoming item before it reaches the merge policy.
func (in Incoming) Validate() error {
	if NameKey(in.Name) == "" {
		return ErrEmptyName
	}
	if in.Quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	return nil
}
