// Package family defines the member directory record of the family hub and
// the roster it ships with.
//
// A [Member] carries everything the directory shows (contact details,
// photo, bio). The lineage engine only needs the identifier, name, relation
// and parent reference; [ToLineage] performs that projection.
package family

import (
	"fmt"
	"time"

	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/lineage"
)

// BirthDateLayout is the format of Member.BirthDate.
const BirthDateLayout = "2006-01-02"

// Member is one entry of the family directory.
type Member struct {
	ID        string `json:"id" toml:"id" bson:"id"`
	Name      string `json:"name" toml:"name" bson:"name"`
	Relation  string `json:"relation" toml:"relation" bson:"relation"`
	BirthDate string `json:"birth_date,omitempty" toml:"birth_date,omitempty" bson:"birth_date,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty" toml:"photo_url,omitempty" bson:"photo_url,omitempty"`
	Location  string `json:"location,omitempty" toml:"location,omitempty" bson:"location,omitempty"`
	Phone     string `json:"phone,omitempty" toml:"phone,omitempty" bson:"phone,omitempty"`
	Email     string `json:"email,omitempty" toml:"email,omitempty" bson:"email,omitempty"`
	Bio       string `json:"bio,omitempty" toml:"bio,omitempty" bson:"bio,omitempty"`
	// ParentID is empty for the root of the family tree.
	ParentID string `json:"parent_id,omitempty" toml:"parent_id,omitempty" bson:"parent_id,omitempty"`
}

// Validate checks the record fields that are not structural. Missing
// optional fields are fine; present ones must be well formed.
func (m Member) Validate() error {
	if err := errors.ValidateMemberID(m.ID); err != nil {
		return err
	}
	if m.ParentID != "" {
		if err := errors.ValidateMemberID(m.ParentID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMember, err, "member %s: parent id", m.ID)
		}
	}
	if m.BirthDate != "" {
		if _, err := time.Parse(BirthDateLayout, m.BirthDate); err != nil {
			return errors.New(errors.ErrCodeInvalidMember, "member %s: birth date %q is not YYYY-MM-DD", m.ID, m.BirthDate)
		}
	}
	if m.PhotoURL != "" {
		if err := errors.ValidateURL(m.PhotoURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMember, err, "member %s: photo url", m.ID)
		}
	}
	if m.Email != "" {
		if err := errors.ValidateEmail(m.Email); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMember, err, "member %s: email", m.ID)
		}
	}
	return nil
}

// Age returns the member's age in whole years at the given time. It returns
// false when the birth date is missing or malformed.
func (m Member) Age(at time.Time) (int, bool) {
	born, err := time.Parse(BirthDateLayout, m.BirthDate)
	if err != nil {
		return 0, false
	}
	years := at.Year() - born.Year()
	if at.YearDay() < born.YearDay() {
		years--
	}
	return years, true
}

// Lineage projects the record onto the fields the lineage engine reads.
func (m Member) Lineage() lineage.Member {
	return lineage.Member{ID: m.ID, Name: m.Name, Relation: m.Relation, ParentID: m.ParentID}
}

// ToLineage projects a roster, preserving order.
func ToLineage(members []Member) []lineage.Member {
	out := make([]lineage.Member, len(members))
	for i, m := range members {
		out[i] = m.Lineage()
	}
	return out
}

// ValidateAll runs [Member.Validate] over the roster and reports the first
// failure with its position.
func ValidateAll(members []Member) error {
	for i, m := range members {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// Find returns the member with the given ID.
func Find(members []Member, id string) (Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
