package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Default stat values assigned to a record opened before its stat block has
// been located. A record still carrying all three defaults at the end of
// segmentation is a parsing artifact and is discarded.
const (
	DefaultArmorClass = 10
	DefaultHitPoints  = 10
	UnknownType       = "Unknown"
)

// AbilityScores holds the six standard ability scores
type AbilityScores struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// EntityRecord is one structured creature or item extracted from a source
// document. The Description field is the append-only ground truth: all
// mechanical interpretation (actions, spells, areas of effect) is re-derived
// from it on demand and never persisted.
type EntityRecord struct {
	// Name is the display name as it appeared in the source
	Name string `json:"name"`

	// TypeLine is the size/type/alignment summary line, or UnknownType
	TypeLine string `json:"typeLine"`

	// ArmorClass and HitPoints are the normalized combat statistics
	ArmorClass int `json:"armorClass"`
	HitPoints  int `json:"hitPoints"`

	// ChallengeRating is the extracted challenge value ("1/4", "13"), or
	// "Unknown" when no Challenge line was found
	ChallengeRating string `json:"challengeRating"`

	// Description is the residual free text of the entry
	Description string `json:"description"`

	// Source identifies the document(s) this record came from
	Source string `json:"source"`

	// ImageRef is the assigned illustration reference, empty if unmatched
	ImageRef string `json:"imageRef,omitempty"`

	// AbilityScores are the parsed ability scores, if present
	AbilityScores *AbilityScores `json:"abilityScores,omitempty"`

	// SavingThrows lists saving throw proficiencies, if present
	SavingThrows []string `json:"savingThrows,omitempty"`
}

// NewEntityRecord creates a record with default stats, to be late-bound
// when the mechanical block is located.
func NewEntityRecord(name, source string) *EntityRecord {
	return &EntityRecord{
		Name:            name,
		TypeLine:        UnknownType,
		ArmorClass:      DefaultArmorClass,
		HitPoints:       DefaultHitPoints,
		ChallengeRating: UnknownType,
		Source:          source,
	}
}

// IsArtifact reports whether the record still carries all default stats,
// meaning segmentation never found a real stat block for it.
func (r *EntityRecord) IsArtifact() bool {
	return r.ArmorClass == DefaultArmorClass &&
		r.HitPoints == DefaultHitPoints &&
		r.TypeLine == UnknownType
}

// HasDefaultStats reports whether the record's stats are still the opening
// defaults and are eligible for upgrade during merging or late binding.
func (r *EntityRecord) HasDefaultStats() bool {
	return r.ArmorClass == DefaultArmorClass && r.HitPoints == DefaultHitPoints
}

// NormalizeName produces the identity key for a record name: lowercased,
// diacritics folded, all non-letter/digit characters stripped except
// interior spaces, which are collapsed.
func NormalizeName(name string) string {
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	b.Grow(len(decomposed))
	lastSpace := false
	for _, r := range decomposed {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastSpace = false
		case unicode.IsSpace(r) && !lastSpace && b.Len() > 0:
			b.WriteRune(' ')
			lastSpace = true
		default:
			// Combining marks left by NFKD and punctuation are dropped.
		}
	}
	return strings.TrimSpace(b.String())
}
