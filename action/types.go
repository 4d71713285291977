package action

import "github.com/codexforge/bestiary/spelldata"

// Section classifies where in a stat block an action was found
type Section string

const (
	SectionTraits    Section = "traits"
	SectionActions   Section = "actions"
	SectionReactions Section = "reactions"
	SectionLegendary Section = "legendary"
)

// AreaOfEffect is the geometric effect shape shared with the spell table
type AreaOfEffect = spelldata.AreaOfEffect

// Save is a saving throw requirement
type Save struct {
	DC   int    `json:"dc"`
	Stat string `json:"stat"`
}

// Damage is one damage instance; an action may carry several (primary
// plus riders).
type Damage struct {
	Dice string `json:"dice"`
	Type string `json:"type"`
}

// SpellUse is a spell referenced by an action. Unresolvable names keep
// their raw text with no dice or geometry, preserving them for a human
// to fix rather than dropping them.
type SpellUse struct {
	Name  string        `json:"name"`
	Dice  string        `json:"dice,omitempty"`
	Label string        `json:"label,omitempty"`
	AoE   *AreaOfEffect `json:"aoe,omitempty"`
}

// Action is one parsed trait, action, reaction, or legendary action
type Action struct {
	Name         string        `json:"name"`
	Section      Section       `json:"section"`
	OriginalText string        `json:"originalText"`
	ToHit        *int          `json:"toHit,omitempty"`
	Save         *Save         `json:"save,omitempty"`
	Damages      []Damage      `json:"damages,omitempty"`
	Spells       []SpellUse    `json:"spells,omitempty"`
	AoE          *AreaOfEffect `json:"aoe,omitempty"`
}
