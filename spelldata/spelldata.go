// Package spelldata holds the static spell reference table used when
// resolving spell mentions in record descriptions. The table is read-only;
// lookups never mutate it, so it is safe for concurrent use.
package spelldata

import "strings"

// AreaOfEffect is a geometric effect shape with a size in feet
type AreaOfEffect struct {
	Size int    `json:"size"`
	Type string `json:"type"` // cone, line, cube, sphere, radius, cylinder, wall
}

// Spell is one entry in the static reference table
type Spell struct {
	// Level is the base spell level; 0 for cantrips
	Level int `json:"level"`

	// Damage is the base damage dice expression, empty for utility spells
	Damage string `json:"damage,omitempty"`

	// Type is the damage type dealt, if any
	Type string `json:"type,omitempty"`

	// Save is the ability a target saves with, empty for attack-roll spells
	Save string `json:"save,omitempty"`

	// AoE is the effect geometry, if the spell has one
	AoE *AreaOfEffect `json:"aoe,omitempty"`

	// Secondary is an additional damage rider (e.g. ongoing ignite damage)
	Secondary string `json:"secondary,omitempty"`

	// Attack is true when the spell uses a spell attack roll
	Attack bool `json:"attack,omitempty"`
}

// Table is a read-only spell lookup keyed by canonical lowercase name
type Table map[string]Spell

// Default returns the built-in spell reference table.
func Default() Table {
	return defaultTable
}

var defaultTable = Table{
	"acid splash":        {Level: 0, Damage: "1d6", Type: "acid", Save: "DEX"},
	"fire bolt":          {Level: 0, Damage: "1d10", Type: "fire", Attack: true},
	"ray of frost":       {Level: 0, Damage: "1d8", Type: "cold", Attack: true},
	"sacred flame":       {Level: 0, Damage: "1d8", Type: "radiant", Save: "DEX"},
	"eldritch blast":     {Level: 0, Damage: "1d10", Type: "force", Attack: true},
	"poison spray":       {Level: 0, Damage: "1d12", Type: "poison", Save: "CON"},
	"shocking grasp":     {Level: 0, Damage: "1d8", Type: "lightning", Attack: true},
	"burning hands":      {Level: 1, Damage: "3d6", Type: "fire", Save: "DEX", AoE: &AreaOfEffect{Size: 15, Type: "cone"}},
	"magic missile":      {Level: 1, Damage: "3d4+3", Type: "force"},
	"thunderwave":        {Level: 1, Damage: "2d8", Type: "thunder", Save: "CON", AoE: &AreaOfEffect{Size: 15, Type: "cube"}},
	"guiding bolt":       {Level: 1, Damage: "4d6", Type: "radiant", Attack: true},
	"inflict wounds":     {Level: 1, Damage: "3d10", Type: "necrotic", Attack: true},
	"faerie fire":        {Level: 1, Save: "DEX", AoE: &AreaOfEffect{Size: 20, Type: "cube"}},
	"scorching ray":      {Level: 2, Damage: "2d6", Type: "fire", Attack: true},
	"shatter":            {Level: 2, Damage: "3d8", Type: "thunder", Save: "CON", AoE: &AreaOfEffect{Size: 10, Type: "sphere"}},
	"moonbeam":           {Level: 2, Damage: "2d10", Type: "radiant", Save: "CON", AoE: &AreaOfEffect{Size: 5, Type: "cylinder"}},
	"fireball":           {Level: 3, Damage: "8d6", Type: "fire", Save: "DEX", AoE: &AreaOfEffect{Size: 20, Type: "sphere"}},
	"lightning bolt":     {Level: 3, Damage: "8d6", Type: "lightning", Save: "DEX", AoE: &AreaOfEffect{Size: 100, Type: "line"}},
	"call lightning":     {Level: 3, Damage: "3d10", Type: "lightning", Save: "DEX", AoE: &AreaOfEffect{Size: 5, Type: "radius"}},
	"wall of fire":       {Level: 4, Damage: "5d8", Type: "fire", Save: "DEX", AoE: &AreaOfEffect{Size: 60, Type: "wall"}},
	"ice storm":          {Level: 4, Damage: "2d8", Type: "bludgeoning", Save: "DEX", AoE: &AreaOfEffect{Size: 20, Type: "cylinder"}, Secondary: "4d6"},
	"blight":             {Level: 4, Damage: "8d8", Type: "necrotic", Save: "CON"},
	"cone of cold":       {Level: 5, Damage: "8d8", Type: "cold", Save: "CON", AoE: &AreaOfEffect{Size: 60, Type: "cone"}},
	"flame strike":       {Level: 5, Damage: "4d6", Type: "fire", Save: "DEX", AoE: &AreaOfEffect{Size: 10, Type: "cylinder"}, Secondary: "4d6"},
	"cloudkill":          {Level: 5, Damage: "5d8", Type: "poison", Save: "CON", AoE: &AreaOfEffect{Size: 20, Type: "sphere"}},
	"chain lightning":    {Level: 6, Damage: "10d8", Type: "lightning", Save: "DEX"},
	"disintegrate":       {Level: 6, Damage: "10d6+40", Type: "force", Save: "DEX"},
	"finger of death":    {Level: 7, Damage: "7d8+30", Type: "necrotic", Save: "CON"},
	"meteor swarm":       {Level: 9, Damage: "20d6", Type: "fire", Save: "DEX", AoE: &AreaOfEffect{Size: 40, Type: "sphere"}, Secondary: "20d6"},
	"counterspell":       {Level: 3},
	"misty step":         {Level: 2},
	"detect magic":       {Level: 1},
	"dispel magic":       {Level: 3},
	"hold person":        {Level: 2, Save: "WIS"},
	"invisibility":       {Level: 2},
	"mage hand":          {Level: 0},
	"minor illusion":     {Level: 0},
	"darkness":           {Level: 2},
	"fly":                {Level: 3},
	"suggestion":         {Level: 2, Save: "WIS"},
	"polymorph":          {Level: 4, Save: "WIS"},
	"dominate person":    {Level: 5, Save: "WIS"},
	"teleport":           {Level: 7},
	"plane shift":        {Level: 7, Save: "CHA"},
}

// Lookup resolves a spell name against the table. Exact canonical match is
// tried first; only on a miss does the fuzzy path run, normalizing both
// sides against common optical-extraction character confusions.
// The returned key is the canonical table key that matched.
func (t Table) Lookup(name string) (Spell, string, bool) {
	canonical := strings.ToLower(strings.TrimSpace(name))
	if spell, ok := t[canonical]; ok {
		return spell, canonical, true
	}

	fuzzy := Normalize(name)
	if fuzzy == "" {
		return Spell{}, "", false
	}
	for key, spell := range t {
		if Normalize(key) == fuzzy {
			return spell, key, true
		}
	}
	return Spell{}, "", false
}

// Normalize reduces a spell name to a fuzzy comparison form: lowercased,
// with characters commonly confused by optical text extraction mapped back
// ('/' '1' '|' to 'l', '0' to 'o') and everything that is not a letter
// stripped.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch r {
		case '/', '1', '|':
			b.WriteRune('l')
		case '0':
			b.WriteRune('o')
		default:
			if r >= 'a' && r <= 'z' {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
