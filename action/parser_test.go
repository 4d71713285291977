package action

import (
	"strings"
	"testing"

	"github.com/codexforge/bestiary/spelldata"
)

func parseOne(t *testing.T, description string) Action {
	t.Helper()
	actions := Parse(description, spelldata.Default())
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %+v", len(actions), actions)
	}
	return actions[0]
}

func TestParse_FireBreathFixture(t *testing.T) {
	a := parseOne(t, "The dragon exhales fire in a 60-foot cone. Each creature in that area must make a DC 17 Dexterity saving throw, taking 16 (3d10) fire damage on a failed save.")

	if a.AoE == nil || a.AoE.Size != 60 || a.AoE.Type != "cone" {
		t.Errorf("AoE = %+v, want 60-foot cone", a.AoE)
	}
	if a.Save == nil || a.Save.DC != 17 || a.Save.Stat != "Dexterity" {
		t.Errorf("Save = %+v, want DC 17 Dexterity", a.Save)
	}
	if len(a.Damages) != 1 || a.Damages[0].Dice != "3d10" || a.Damages[0].Type != "fire" {
		t.Errorf("Damages = %+v, want [{3d10 fire}]", a.Damages)
	}
}

func TestParse_SectionClassification(t *testing.T) {
	description := strings.Join([]string{
		"ACTIONS",
		"Bite. Melee Weapon Attack: +4 to hit, reach 5 ft., one target.",
		"Hit: 7 (1d10 + 2) piercing damage.",
	}, "\n")

	a := parseOne(t, description)
	if a.Section != SectionActions {
		t.Errorf("Section = %q, want %q", a.Section, SectionActions)
	}
	if a.Name != "Bite" {
		t.Errorf("Name = %q", a.Name)
	}
	if a.ToHit == nil || *a.ToHit != 4 {
		t.Errorf("ToHit = %v, want 4", a.ToHit)
	}
	if len(a.Damages) != 1 || a.Damages[0].Dice != "1d10+2" || a.Damages[0].Type != "piercing" {
		t.Errorf("Damages = %+v", a.Damages)
	}
}

func TestParse_DefaultSectionIsTraits(t *testing.T) {
	a := parseOne(t, "Amphibious. The creature can breathe air and water.")
	if a.Section != SectionTraits {
		t.Errorf("Section = %q, want traits", a.Section)
	}
}

func TestParse_AllSections(t *testing.T) {
	description := strings.Join([]string{
		"Keen Smell. The creature has advantage on smell-based checks.",
		"ACTIONS",
		"Claw. Melee Weapon Attack: +6 to hit, reach 5 ft., one target.",
		"REACTIONS",
		"Parry. The creature adds 2 to its AC against one melee attack.",
		"LEGENDARY ACTIONS",
		"Detect. The creature makes a Wisdom check.",
	}, "\n")

	actions := Parse(description, spelldata.Default())
	if len(actions) != 4 {
		t.Fatalf("expected 4 actions, got %d", len(actions))
	}
	want := []Section{SectionTraits, SectionActions, SectionReactions, SectionLegendary}
	for i, a := range actions {
		if a.Section != want[i] {
			t.Errorf("action %q section = %q, want %q", a.Name, a.Section, want[i])
		}
	}
}

func TestParse_MultipleDamageInstances(t *testing.T) {
	a := parseOne(t, "Bite. Melee Weapon Attack: +9 to hit, reach 10 ft., one target. Hit: 15 (2d10 + 4) piercing damage plus 4 (1d8) acid damage.")

	if len(a.Damages) != 2 {
		t.Fatalf("Damages = %+v, want 2 instances", a.Damages)
	}
	if a.Damages[0].Dice != "2d10+4" || a.Damages[0].Type != "piercing" {
		t.Errorf("primary = %+v", a.Damages[0])
	}
	if a.Damages[1].Dice != "1d8" || a.Damages[1].Type != "acid" {
		t.Errorf("rider = %+v", a.Damages[1])
	}
}

func TestParse_StatLinesIgnored(t *testing.T) {
	description := strings.Join([]string{
		"Speed 30 ft., fly 60 ft.",
		"Skills Perception +4, Stealth +6.",
		"Senses darkvision 120 ft.",
		"ACTIONS",
		"Tail. Melee Weapon Attack: +7 to hit, reach 15 ft., one target.",
	}, "\n")

	actions := Parse(description, spelldata.Default())
	if len(actions) != 1 {
		t.Fatalf("stat lines produced actions: %+v", actions)
	}
	if actions[0].Name != "Tail" {
		t.Errorf("Name = %q", actions[0].Name)
	}
}

func TestParse_StopsAtPageChromeAfterSection(t *testing.T) {
	description := strings.Join([]string{
		"ACTIONS",
		"Slam. Melee Weapon Attack: +5 to hit, reach 5 ft., one target.",
		"Hit: 8 (1d8 + 4) bludgeoning damage.",
		"327",
		"Claws of the Next Monster. This text bled in from the next entry.",
	}, "\n")

	actions := Parse(description, spelldata.Default())
	if len(actions) != 1 {
		t.Fatalf("expected parsing to stop at the page number, got %d actions", len(actions))
	}
	if actions[0].Name != "Slam" {
		t.Errorf("Name = %q", actions[0].Name)
	}
	if len(actions[0].Damages) != 1 {
		t.Errorf("open action not closed before early stop: %+v", actions[0])
	}
}

func TestParse_UnstructuredProseYieldsNoActions(t *testing.T) {
	actions := Parse("they dwell in deep caverns and shun the light of day. nothing about them is mechanical.", spelldata.Default())
	if len(actions) != 0 {
		t.Errorf("expected no actions, got %+v", actions)
	}
}

func TestParse_Spellcasting(t *testing.T) {
	description := strings.Join([]string{
		"Spellcasting. The archmage is an 18th-level spellcaster. Its spellcasting ability is Intelligence (spell save DC 17).",
		"Cantrips (at will): fire bolt, mage hand",
		"1st level (4 slots): magic missile, detect magic",
		"3rd level (3 slots): fireball, counterspell",
	}, "\n")

	actions := Parse(description, spelldata.Default())
	var spellAction *Action
	for i := range actions {
		if strings.HasPrefix(actions[i].Name, "Spellcasting") {
			spellAction = &actions[i]
			break
		}
	}
	if spellAction == nil {
		t.Fatalf("no spellcasting action found in %+v", actions)
	}

	byName := make(map[string]SpellUse)
	for _, su := range spellAction.Spells {
		byName[su.Name] = su
	}
	if len(byName) != 6 {
		t.Errorf("spells = %v, want 6 entries", spellAction.Spells)
	}
	fb, ok := byName["fireball"]
	if !ok {
		t.Fatal("fireball missing from spell list")
	}
	if fb.Dice != "8d6" {
		t.Errorf("fireball dice = %q, want table damage 8d6", fb.Dice)
	}
	if fb.AoE == nil || fb.AoE.Type != "sphere" {
		t.Errorf("fireball AoE = %+v", fb.AoE)
	}
	if !strings.Contains(fb.Label, "3rd") {
		t.Errorf("fireball label = %q, want usage header", fb.Label)
	}
}

func TestParse_InnateSpellcastingInlineDice(t *testing.T) {
	description := "Innate Spellcasting. The creature's innate spellcasting ability is Charisma. At will: fire bolt (2d10), minor illusion"

	actions := Parse(description, spelldata.Default())
	var spells []SpellUse
	for _, a := range actions {
		if strings.Contains(a.Name, "Spellcasting") {
			spells = a.Spells
		}
	}
	byName := make(map[string]SpellUse)
	for _, su := range spells {
		byName[su.Name] = su
	}
	if su, ok := byName["fire bolt"]; !ok || su.Dice != "2d10" {
		t.Errorf("fire bolt = %+v, inline dice should win over table dice", byName["fire bolt"])
	}
	if _, ok := byName["minor illusion"]; !ok {
		t.Errorf("minor illusion missing: %v", spells)
	}
}

func TestParse_UsageListSurvivesAbbreviation(t *testing.T) {
	// The period in "ft." must not end the list; the sentence after the
	// list must not enter it.
	description := "Innate Spellcasting. At will: minor illusion, detect magic to 60 ft., ray of frost. The hag haunts the marsh at night."

	actions := Parse(description, spelldata.Default())
	var spells []SpellUse
	for _, a := range actions {
		if strings.Contains(a.Name, "Spellcasting") {
			spells = a.Spells
		}
	}
	byName := make(map[string]SpellUse)
	for _, su := range spells {
		byName[su.Name] = su
	}
	if _, ok := byName["ray of frost"]; !ok {
		t.Errorf("ray of frost lost after the abbreviation: %v", spells)
	}
	for name := range byName {
		if strings.Contains(name, "marsh") || strings.Contains(name, "hag") {
			t.Errorf("trailing prose leaked into the spell list: %q", name)
		}
	}
}

func TestParse_UnresolvableSpellKeptAsText(t *testing.T) {
	description := "Innate Spellcasting. At will: gleepglorp's marvelous muffin"

	actions := Parse(description, spelldata.Default())
	if len(actions) == 0 {
		t.Fatal("no actions")
	}
	spells := actions[0].Spells
	if len(spells) != 1 {
		t.Fatalf("spells = %+v", spells)
	}
	if spells[0].Name != "gleepglorp's marvelous muffin" || spells[0].Dice != "" {
		t.Errorf("unresolvable spell mangled: %+v", spells[0])
	}
}

func TestParse_FuzzySpellResolution(t *testing.T) {
	// Optical extraction turned "fireball" into "fireba11".
	description := "Innate Spellcasting. 1/day (each): fireba11"

	actions := Parse(description, spelldata.Default())
	if len(actions) == 0 {
		t.Fatal("no actions")
	}
	spells := actions[0].Spells
	if len(spells) != 1 || spells[0].Name != "fireball" {
		t.Errorf("fuzzy resolution failed: %+v", spells)
	}
}

func TestParse_DetectedSpells(t *testing.T) {
	description := "Ancient Words. Anyone reading the runes aloud triggers a fireball centered on the pedestal."

	actions := Parse(description, spelldata.Default())
	var detected *Action
	for i := range actions {
		if strings.HasSuffix(actions[i].Name, "(Detected)") {
			detected = &actions[i]
		}
	}
	if detected == nil {
		t.Fatalf("no synthetic detected action in %+v", actions)
	}
	if detected.Name != "Fireball (Detected)" {
		t.Errorf("Name = %q", detected.Name)
	}
	if len(detected.Damages) != 1 || detected.Damages[0].Dice != "8d6" {
		t.Errorf("Damages = %+v", detected.Damages)
	}
	if detected.Save == nil || detected.Save.Stat != "DEX" {
		t.Errorf("Save = %+v", detected.Save)
	}
	if detected.AoE == nil || detected.AoE.Size != 20 {
		t.Errorf("AoE = %+v", detected.AoE)
	}
}

func TestParse_DetectedSpellNotDuplicated(t *testing.T) {
	description := "Innate Spellcasting. At will: fireball. The fireball scorches everything."

	actions := Parse(description, spelldata.Default())
	count := 0
	for _, a := range actions {
		if strings.Contains(a.Name, "Fireball (Detected)") {
			count++
		}
		for _, su := range a.Spells {
			if su.Name == "fireball" {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("fireball referenced %d times, want exactly once", count)
	}
}

func TestScaleDice(t *testing.T) {
	tests := []struct {
		dice       string
		base, cast int
		want       string
	}{
		{"8d6", 3, 3, "8d6"},
		{"8d6", 3, 5, "10d6"},
		{"3d4+3", 1, 2, "4d4+3"},
		{"2d10", 2, 1, "2d10"}, // downcast never shrinks
		{"not dice", 1, 3, "not dice"},
	}

	for _, tt := range tests {
		if got := ScaleDice(tt.dice, tt.base, tt.cast); got != tt.want {
			t.Errorf("ScaleDice(%q, %d, %d) = %q, want %q", tt.dice, tt.base, tt.cast, got, tt.want)
		}
	}
}
