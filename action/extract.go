package action

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/codexforge/bestiary/spelldata"
)

// The extractors below are independent: each scans the closed action's
// full text on its own, and the presence of one pattern never excludes
// another. An action can carry a to-hit bonus, a save, an area, and
// several damage instances at once.
var (
	toHitRe = regexp.MustCompile(`([+-]\d+)\s+to hit`)
	saveDCRe = regexp.MustCompile(`DC\s+(\d+)\s+(\w+)\s+saving\s+(?:throw|save)`)
	aoeRe    = regexp.MustCompile(`(\d+)-foot[- ](cone|line|cube|sphere|radius|cylinder)`)
	// Non-greedy on the type words so multi-clause damage descriptions
	// ("... fire damage on a failed save") stay tight, (?s) so a damage
	// clause split across lines still matches.
	damageRe = regexp.MustCompile(`(?s)(?:Hit:|taking|takes|take|plus)\s+(?:(\d+)\s+)?\((\d+d\d+(?:\s*[+-]\s*\d+)?)\)\s+(.+?)\s+damage`)

	spellcastingRe = regexp.MustCompile(`(?i)\bspellcasting\b`)
	inlineSpellRe  = regexp.MustCompile(`([a-z][a-z'’ /|01]+?)\s*\((\d+d\d+(?:\s*[+-]\s*\d+)?)\)`)
	usageHeaderRe  = regexp.MustCompile(`(?i)(at will|cantrips(?:\s*\(at will\))?|\d+/day(?:\s*\(each\))?|\d+(?:st|nd|rd|th)\s+level(?:\s*\([^)]*\))?)\s*:`)
)

// extract runs every extractor over the closed action. The action name
// participates in matching: area and attack phrasing regularly lands in
// the opening clause.
func extract(a *Action, table spelldata.Table) {
	text := a.Name + ". " + a.OriginalText

	if m := toHitRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			a.ToHit = &v
		}
	}

	if m := saveDCRe.FindStringSubmatch(text); m != nil {
		if dc, err := strconv.Atoi(m[1]); err == nil {
			a.Save = &Save{DC: dc, Stat: m[2]}
		}
	}

	if m := aoeRe.FindStringSubmatch(text); m != nil {
		if size, err := strconv.Atoi(m[1]); err == nil {
			a.AoE = &AreaOfEffect{Size: size, Type: m[2]}
		}
	}

	for _, m := range damageRe.FindAllStringSubmatch(text, -1) {
		a.Damages = append(a.Damages, Damage{
			Dice: compactDice(m[2]),
			Type: normalizeDamageType(m[3]),
		})
	}

	if spellcastingRe.MatchString(a.Name) {
		a.Spells = extractSpells(a.OriginalText, table)
	}
}

// extractSpells pulls spell references out of a spellcasting action's
// text: inline "name (dice)" pairs first, then usage-list headers with
// their comma-separated spell lists.
func extractSpells(text string, table spelldata.Table) []SpellUse {
	var spells []SpellUse
	seen := make(map[string]bool)

	add := func(raw, dice, label string) {
		name := strings.TrimSpace(raw)
		if name == "" {
			return
		}
		use := SpellUse{Name: name, Dice: dice, Label: label}
		key := strings.ToLower(name)
		if spell, canonical, ok := table.Lookup(name); ok {
			use.Name = canonical
			use.AoE = spell.AoE
			if use.Dice == "" {
				use.Dice = spell.Damage
			}
			key = canonical
		}
		// Unresolved names are kept as free text, never dropped.
		if !seen[key] {
			seen[key] = true
			spells = append(spells, use)
		}
	}

	for _, m := range inlineSpellRe.FindAllStringSubmatch(text, -1) {
		add(m[1], compactDice(m[2]), "")
	}

	headers := usageHeaderRe.FindAllStringSubmatchIndex(text, -1)
	for i, h := range headers {
		label := strings.TrimSpace(text[h[2]:h[3]])
		listStart := h[1]
		listEnd := len(text)
		if i+1 < len(headers) {
			listEnd = headers[i+1][0]
		}
		listText := text[listStart:listEnd]
		// A spell list ends where trailing prose begins; prose after the
		// list is not spell names.
		if idx := sentenceCut(listText); idx >= 0 {
			listText = listText[:idx]
		}
		for _, name := range strings.Split(listText, ",") {
			name = strings.TrimSpace(strings.Trim(name, ".\n"))
			// An inline dice pair inside a list was already captured above.
			if idx := strings.Index(name, "("); idx >= 0 {
				name = strings.TrimSpace(name[:idx])
			}
			add(name, "", label)
		}
	}

	return spells
}

// sentenceCut returns the index where a trailing prose sentence starts:
// the first period followed by whitespace and a capital letter. Periods
// inside abbreviations ("range 60 ft.,") do not end the list.
func sentenceCut(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
			j++
		}
		if j > i+1 && j < len(s) && s[j] >= 'A' && s[j] <= 'Z' {
			return i
		}
	}
	return -1
}

// compactDice normalizes a dice expression by removing interior spaces
// ("2d6 + 3" -> "2d6+3").
func compactDice(dice string) string {
	return strings.ReplaceAll(dice, " ", "")
}

// normalizeDamageType trims clause fragments from a non-greedy damage
// type capture, keeping only the trailing type words.
func normalizeDamageType(words string) string {
	fields := strings.Fields(words)
	if len(fields) == 0 {
		return ""
	}
	// "bludgeoning, piercing, and slashing" style compounds keep their
	// last three words at most; a single captured word is the common case.
	if len(fields) > 3 {
		fields = fields[len(fields)-3:]
	}
	return strings.Trim(strings.Join(fields, " "), ",;")
}
