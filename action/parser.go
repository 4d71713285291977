package action

import (
	"regexp"
	"sort"
	"strings"

	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/spelldata"
)

// sectionFor maps literal section-header lines to sections
var sectionFor = map[string]Section{
	"ACTIONS":           SectionActions,
	"BONUS ACTIONS":     SectionActions,
	"REACTIONS":         SectionReactions,
	"LEGENDARY ACTIONS": SectionLegendary,
}

// actionIgnore lists stat-line prefixes that match the action-start shape
// but are never actions themselves.
var actionIgnore = map[string]bool{
	"Speed":                  true,
	"Skills":                 true,
	"Senses":                 true,
	"Languages":              true,
	"Saving Throws":          true,
	"Armor Class":            true,
	"Hit Points":             true,
	"Hit Dice":               true,
	"Challenge":              true,
	"Damage Immunities":      true,
	"Damage Resistances":     true,
	"Damage Vulnerabilities": true,
	"Condition Immunities":   true,
	"Proficiency Bonus":      true,
}

var (
	actionStartRe = regexp.MustCompile(`^([A-Z][A-Za-z0-9' \-/]{1,49}?(?:\s*\([^)]{0,40}\))?)\.\s*(.*)$`)
	pageChromeRe  = regexp.MustCompile(`^(?:Page\s+)?\d+$`)
	spellDCRe     = regexp.MustCompile(`spell save DC\s+(\d+)`)
)

// minSweepNameLen is the shortest spell name eligible for the
// whole-description detection sweep.
const minSweepNameLen = 5

// Parse segments a record description into actions and runs the
// independent extractors over each. Unstructured prose yields an empty
// action list; no input makes Parse fail.
func Parse(description string, table spelldata.Table) []Action {
	var actions []Action
	var open *Action
	var body []string
	section := SectionTraits
	sectionSeen := false

	closeOpen := func() {
		if open == nil {
			return
		}
		open.OriginalText = strings.TrimSpace(open.OriginalText + "\n" + strings.Join(body, "\n"))
		extract(open, table)
		actions = append(actions, *open)
		open = nil
		body = nil
	}

	lines := strings.Split(description, "\n")
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if sec, ok := sectionFor[strings.ToUpper(line)]; ok {
			closeOpen()
			section = sec
			sectionSeen = true
			continue
		}

		// A running header or page number after a section header means the
		// text has bled into the next entity's entry.
		if sectionSeen && pageChromeRe.MatchString(line) {
			closeOpen()
			break
		}

		if name, rest, ok := actionStart(line); ok {
			closeOpen()
			open = &Action{Name: name, Section: section, OriginalText: rest}
			continue
		}

		if open != nil {
			body = append(body, line)
		}
	}
	closeOpen()

	actions = append(actions, detectedSpells(description, actions, table)...)
	return actions
}

// ParseRecord parses the record's description. Ability scores and other
// structured fields stay on the record itself; only the description text
// feeds the parser.
func ParseRecord(rec *model.EntityRecord, table spelldata.Table) []Action {
	return Parse(rec.Description, table)
}

// actionStart matches "Name. rest of line" action openers, rejecting known
// stat-line false positives. Ability-score and spell-DC fragments fall
// through and are appended to the open action instead.
func actionStart(line string) (name, rest string, ok bool) {
	m := actionStartRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	name = strings.TrimSpace(m[1])

	base := name
	if idx := strings.Index(base, "("); idx > 0 {
		base = strings.TrimSpace(base[:idx])
	}
	for prefix := range actionIgnore {
		if base == prefix || strings.HasPrefix(base, prefix+" ") {
			return "", "", false
		}
	}
	return name, m[2], true
}

// detectedSpells sweeps the whole description for known spell names
// mentioned outside structured lists and synthesizes a "(Detected)" action
// for each hit not already covered, carrying the spell's mechanics from
// the table.
func detectedSpells(description string, actions []Action, table spelldata.Table) []Action {
	covered := make(map[string]bool)
	for _, a := range actions {
		for _, su := range a.Spells {
			if _, key, ok := table.Lookup(su.Name); ok {
				covered[key] = true
			}
		}
	}

	var dc int
	if m := spellDCRe.FindStringSubmatch(description); m != nil {
		dc = atoi(m[1])
	}

	lower := strings.ToLower(description)

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []Action
	for _, key := range keys {
		// Very short names ("fly") collide with ordinary prose and speed
		// lines far too often to sweep for.
		if len(key) < minSweepNameLen {
			continue
		}
		if covered[key] || !containsWord(lower, key) {
			continue
		}
		spell := table[key]
		a := Action{
			Name:         titleCase(key) + " (Detected)",
			Section:      SectionTraits,
			OriginalText: key,
			Spells:       []SpellUse{{Name: key, Dice: spell.Damage, AoE: spell.AoE}},
			AoE:          spell.AoE,
		}
		if spell.Damage != "" {
			a.Damages = []Damage{{Dice: spell.Damage, Type: spell.Type}}
		}
		if spell.Save != "" {
			a.Save = &Save{DC: dc, Stat: spell.Save}
		}
		out = append(out, a)
	}
	return out
}

// containsWord reports whether needle occurs in haystack on word
// boundaries.
func containsWord(haystack, needle string) bool {
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		beforeOK := idx == 0 || !isWordByte(haystack[idx-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
