package segment

import "strings"

// sizeTokens are the creature size words that may open a stat-block type
// line ("Large dragon, chaotic evil").
var sizeTokens = []string{
	"Tiny",
	"Small",
	"Medium",
	"Large",
	"Huge",
	"Gargantuan",
}

// sectionHeaders are header lines that introduce sections inside an entry
// rather than a new entry. Compared uppercase.
var sectionHeaders = map[string]bool{
	"ACTIONS":           true,
	"BONUS ACTIONS":     true,
	"REACTIONS":         true,
	"LEGENDARY ACTIONS": true,
	"LAIR ACTIONS":      true,
	"MYTHIC ACTIONS":    true,
	"REGIONAL EFFECTS":  true,
	"TRAITS":            true,
	"VARIANT":           true,
	"APPENDIX":          true,
	"CONTENTS":          true,
	"TABLE OF CONTENTS": true,
	"INDEX":             true,
	"CREDITS":           true,
	"INTRODUCTION":      true,
}

// nameBanPhrases reject candidate name lines that are really body prose.
// This list is the primary false-positive suppressor for record starts;
// every entry exists because some rulebook sentence once produced a bogus
// record. Matched case-insensitively as substrings.
var nameBanPhrases = []string{
	"can use",
	"with a",
	"with the",
	"of the",
	"hit:",
	"to hit",
	"damage",
	"the target",
	"a target",
	"each creature",
	"each target",
	"melee weapon attack",
	"ranged weapon attack",
	"melee or ranged",
	"spell attack",
	"saving throw",
	"spell save",
	"spellcasting",
	"at will",
	"/day",
	"on a failed",
	"on a success",
	"must succeed",
	"must make",
	"takes ",
	"regains ",
	"armor class",
	"hit points",
	"hit dice",
	"challenge",
	"proficiency bonus",
	"speed ",
	"senses ",
	"skills ",
	"languages",
	"condition immunities",
	"damage resistances",
	"damage immunities",
	"damage vulnerabilities",
	"if the",
	"when the",
	"while the",
	"until the",
	"as a bonus action",
	"as an action",
	"as a reaction",
	"has advantage",
	"has disadvantage",
	"is reduced to",
	"knows the",
	"can see",
	"can't be",
	"it can",
	"this creature",
	"the creature",
	"you can",
	"feet of",
	"ft. of",
	"round",
	"turn,",
	"turn.",
}

// attackVocabulary rejects type-line candidates that describe attacks or
// effects rather than a creature's size and type.
var attackVocabulary = []string{
	"damage",
	"hit:",
	"target",
}

// bannedName reports whether a candidate name line matches the prose
// ban-list.
func bannedName(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range nameBanPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// startsWithSizeToken reports whether the line opens with a size word
// followed by a space.
func startsWithSizeToken(text string) bool {
	for _, tok := range sizeTokens {
		if strings.HasPrefix(text, tok+" ") {
			return true
		}
	}
	return false
}
