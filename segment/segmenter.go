package segment

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/textrun"
)

// Config holds configuration for record segmentation
type Config struct {
	// Lookahead is how many meaningful lines after a candidate name are
	// searched for a type line (default: 4). Page-number and similar noise
	// lines are skipped without consuming the window.
	Lookahead int

	// StatScanWindow is how many lines after a type line are searched for
	// the Armor Class and Hit Points lines (default: 6)
	StatScanWindow int

	// LateBindWindow is how many lines after a late type line an Armor
	// Class line must appear for the type to bind retroactively (default: 8)
	LateBindWindow int

	// MaxTypeLineLength is the longest line accepted as a type line
	// (default: 80)
	MaxTypeLineLength int

	// MaxNameLength is the longest line accepted as a record name
	// (default: 60)
	MaxNameLength int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Lookahead:         4,
		StatScanWindow:    6,
		LateBindWindow:    8,
		MaxTypeLineLength: 80,
		MaxNameLength:     60,
	}
}

// Segmenter detects record boundaries in a normalized line stream and
// extracts entity records. It never fails on malformed input: unmatched
// text is absorbed into whichever record is currently open, or discarded
// if none is.
type Segmenter struct {
	config Config
}

// NewSegmenter creates a segmenter with default configuration
func NewSegmenter() *Segmenter {
	return &Segmenter{config: DefaultConfig()}
}

// NewSegmenterWithConfig creates a segmenter with custom configuration
func NewSegmenterWithConfig(config Config) *Segmenter {
	return &Segmenter{config: config}
}

var (
	armorClassRe    = regexp.MustCompile(`Armor Class\s+(\d+)`)
	hitPointsRe     = regexp.MustCompile(`Hit Points\s+(\d+)`)
	challengeRe     = regexp.MustCompile(`Challenge\s+(\d+(?:/\d+)?)`)
	digitPrefixRe   = regexp.MustCompile(`^\d+\s`)
	pageNumberRe    = regexp.MustCompile(`^(?:Page\s+)?\d+$`)
	abilityRowRe    = regexp.MustCompile(`(?m)^\s*(\d+)\s*\([+\-\x{2212}]?\d+\)\s+(\d+)\s*\([+\-\x{2212}]?\d+\)\s+(\d+)\s*\([+\-\x{2212}]?\d+\)\s+(\d+)\s*\([+\-\x{2212}]?\d+\)\s+(\d+)\s*\([+\-\x{2212}]?\d+\)\s+(\d+)\s*\([+\-\x{2212}]?\d+\)`)
	savingThrowsRe  = regexp.MustCompile(`(?m)^Saving Throws\s+(.+)$`)
)

// openRecord is the in-progress record threaded through the line fold
type openRecord struct {
	rec  *model.EntityRecord
	body []string
}

// Segment turns one document's normalized lines into entity records.
// Records whose type and stats never bound to a real stat block are
// dropped before being returned.
func (s *Segmenter) Segment(lines []textrun.TextLine, source string) []model.EntityRecord {
	var records []model.EntityRecord
	var open *openRecord

	for i := 0; i < len(lines); i++ {
		text := strings.TrimSpace(lines[i].Text)
		if isPageNoise(text) {
			continue
		}

		if s.isRecordStart(lines, i) {
			// A name header repeated for the same entity (lore block and
			// stat block laid out separately) is absorbed, not reopened.
			if open != nil && model.NormalizeName(text) == model.NormalizeName(open.rec.Name) {
				continue
			}
			if open != nil {
				records = append(records, s.close(open))
			}
			open = &openRecord{rec: model.NewEntityRecord(text, source)}
			if ti, ok := s.typeLineWithin(lines, i+1, s.config.Lookahead); ok {
				s.bindStats(open.rec, lines, ti)
			}
			continue
		}

		if open == nil {
			continue
		}

		// Late binding: a record opened from a lore header adopts the type
		// line of a stat block that shows up paragraphs later, provided an
		// Armor Class line confirms it within the window.
		if open.rec.TypeLine == model.UnknownType && open.rec.HasDefaultStats() &&
			s.isTypeLine(text) && s.armorClassWithin(lines, i+1, s.config.LateBindWindow) {
			s.bindStats(open.rec, lines, i)
			continue
		}

		open.body = append(open.body, text)
	}

	if open != nil {
		records = append(records, s.close(open))
	}

	// Records that never found a stat block are segmentation noise.
	kept := records[:0]
	for _, rec := range records {
		if !rec.IsArtifact() {
			kept = append(kept, rec)
		}
	}
	return kept
}

// isTypeLine applies the multi-predicate type-line filter: opens with a
// size token, contains a comma, short enough, not a sentence, and free of
// attack vocabulary.
func (s *Segmenter) isTypeLine(text string) bool {
	if !startsWithSizeToken(text) {
		return false
	}
	if !strings.Contains(text, ",") {
		return false
	}
	if len(text) > s.config.MaxTypeLineLength {
		return false
	}
	if strings.HasSuffix(text, ".") {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range attackVocabulary {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// isRecordStart reports whether the line at i starts a new record: a
// valid name line confirmed by a nearby type line, or an all-caps header
// standing alone (split lore/stat layouts).
func (s *Segmenter) isRecordStart(lines []textrun.TextLine, i int) bool {
	text := strings.TrimSpace(lines[i].Text)
	if sectionHeaders[strings.ToUpper(text)] {
		return false
	}
	if !s.validName(text) {
		return false
	}
	if _, ok := s.typeLineWithin(lines, i+1, s.config.Lookahead); ok {
		return true
	}
	return lines[i].IsHeader && isAllCaps(text)
}

// validName rejects candidate name lines that cannot be entity names
func (s *Segmenter) validName(text string) bool {
	if len(text) < 3 || len(text) > s.config.MaxNameLength {
		return false
	}
	if len(text) == 3 && !isAllAlpha(text) {
		return false
	}
	if digitPrefixRe.MatchString(text) {
		return false
	}
	// Sentence fragments end in punctuation; entity names do not.
	switch text[len(text)-1] {
	case '.', ',', ':', ';':
		return false
	}
	if s.isTypeLine(text) {
		return false
	}
	return !bannedName(text)
}

// typeLineWithin scans forward from start for a type line, consuming at
// most window meaningful lines. Page-number noise is skipped for free.
func (s *Segmenter) typeLineWithin(lines []textrun.TextLine, start, window int) (int, bool) {
	consumed := 0
	for i := start; i < len(lines) && consumed < window; i++ {
		text := strings.TrimSpace(lines[i].Text)
		if isPageNoise(text) {
			continue
		}
		if s.isTypeLine(text) {
			return i, true
		}
		consumed++
	}
	return 0, false
}

// armorClassWithin reports whether an Armor Class line appears within the
// next window lines.
func (s *Segmenter) armorClassWithin(lines []textrun.TextLine, start, window int) bool {
	for i := start; i < len(lines) && i < start+window; i++ {
		if armorClassRe.MatchString(lines[i].Text) {
			return true
		}
	}
	return false
}

// bindStats populates the record's type line and scans forward from it for
// Armor Class and Hit Points values.
func (s *Segmenter) bindStats(rec *model.EntityRecord, lines []textrun.TextLine, typeIdx int) {
	rec.TypeLine = strings.TrimSpace(lines[typeIdx].Text)
	for i := typeIdx + 1; i < len(lines) && i <= typeIdx+s.config.StatScanWindow; i++ {
		text := lines[i].Text
		if m := armorClassRe.FindStringSubmatch(text); m != nil {
			if ac, err := strconv.Atoi(m[1]); err == nil {
				rec.ArmorClass = ac
			}
		}
		if m := hitPointsRe.FindStringSubmatch(text); m != nil {
			if hp, err := strconv.Atoi(m[1]); err == nil {
				rec.HitPoints = hp
			}
		}
	}
}

// close finalizes the open record: its description becomes the absorbed
// body lines minus stat and header echoes, and the challenge rating,
// ability scores, and saving throws are lifted from that text.
func (s *Segmenter) close(open *openRecord) model.EntityRecord {
	rec := open.rec

	var body []string
	for _, line := range open.body {
		if s.isStatEcho(rec, line) {
			continue
		}
		body = append(body, line)
	}
	rec.Description = strings.Join(body, "\n")

	if m := challengeRe.FindStringSubmatch(rec.Description); m != nil {
		rec.ChallengeRating = m[1]
	}
	if scores, ok := extractAbilityScores(rec.Description); ok {
		rec.AbilityScores = scores
	}
	if m := savingThrowsRe.FindStringSubmatch(rec.Description); m != nil {
		rec.SavingThrows = splitList(m[1])
	}

	return *rec
}

// isStatEcho reports whether a body line merely repeats the record's name,
// type line, or a stat line already captured as a structured field.
func (s *Segmenter) isStatEcho(rec *model.EntityRecord, line string) bool {
	if line == rec.TypeLine {
		return true
	}
	if strings.HasPrefix(line, "Armor Class") || strings.HasPrefix(line, "Hit Points") {
		return true
	}
	return model.NormalizeName(line) == model.NormalizeName(rec.Name)
}

// extractAbilityScores finds a six-column ability score row in the
// description ("18 (+4) 14 (+2) ...", STR through CHA in order).
func extractAbilityScores(description string) (*model.AbilityScores, bool) {
	m := abilityRowRe.FindStringSubmatch(description)
	if m == nil {
		return nil, false
	}
	vals := make([]int, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return &model.AbilityScores{
		Str: vals[0], Dex: vals[1], Con: vals[2],
		Int: vals[3], Wis: vals[4], Cha: vals[5],
	}, true
}

// isPageNoise reports whether a line is page-number or similar running
// chrome that should not consume lookahead.
func isPageNoise(text string) bool {
	if text == "" {
		return true
	}
	return pageNumberRe.MatchString(text)
}

func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isAllAlpha(text string) bool {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(text) > 0
}

func splitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
