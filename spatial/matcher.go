package spatial

import (
	"sort"
	"strings"

	"github.com/codexforge/bestiary/imaging"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/textrun"
)

// Config controls image-to-record matching.
type Config struct {
	// DenyList names records that never receive an image, regardless
	// of page layout. Names are compared after normalization.
	DenyList []string

	// DisablePropagation turns off context-image inheritance for the
	// whole document.
	DisablePropagation bool

	// MinContextArea is the minimum placement area, in square page
	// units, for an image to become the carried context image.
	MinContextArea float64

	// ContextPageWindow is how many pages a context image stays
	// eligible for inheritance without a keyword overlap.
	ContextPageWindow int

	// ChromeBarHeight is the maximum height of a strip hugging the top
	// or bottom page edge that is treated as decorative chrome.
	ChromeBarHeight float64

	// FullBleedFraction is the fraction of page width and height above
	// which an image counts as a full-page background.
	FullBleedFraction float64
}

// DefaultConfig returns matching parameters tuned for letter-sized
// rulebook pages.
func DefaultConfig() Config {
	return Config{
		MinContextArea:    40000,
		ContextPageWindow: 2,
		ChromeBarHeight:   45,
		FullBleedFraction: 0.9,
	}
}

// Page is everything the matcher needs from one document page.
type Page struct {
	// Number is the zero-based page index within the document.
	Number int

	// Width and Height are the page dimensions in page units.
	Width  float64
	Height float64

	// Lines are the normalized text lines of the page, in encounter
	// order.
	Lines []textrun.TextLine

	// Images are the raster images placed on the page.
	Images []PageImage
}

// Matcher assigns page images to entity records.
type Matcher struct {
	config Config
	denied map[string]bool
}

// NewMatcher returns a Matcher using the given configuration.
func NewMatcher(config Config) *Matcher {
	denied := make(map[string]bool, len(config.DenyList))
	for _, name := range config.DenyList {
		denied[model.NormalizeName(name)] = true
	}
	return &Matcher{config: config, denied: denied}
}

// candidate is a record whose name was located on the current page,
// together with the bounding boxes of the text that names it.
type candidate struct {
	record *model.EntityRecord
	boxes  []model.BBox
}

// pair is one scored (record, image) combination.
type pair struct {
	candidate int
	image     int
	inside    bool
	distance  float64
}

// MatchPage assigns the page's images to records named on the page and
// returns the updated session. Records and images already assigned on
// earlier pages are skipped, so each image serves at most one record
// across the document. The records slice covers the whole document;
// only records whose names appear on this page participate.
func (m *Matcher) MatchPage(sess *Session, page Page, records []*model.EntityRecord) *Session {
	images := m.usableImages(page)
	candidates := m.findCandidates(page, records, sess)

	pairs := make([]pair, 0, len(candidates)*len(images))
	for ci, cand := range candidates {
		for ii, img := range images {
			best := pair{candidate: ci, image: ii, distance: -1}
			for _, box := range cand.boxes {
				inside := img.BBox.Intersects(box)
				dist := box.VerticalDistance(img.BBox)
				if best.distance < 0 || inside && !best.inside ||
					inside == best.inside && dist < best.distance {
					best.inside = inside
					best.distance = dist
				}
			}
			if best.distance >= 0 {
				pairs = append(pairs, best)
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].inside != pairs[j].inside {
			return pairs[i].inside
		}
		return pairs[i].distance < pairs[j].distance
	})

	takenRecord := make(map[int]bool)
	takenImage := make(map[int]bool)
	for _, p := range pairs {
		if takenRecord[p.candidate] || takenImage[p.image] {
			continue
		}
		cand := candidates[p.candidate]
		img := images[p.image]
		if sess.ImageAssigned(img.Ref) {
			continue
		}
		sess.assign(cand.record, img.Ref)
		takenRecord[p.candidate] = true
		takenImage[p.image] = true
	}

	m.updateContext(sess, page, images)
	m.propagate(sess, page, candidates, takenRecord)
	return sess
}

// usableImages filters out page chrome and stencil masks.
func (m *Matcher) usableImages(page Page) []PageImage {
	usable := make([]PageImage, 0, len(page.Images))
	for _, img := range page.Images {
		if m.isChrome(page, img.BBox) {
			continue
		}
		if img.Pix != nil && img.Pix.Pix != nil && imaging.IsMaskSilhouette(img.Pix.Pix) {
			continue
		}
		usable = append(usable, img)
	}
	return usable
}

// isChrome reports whether the placement looks like a decorative page
// element rather than an illustration: a thin strip hugging the top or
// bottom edge, a full-page background, or a wide banner.
func (m *Matcher) isChrome(page Page, box model.BBox) bool {
	if box.Height <= m.config.ChromeBarHeight {
		if box.Bottom() <= m.config.ChromeBarHeight ||
			box.Top() >= page.Height-m.config.ChromeBarHeight {
			return true
		}
	}
	if page.Width > 0 && page.Height > 0 &&
		box.Width >= m.config.FullBleedFraction*page.Width &&
		box.Height >= m.config.FullBleedFraction*page.Height {
		return true
	}
	if box.Height > 0 && box.Width/box.Height >= 5 {
		return true
	}
	return false
}

// findCandidates locates, for each still-unassigned record, the page
// lines that name it. Exact containment of the full name wins; failing
// that, the rarest multi-character word of the name is searched for,
// preferring the line with the largest font among matches; failing
// that, the first word of the name.
func (m *Matcher) findCandidates(page Page, records []*model.EntityRecord, sess *Session) []candidate {
	var candidates []candidate
	for _, rec := range records {
		norm := model.NormalizeName(rec.Name)
		if norm == "" || m.denied[norm] || sess.RecordAssigned(rec.Name) || rec.ImageRef != "" {
			continue
		}
		boxes := nameBoxes(page.Lines, rec.Name)
		if len(boxes) == 0 {
			continue
		}
		candidates = append(candidates, candidate{record: rec, boxes: boxes})
	}
	return candidates
}

func nameBoxes(lines []textrun.TextLine, name string) []model.BBox {
	lower := strings.ToLower(name)
	var exact []model.BBox
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line.Text), lower) {
			exact = append(exact, line.BBox())
		}
	}
	if len(exact) > 0 {
		return exact
	}

	words := nameWords(name)
	if len(words) == 0 {
		return nil
	}
	target := words[0]
	if len(words) > 1 {
		target = rarestWord(lines, words)
	}
	if box, ok := bestWordLine(lines, target); ok {
		return []model.BBox{box}
	}
	if target != words[0] {
		if box, ok := bestWordLine(lines, words[0]); ok {
			return []model.BBox{box}
		}
	}
	return nil
}

func nameWords(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	words := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			words = append(words, f)
		}
	}
	return words
}

// rarestWord picks the name word occurring on the fewest lines, on the
// theory that common words like "young" or "giant" anchor poorly.
func rarestWord(lines []textrun.TextLine, words []string) string {
	best := words[0]
	bestCount := -1
	for _, w := range words {
		count := 0
		for _, line := range lines {
			if strings.Contains(strings.ToLower(line.Text), w) {
				count++
			}
		}
		if count == 0 {
			continue
		}
		if bestCount < 0 || count < bestCount {
			best = w
			bestCount = count
		}
	}
	return best
}

func bestWordLine(lines []textrun.TextLine, word string) (model.BBox, bool) {
	var best textrun.TextLine
	found := false
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line.Text), word) {
			continue
		}
		if !found || line.FontSize > best.FontSize {
			best = line
			found = true
		}
	}
	if !found {
		return model.BBox{}, false
	}
	return best.BBox(), true
}

// updateContext remembers the page's largest qualifying image so that
// records on nearby pages can inherit it.
func (m *Matcher) updateContext(sess *Session, page Page, images []PageImage) {
	var best *PageImage
	for i := range images {
		img := &images[i]
		if img.BBox.Area() < m.config.MinContextArea {
			continue
		}
		if best == nil || img.BBox.Area() > best.BBox.Area() {
			best = img
		}
	}
	if best == nil {
		return
	}
	sess.context = &contextImage{
		ref:      best.Ref,
		page:     page.Number,
		keywords: headerKeywords(page.Lines),
	}
}

// headerKeywords collects the distinctive words of the page's header
// lines, used to gate context inheritance across distant pages.
func headerKeywords(lines []textrun.TextLine) map[string]bool {
	keywords := make(map[string]bool)
	for _, line := range lines {
		if !line.IsHeader {
			continue
		}
		for _, w := range strings.Fields(strings.ToLower(line.Text)) {
			if len(w) > 3 {
				keywords[w] = true
			}
		}
	}
	return keywords
}

// propagate hands the carried context image to records that were named
// on this page but matched no image of their own. Inheritance still
// honors the one-record-per-image rule, so a context image already
// serving a record is not handed out again.
func (m *Matcher) propagate(sess *Session, page Page, candidates []candidate, taken map[int]bool) {
	if m.config.DisablePropagation || sess.context == nil {
		return
	}
	ctx := sess.context
	for ci, cand := range candidates {
		if taken[ci] || sess.ImageAssigned(ctx.ref) {
			continue
		}
		if !m.contextApplies(ctx, page, cand.record) {
			continue
		}
		sess.assign(cand.record, ctx.ref)
		taken[ci] = true
	}
}

// contextApplies reports whether the context image plausibly depicts
// the record: either it came from a page close by, or the record's
// name shares a word with the headers of the context image's page.
func (m *Matcher) contextApplies(ctx *contextImage, page Page, rec *model.EntityRecord) bool {
	if page.Number-ctx.page <= m.config.ContextPageWindow {
		return true
	}
	for _, w := range nameWords(rec.Name) {
		if ctx.keywords[w] {
			return true
		}
	}
	return false
}
