package bestiary

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/codexforge/bestiary/graphicsstate"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/textrun"
)

// fakeSource is an in-memory PageSource for pipeline tests.
type fakeSource struct {
	pages  []fakePage
	images map[string]*model.RasterImage
	closed bool
}

type fakePage struct {
	width  float64
	height float64
	runs   []textrun.GlyphRun
	ops    []graphicsstate.Op
}

func (f *fakeSource) PageCount() (int, error) { return len(f.pages), nil }

func (f *fakeSource) PageSize(page int) (float64, float64, error) {
	return f.pages[page].width, f.pages[page].height, nil
}

func (f *fakeSource) Runs(page int) ([]textrun.GlyphRun, error) {
	return f.pages[page].runs, nil
}

func (f *fakeSource) ImageOps(page int) ([]graphicsstate.Op, error) {
	return f.pages[page].ops, nil
}

func (f *fakeSource) Image(ref string) (*model.RasterImage, error) {
	return f.images[ref], nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func run(text string, x, y, fontSize float64) textrun.GlyphRun {
	return textrun.GlyphRun{
		Text:   text,
		Matrix: model.Matrix{fontSize, 0, 0, fontSize, x, y},
	}
}

// portraitPixels builds a small varied image that survives both the
// mask-silhouette filter and background removal untouched.
func portraitPixels() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 12),
				G: uint8(y * 12),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func goblinPage() fakePage {
	lines := []string{
		"Goblin",
		"Small humanoid (goblinoid), neutral evil",
		"Armor Class 15 (leather armor, shield)",
		"Hit Points 7 (2d6)",
		"Challenge 1/4 (50 XP)",
		"Scimitar. Melee Weapon Attack: +4 to hit, reach 5 ft., one target.",
	}
	page := fakePage{width: 612, height: 792}
	y := 700.0
	for i, text := range lines {
		size := 12.0
		if i == 0 {
			size = 18
		}
		page.runs = append(page.runs, run(text, 50, y, size))
		y -= 20
	}
	page.ops = []graphicsstate.Op{
		{Kind: graphicsstate.OpSave},
		{Kind: graphicsstate.OpTransform, Matrix: model.Matrix{150, 0, 0, 150, 300, 540}},
		{Kind: graphicsstate.OpPaintImage, Name: "img7"},
		{Kind: graphicsstate.OpRestore},
	}
	return page
}

func goblinSource() *fakeSource {
	return &fakeSource{
		pages: []fakePage{goblinPage()},
		images: map[string]*model.RasterImage{
			"img7": {Ref: "img7", Width: 20, Height: 20, Pix: portraitPixels()},
		},
	}
}

func TestExtract_EndToEnd(t *testing.T) {
	result, warnings, err := FromSource(goblinSource()).Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.Name != "Goblin" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.ArmorClass != 15 || rec.HitPoints != 7 {
		t.Errorf("stats = AC %d HP %d, want AC 15 HP 7", rec.ArmorClass, rec.HitPoints)
	}
	if rec.ChallengeRating != "1/4" {
		t.Errorf("challenge = %q", rec.ChallengeRating)
	}
	if rec.ImageRef != "img7" {
		t.Errorf("image = %q, want img7", rec.ImageRef)
	}
	if !strings.Contains(rec.Description, "Scimitar") {
		t.Errorf("description missing action text: %q", rec.Description)
	}

	if result.Stats.Matched != 1 || result.Stats.Skipped != 0 || result.Stats.Errors != 0 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestExtract_ExcludeImages(t *testing.T) {
	result, _, err := FromSource(goblinSource()).ExcludeImages().Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records", len(result.Records))
	}
	if result.Records[0].ImageRef != "" {
		t.Errorf("image assigned despite ExcludeImages: %q", result.Records[0].ImageRef)
	}
	if result.Stats.Matched != 0 || result.Stats.Skipped != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestExtract_DenyImages(t *testing.T) {
	result, _, err := FromSource(goblinSource()).DenyImages("goblin").Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Records[0].ImageRef != "" {
		t.Errorf("denied record got image %q", result.Records[0].ImageRef)
	}
}

func TestPages_OutOfRange(t *testing.T) {
	_, _, err := FromSource(goblinSource()).Pages(5).Records()
	if err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestFromSource_DoesNotCloseCallerSource(t *testing.T) {
	src := goblinSource()
	if _, _, err := FromSource(src).Records(); err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if src.closed {
		t.Error("extractor closed a source it does not own")
	}
}

func TestConfigMethods_Immutable(t *testing.T) {
	base := FromSource(goblinSource())
	withPages := base.Pages(1)
	if len(base.options.pages) != 0 {
		t.Error("Pages mutated the receiver")
	}
	if len(withPages.options.pages) != 1 {
		t.Error("Pages did not configure the clone")
	}

	excluded := base.ExcludeImages()
	if base.options.excludeImages {
		t.Error("ExcludeImages mutated the receiver")
	}
	if !excluded.options.excludeImages {
		t.Error("ExcludeImages did not configure the clone")
	}
}

func TestActions_FromRecord(t *testing.T) {
	records, _, err := FromSource(goblinSource()).Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	actions := Actions(&records[0])
	for _, act := range actions {
		if act.Name == "Scimitar" {
			return
		}
	}
	t.Errorf("Scimitar action not derived; got %d actions", len(actions))
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: WarnPageText, Page: 3, Message: "bad stream"},
		{Code: WarnOCRUnavailable, Message: "no tesseract"},
	}
	got := FormatWarnings(warnings)
	want := "page-text (page 3): bad stream; ocr-unavailable: no tesseract"
	if got != want {
		t.Errorf("FormatWarnings = %q, want %q", got, want)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, _, err := Open("does-not-exist.pdf").Records()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
