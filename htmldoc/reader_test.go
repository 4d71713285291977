package htmldoc

import (
	"strings"
	"testing"
)

const compendiumPage = `<!DOCTYPE html>
<html>
<head>
<title>Goblin - Monster Compendium</title>
<meta name="author" content="Compendium Team">
<meta name="description" content="Goblin stat block">
</head>
<body>
<nav><a href="/">Home</a> <a href="/monsters">Monsters</a></nav>
<div class="sidebar"><a href="/a">A</a><a href="/b">B</a><a href="/c">C</a><a href="/d">D</a></div>
<main>
<h1>Goblin</h1>
<p>Small humanoid (goblinoid), neutral evil</p>
<p>Armor Class 15 (leather armor, shield)</p>
<p>Hit Points 7 (2d6)</p>
<table>
<tr><th>STR</th><th>DEX</th><th>CON</th><th>INT</th><th>WIS</th><th>CHA</th></tr>
<tr><td>8 (-1)</td><td>14 (+2)</td><td>10 (+0)</td><td>10 (+0)</td><td>8 (-1)</td><td>8 (-1)</td></tr>
</table>
<h2>Actions</h2>
<p>Scimitar. Melee Weapon Attack: +4 to hit, reach 5 ft., one target.</p>
<ul>
<li>Nimble Escape</li>
<li>Darkvision
<ul><li>60 feet</li></ul>
</li>
</ul>
</main>
<footer>Copyright notice</footer>
</body>
</html>`

func openPage(t *testing.T, src string) *Reader {
	t.Helper()
	r, err := OpenReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	return r
}

func allText(r *Reader) string {
	var parts []string
	for _, line := range r.Lines() {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}

func TestOpenReader_HeadMetadata(t *testing.T) {
	r := openPage(t, compendiumPage)
	defer r.Close()

	if r.Title() != "Goblin - Monster Compendium" {
		t.Errorf("title = %q", r.Title())
	}
	if r.Meta("author") != "Compendium Team" {
		t.Errorf("author = %q", r.Meta("author"))
	}
	if r.Meta("missing") != "" {
		t.Errorf("missing meta = %q", r.Meta("missing"))
	}
}

func TestLines_ContentOrder(t *testing.T) {
	r := openPage(t, compendiumPage)
	lines := r.Lines()
	if len(lines) == 0 {
		t.Fatal("no lines extracted")
	}

	if lines[0].Text != "Goblin" {
		t.Errorf("first line = %q, want Goblin", lines[0].Text)
	}
	if !lines[0].IsHeader {
		t.Error("h1 line not flagged as header")
	}
	if lines[1].Text != "Small humanoid (goblinoid), neutral evil" {
		t.Errorf("second line = %q", lines[1].Text)
	}

	for i := 1; i < len(lines); i++ {
		if lines[i].Y >= lines[i-1].Y {
			t.Errorf("line %d Y=%v not below line %d", i, lines[i].Y, i-1)
		}
	}
}

func TestLines_ChromeExcluded(t *testing.T) {
	text := allText(openPage(t, compendiumPage))

	for _, chrome := range []string{"Home", "Monsters", "Copyright notice"} {
		if strings.Contains(text, chrome) {
			t.Errorf("chrome text %q survived extraction", chrome)
		}
	}
	if !strings.Contains(text, "Armor Class 15") {
		t.Error("stat-block text missing from extraction")
	}
}

func TestLines_TableRowJoined(t *testing.T) {
	text := allText(openPage(t, compendiumPage))

	if !strings.Contains(text, "8 (-1) 14 (+2) 10 (+0) 10 (+0) 8 (-1) 8 (-1)") {
		t.Errorf("ability row not joined into one line:\n%s", text)
	}
}

func TestLines_NestedList(t *testing.T) {
	text := allText(openPage(t, compendiumPage))

	if !strings.Contains(text, "Nimble Escape") {
		t.Error("list item missing")
	}
	if !strings.Contains(text, "60 feet") {
		t.Error("nested list item missing")
	}
	if strings.Contains(text, "Darkvision 60 feet") {
		t.Error("nested list swallowed into parent item")
	}
}

func TestLines_HeadingFontSizes(t *testing.T) {
	r := openPage(t, compendiumPage)
	var h1, h2, body float64
	for _, line := range r.Lines() {
		switch line.Text {
		case "Goblin":
			h1 = line.FontSize
		case "Actions":
			h2 = line.FontSize
		case "Hit Points 7 (2d6)":
			body = line.FontSize
		}
	}
	if h1 <= h2 {
		t.Errorf("h1 size %v not above h2 size %v", h1, h2)
	}
	if h2 <= body {
		t.Errorf("h2 size %v not above body size %v", h2, body)
	}
}

func TestLines_LinkFarmExcluded(t *testing.T) {
	page := `<html><body><main>
<div><a href="/1">Aboleth</a> <a href="/2">Banshee</a> <a href="/3">Chimera</a> <a href="/4">Dryad</a></div>
<p>The goblin fights with cunning.</p>
</main></body></html>`
	text := allText(openPage(t, page))

	if strings.Contains(text, "Aboleth") {
		t.Error("link farm survived extraction")
	}
	if !strings.Contains(text, "The goblin fights with cunning.") {
		t.Error("content paragraph missing")
	}
}

func TestOpenReader_NoBody(t *testing.T) {
	r := openPage(t, "<p>bare fragment</p>")
	if text := allText(r); !strings.Contains(text, "bare fragment") {
		t.Errorf("fragment text missing, got %q", text)
	}
}

func TestPageCount(t *testing.T) {
	r := openPage(t, compendiumPage)
	n, err := r.PageCount()
	if err != nil || n != 1 {
		t.Errorf("PageCount = %d, %v", n, err)
	}
}
