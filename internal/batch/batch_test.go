package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sprite-rips-packer/internal/config"
	"sprite-rips-packer/internal/sprite"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	green = color.NRGBA{0, 255, 0, 255}
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func readDocument(t *testing.T, path string) sprite.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc sprite.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func defaultSubject(t *testing.T) config.Subject {
	t.Helper()
	s, err := config.LoadSubject(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

const previousHero = `{
  "Frames": [
    {"Rect": "0 0 5 5", "Offset": "3 5"},
    {"Rect": "6 0 11 5", "Offset": "3 5"},
    {"Rect": "0 6 4 10", "Offset": "5 5", "WingStyle": 1}
  ],
  "NamedAnimations": [
    {"Name": "idle", "Frames": "0,1", "Delay": 1},
    {"Name": "jump", "Frames": "2", "Delay": 1}
  ],
  "SubPositions": "hand 1 2",
  "Version": "Neoarc's Sprite v2.0"
}`

// heroFixture lays out a subject with a regenerated "idle" group of two
// 10x10 frames and a preserved "jump" group with one stored 8x8 frame.
func heroFixture(t *testing.T) (raw, out string) {
	root := t.TempDir()
	raw = filepath.Join(root, "hero", "raw")
	out = filepath.Join(root, "hero", "generated")

	writePNG(t, filepath.Join(raw, "idle", "0.png"), solid(10, 10, red))
	writePNG(t, filepath.Join(raw, "idle", "1.png"), solid(10, 10, red))
	writeFile(t, filepath.Join(raw, "jump", "config.json"), `{"regenerate": false, "delay": 4}`)

	writePNG(t, filepath.Join(out, "idle", "stale.png"), solid(2, 2, red))
	writePNG(t, filepath.Join(out, "jump", "0.png"), solid(8, 8, blue))
	writeFile(t, filepath.Join(out, "hero.sprite"), previousHero)
	return raw, out
}

func runHero(t *testing.T, raw, out string) Result {
	t.Helper()
	groups, err := Plan(raw)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(Config{OutputDir: out, Name: "hero", Subject: defaultSubject(t)}, groups)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestRunPreservesReusedOffsets(t *testing.T) {
	raw, out := heroFixture(t)
	res := runHero(t, raw, out)

	if res.Frames != 3 || res.Regenerated != 1 || res.Reused != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.Canvas != image.Pt(22, 20) || res.Half != image.Pt(11, 10) {
		t.Errorf("canvas = %v half = %v, want 22x20 and 11x10", res.Canvas, res.Half)
	}

	doc := readDocument(t, res.SpritePath)
	if len(doc.Frames) != 3 {
		t.Fatalf("Frames = %d, want 3", len(doc.Frames))
	}
	if doc.Frames[2].Offset != "5 5" {
		t.Errorf("jump Offset = %q, want %q", doc.Frames[2].Offset, "5 5")
	}
	if string(doc.Frames[2].WingStyle) != "1" {
		t.Errorf("jump WingStyle = %s, want 1", doc.Frames[2].WingStyle)
	}
	if doc.Frames[0].Rect != "0 0 5 5" || doc.Frames[0].Offset != "3 5" {
		t.Errorf("idle frame 0 = %+v", doc.Frames[0])
	}
	if doc.Frames[1].Rect != "6 0 11 5" {
		t.Errorf("idle frame 1 Rect = %q", doc.Frames[1].Rect)
	}
	if doc.Frames[2].Rect != "0 6 4 10" {
		t.Errorf("jump Rect = %q", doc.Frames[2].Rect)
	}

	want := []sprite.Animation{
		{Name: "idle", Frames: "0,1", Delay: 1},
		{Name: "jump", Frames: "2", Delay: 4},
	}
	if !reflect.DeepEqual(doc.NamedAnimations, want) {
		t.Errorf("NamedAnimations = %+v, want %+v", doc.NamedAnimations, want)
	}
	if doc.SubPositions != "hand 1 2" || doc.Version != sprite.Version {
		t.Errorf("SubPositions = %q Version = %q", doc.SubPositions, doc.Version)
	}

	for _, p := range []string{res.SheetPath, res.Sheet2x, filepath.Join(out, "idle", "0.png"), filepath.Join(out, "jump", "0.png")} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "idle", "stale.png")); !os.IsNotExist(err) {
		t.Errorf("stale frame of a regenerated group survived: %v", err)
	}
}

func TestRunTwiceIsStable(t *testing.T) {
	raw, out := heroFixture(t)
	first := readDocument(t, runHero(t, raw, out).SpritePath)
	second := readDocument(t, runHero(t, raw, out).SpritePath)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run changed the document:\n%+v\n%+v", first, second)
	}
}

func TestRunWithoutPreviousDocument(t *testing.T) {
	raw, out := heroFixture(t)
	if err := os.Remove(filepath.Join(out, "hero.sprite")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(raw, "walk", "config.json"), `{"regenerate": false}`)

	res := runHero(t, raw, out)
	doc := readDocument(t, res.SpritePath)
	if len(doc.Frames) != 3 {
		t.Fatalf("Frames = %d, want 3", len(doc.Frames))
	}
	// jump is reused untrimmed: pivot at (8/2, 8) in full resolution
	if doc.Frames[2].Offset != "2 4" {
		t.Errorf("jump Offset = %q, want %q", doc.Frames[2].Offset, "2 4")
	}
	if doc.SubPositions != "" {
		t.Errorf("SubPositions = %q, want empty", doc.SubPositions)
	}
	if last := doc.NamedAnimations[2]; last.Name != "walk" || last.Frames != "" {
		t.Errorf("walk animation = %+v, want no frames", last)
	}
}

func TestReuseRecordsTrailingImages(t *testing.T) {
	g := Group{Name: "run", Config: config.Animation{Delay: 1, Offset: [2]float64{2, 0}, RecoverX: true, RecoverY: true}}
	images := []*image.NRGBA{solid(4, 4, red), solid(4, 4, red), solid(6, 4, red)}
	carried := []sprite.Carried{{Offset: "9 9"}}

	recs := reuseRecords(g, []string{"0", "1", "2"}, images, carried)
	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3", len(recs))
	}
	if recs[0].Carried == nil || recs[0].Carried.Offset != "9 9" {
		t.Errorf("record 0 carried = %+v", recs[0].Carried)
	}
	for i := 1; i < 3; i++ {
		if recs[i].Carried != nil {
			t.Errorf("record %d should have no carried metadata", i)
		}
		if recs[i].OriginalSize != images[i].Bounds().Size() || recs[i].TrimOffset != (image.Point{}) {
			t.Errorf("record %d = %+v", i, recs[i])
		}
	}

	doc := sprite.Export(recs, []image.Point{{0, 0}, {6, 0}, {12, 0}}, image.Pt(18, 4), image.Pt(9, 2), nil, "")
	if doc.Frames[0].Offset != "9 9" {
		t.Errorf("carried Offset = %q", doc.Frames[0].Offset)
	}
	// (6/2 + 2) * 0.5 = 2.5 -> 3, 4 * 0.5 = 2
	if doc.Frames[2].Offset != "3 2" {
		t.Errorf("trailing Offset = %q, want %q", doc.Frames[2].Offset, "3 2")
	}
}

func TestProcessFrame(t *testing.T) {
	img := solid(12, 12, green)
	for y := 3; y < 7; y++ {
		for x := 3; x < 7; x++ {
			img.SetNRGBA(x, y, red)
		}
	}

	p, err := processFrame(defaultSubject(t), img)
	if err != nil {
		t.Fatal(err)
	}
	if p.Original != image.Pt(12, 12) {
		t.Errorf("Original = %v, want 12x12", p.Original)
	}
	if p.Trim != image.Pt(2, 2) {
		t.Errorf("Trim = %v, want (2,2)", p.Trim)
	}
	if p.Image.Bounds().Size() != image.Pt(6, 6) {
		t.Errorf("size = %v, want 6x6", p.Image.Bounds().Size())
	}
	if c := p.Image.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("background pixel = %v, want transparent", c)
	}
	if c := p.Image.NRGBAAt(1, 1); c != red {
		t.Errorf("content pixel = %v, want %v", c, red)
	}
}

func TestProcessFrameKeepsBackgroundWhenNotRemoving(t *testing.T) {
	s := defaultSubject(t)
	s.RemoveBackground = false
	s.ResizePercent = 50

	img := solid(20, 20, green)
	for y := 8; y < 12; y++ {
		for x := 8; x < 12; x++ {
			img.SetNRGBA(x, y, red)
		}
	}

	p, err := processFrame(s, img)
	if err != nil {
		t.Fatal(err)
	}
	if p.Original != image.Pt(10, 10) {
		t.Errorf("Original = %v, want 10x10", p.Original)
	}
	if p.Trim != image.Pt(4, 4) || p.Image.Bounds().Size() != image.Pt(2, 2) {
		t.Errorf("Trim = %v size = %v, want (4,4) and 2x2", p.Trim, p.Image.Bounds().Size())
	}
}
