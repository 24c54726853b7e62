package faction

import (
	"flag"
	"image/color"
	"testing"
)

func TestParseAcceptsBareHex(t *testing.T) {
	f, err := Parse(" Red ", "ff0000")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Name != "Red" {
		t.Fatalf("expected trimmed name, got %q", f.Name)
	}
	if f.Color != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("unexpected colour %+v", f.Color)
	}
	if f.Hex() != "#ff0000" {
		t.Fatalf("expected #ff0000, got %s", f.Hex())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("x", "#zzzzzz"); err == nil {
		t.Fatal("expected invalid colour to fail")
	}
}

func TestDefaultsDistinctAndStable(t *testing.T) {
	a := Defaults(6)
	b := Defaults(6)
	seen := map[color.RGBA]bool{}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("default %d not deterministic: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].Color.A != 255 {
			t.Fatalf("default %d not opaque", i)
		}
		if seen[a[i].Color] {
			t.Fatalf("default %d repeats colour %+v", i, a[i].Color)
		}
		seen[a[i].Color] = true
	}
}

func TestFillNamesUsesHex(t *testing.T) {
	factions := []Faction{{Name: "Blue", Color: color.RGBA{B: 255, A: 255}}, {Color: color.RGBA{G: 255, A: 255}}}
	FillNames(factions)
	if factions[0].Name != "Blue" || factions[1].Name != "#00ff00" {
		t.Fatalf("unexpected names %q, %q", factions[0].Name, factions[1].Name)
	}
}

func TestNearestMatchesPalette(t *testing.T) {
	factions := []Faction{
		{Color: color.RGBA{R: 255, A: 255}},
		{Color: color.RGBA{G: 255, A: 255}},
		{Color: color.RGBA{B: 255, A: 255}},
	}
	if got := Nearest(factions, color.RGBA{R: 10, G: 200, B: 30, A: 255}); got != 1 {
		t.Fatalf("expected green faction, got %d", got)
	}
	if got := Nearest(factions, color.RGBA{R: 20, G: 20, B: 230, A: 255}); got != 2 {
		t.Fatalf("expected blue faction, got %d", got)
	}
	if got := Nearest(nil, color.White); got != -1 {
		t.Fatalf("expected -1 for empty roster, got %d", got)
	}
}

func TestListFlag(t *testing.T) {
	var l List
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&l, "faction", "")
	if err := fs.Parse([]string{"-faction", "Reds=#ff0000", "-faction", "#0000ff"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(l) != 2 || l[0].Name != "Reds" || l[1].Name != "" {
		t.Fatalf("unexpected list %+v", l)
	}
	if got := l.String(); got != "Reds=#ff0000,=#0000ff" {
		t.Fatalf("unexpected String() %q", got)
	}

	parsed, err := ParseList("a=#111111, b=#222222")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(parsed) != 2 || parsed[1].Name != "b" {
		t.Fatalf("unexpected parsed list %+v", parsed)
	}
}
