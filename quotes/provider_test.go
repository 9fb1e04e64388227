package quotes

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/google/go-cmp/cmp"
)

const testDataset = `
categories:
  - id: calm
    name: Calm
    subtitle: "Slow down"
    color: "#00BCD4"
    gradient: ["#4DD0E1", "#26C6DA"]
quotes:
  - text: "Breathe in."
    author: "Thich Nhat Hanh"
    category: calm
  - text: "Dream big and dare to fail."
    author: "Norman Vaughan"
  - text: "Untitled thought."
`

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := Parse([]byte(testDataset), WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return p
}

func TestNew_BundledDataset(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	all := p.All()
	if len(all) < 80 {
		t.Errorf("bundled dataset too small: %d quotes", len(all))
	}
	for i, q := range all {
		if strings.TrimSpace(q.Text) == "" {
			t.Errorf("quote %d has no text", i)
		}
	}

	cats := p.Categories()
	if len(cats) != 6 {
		t.Fatalf("category count mismatch: got %d, want 6", len(cats))
	}
	for _, c := range cats {
		if len(c.Gradient) != 2 {
			t.Errorf("category %s gradient has %d stops, want 2", c.ID, len(c.Gradient))
		}
		if len(p.ByCategory(c.ID)) == 0 {
			t.Errorf("category %s has no quotes", c.ID)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"malformed": "quotes: [",
		"empty":     "quotes: []",
		"blank":     "quotes:\n  - text: \"  \"\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: Parse() expected error", name)
		}
	}
}

func TestRandom_ReturnsDatasetQuote(t *testing.T) {
	p := newTestProvider(t)
	all := p.All()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		q := p.Random()
		found := false
		for _, c := range all {
			if c == q {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Random() returned unknown quote %+v", q)
		}
		seen[q.Text] = true
	}
	if len(seen) != len(all) {
		t.Errorf("Random() covered %d of %d quotes in 200 draws", len(seen), len(all))
	}
}

func TestRandom_Deterministic(t *testing.T) {
	a, _ := Parse([]byte(testDataset), WithRand(rand.New(rand.NewSource(7))))
	b, _ := Parse([]byte(testDataset), WithRand(rand.New(rand.NewSource(7))))

	for i := 0; i < 10; i++ {
		if qa, qb := a.Random(), b.Random(); qa != qb {
			t.Fatalf("draw %d differs with equal seeds: %q vs %q", i, qa.Text, qb.Text)
		}
	}
}

func TestByAuthor(t *testing.T) {
	p := newTestProvider(t)

	got := p.ByAuthor("nhat")
	want := []core.Quote{{Text: "Breathe in.", Author: "Thich Nhat Hanh", Category: "calm"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ByAuthor() mismatch (-want +got):\n%s", diff)
	}

	if got := p.ByAuthor("nobody"); len(got) != 0 {
		t.Errorf("ByAuthor(nobody) = %v, want empty", got)
	}
}

func TestSearch(t *testing.T) {
	p := newTestProvider(t)

	if got := p.Search("DREAM"); len(got) != 1 || got[0].Author != "Norman Vaughan" {
		t.Errorf("Search(DREAM) by text = %+v", got)
	}
	if got := p.Search("hanh"); len(got) != 1 || got[0].Text != "Breathe in." {
		t.Errorf("Search(hanh) by author = %+v", got)
	}
	if got := p.Search(""); len(got) != 3 {
		t.Errorf("Search(\"\") returned %d quotes, want 3", len(got))
	}
	if got := p.Search("zzz"); got == nil || len(got) != 0 {
		t.Errorf("Search(zzz) = %#v, want empty non-nil slice", got)
	}
}

func TestByCategory(t *testing.T) {
	p := newTestProvider(t)

	if got := p.ByCategory("Calm"); len(got) != 1 {
		t.Errorf("ByCategory(Calm) returned %d quotes, want 1", len(got))
	}
	if got := p.ByCategory("love"); len(got) != 0 {
		t.Errorf("ByCategory(love) returned %d quotes, want 0", len(got))
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	p := newTestProvider(t)
	all := p.All()
	all[0].Text = "changed"

	if p.All()[0].Text == "changed" {
		t.Error("All() exposed the dataset")
	}
}
