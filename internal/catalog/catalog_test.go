package catalog

import (
	"strings"
	"testing"
)

// --- List / Get ---

func TestListEveryKindHasEightEntries(t *testing.T) {
	for _, kind := range Kinds() {
		if got := len(List(kind)); got != 8 {
			t.Errorf("List(%s) = %d entries, want 8", kind, got)
		}
	}
}

func TestListUnknownKind(t *testing.T) {
	if got := List(Kind("astrology")); got != nil {
		t.Errorf("List(unknown) = %v, want nil", got)
	}
}

func TestEntriesAreComplete(t *testing.T) {
	for _, kind := range Kinds() {
		seen := make(map[string]bool)
		for _, e := range List(kind) {
			if e.Slug == "" || e.Name == "" || e.Summary == "" || e.Definition == "" {
				t.Errorf("%s/%s: missing identity fields", kind, e.Slug)
			}
			if len(e.WhenToUse) == 0 || len(e.Steps) == 0 || len(e.Pitfalls) == 0 || e.Example == "" {
				t.Errorf("%s/%s: missing guidance sections", kind, e.Slug)
			}
			if e.Slug != strings.ToLower(e.Slug) || strings.Contains(e.Slug, " ") {
				t.Errorf("%s/%s: slug not lowercase-hyphenated", kind, e.Slug)
			}
			if seen[e.Slug] {
				t.Errorf("%s: duplicate slug %q", kind, e.Slug)
			}
			seen[e.Slug] = true
		}
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	for _, slug := range []string{"first-principles", "First-Principles", "  FIRST-PRINCIPLES  "} {
		e, ok := Get(KindMentalModel, slug)
		if !ok {
			t.Fatalf("Get(mental-model, %q) not found", slug)
		}
		if e.Slug != "first-principles" {
			t.Errorf("Get(%q) = %q", slug, e.Slug)
		}
	}
}

func TestGetUnknownSlug(t *testing.T) {
	if _, ok := Get(KindParadigm, "astral-projection"); ok {
		t.Error("Get() found an entry that does not exist")
	}
	if _, ok := Get(KindParadigm, "first-principles"); ok {
		t.Error("Get() found a mental model in the paradigm catalog")
	}
}

func TestSlugsOrder(t *testing.T) {
	slugs := Slugs(KindDebugging)
	if len(slugs) != 8 {
		t.Fatalf("Slugs() = %d, want 8", len(slugs))
	}
	if slugs[0] != "binary-search" {
		t.Errorf("first debugging slug = %q, want binary-search", slugs[0])
	}
}

// --- Render ---

func TestRenderIncludesAllSections(t *testing.T) {
	e, ok := Get(KindMentalModel, "inversion")
	if !ok {
		t.Fatal("inversion entry missing")
	}
	out := Render(KindMentalModel, e)

	checks := []string{
		"# Inversion",
		"`inversion`",
		"## Definition",
		"## When to Use",
		"## How to Apply",
		"1. ",
		"## Pitfalls",
		"## Example",
	}
	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Errorf("Render output missing %q", c)
		}
	}
	for _, step := range e.Steps {
		if !strings.Contains(out, step) {
			t.Errorf("Render output missing step %q", step)
		}
	}
}

func TestRenderList(t *testing.T) {
	out := RenderList(KindDesignPattern)
	if !strings.Contains(out, "# Design Patterns") {
		t.Error("listing missing heading")
	}
	if !strings.Contains(out, "8 entries") {
		t.Error("listing missing count")
	}
	for _, slug := range Slugs(KindDesignPattern) {
		if !strings.Contains(out, "`"+slug+"`") {
			t.Errorf("listing missing slug %q", slug)
		}
	}
}

func TestRenderApplication(t *testing.T) {
	e, ok := Get(KindDebugging, "differential-debugging")
	if !ok {
		t.Fatal("differential-debugging entry missing")
	}
	problem := "works locally, fails in the container"
	out := RenderApplication(KindDebugging, e, problem)

	if !strings.Contains(out, "# Applying Differential Debugging") {
		t.Error("application missing heading")
	}
	if !strings.Contains(out, problem) {
		t.Error("application does not restate the problem")
	}
	if !strings.Contains(out, "## Work Through It") {
		t.Error("application missing checklist section")
	}
	if !strings.Contains(out, e.Steps[0]) {
		t.Error("application missing first step")
	}
}

// --- Index ---

func TestIndexCoversEveryKind(t *testing.T) {
	idx := Index()
	if len(idx) != len(Kinds()) {
		t.Fatalf("Index() has %d kinds, want %d", len(idx), len(Kinds()))
	}
	for _, kind := range Kinds() {
		entries := idx[kind]
		if len(entries) != 8 {
			t.Errorf("Index()[%s] = %d entries, want 8", kind, len(entries))
		}
		for _, ie := range entries {
			if ie.Slug == "" || ie.Name == "" || ie.Summary == "" {
				t.Errorf("Index()[%s] has incomplete entry %+v", kind, ie)
			}
		}
	}
}
