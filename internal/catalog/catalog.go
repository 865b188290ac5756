// Package catalog holds the built-in reasoning catalogs served by the
// cogito tools: mental models, design patterns, programming paradigms,
// and debugging approaches. Content is compiled in; there is no disk or
// network lookup.
package catalog

import "strings"

// Kind identifies one catalog.
type Kind string

const (
	KindMentalModel   Kind = "mental-model"
	KindDesignPattern Kind = "design-pattern"
	KindParadigm      Kind = "paradigm"
	KindDebugging     Kind = "debugging"
)

// Kinds returns every catalog kind in display order.
func Kinds() []Kind {
	return []Kind{KindMentalModel, KindDesignPattern, KindParadigm, KindDebugging}
}

// Title returns the human heading for a kind.
func (k Kind) Title() string {
	switch k {
	case KindMentalModel:
		return "Mental Models"
	case KindDesignPattern:
		return "Design Patterns"
	case KindParadigm:
		return "Programming Paradigms"
	case KindDebugging:
		return "Debugging Approaches"
	default:
		return string(k)
	}
}

// Entry is one catalog item. Every field is plain text or markdown
// fragments; Render assembles them into a document.
type Entry struct {
	Slug       string
	Name       string
	Summary    string
	Definition string
	WhenToUse  []string
	Steps      []string
	Pitfalls   []string
	Example    string
}

var byKind = map[Kind][]Entry{
	KindMentalModel:   mentalModels,
	KindDesignPattern: designPatterns,
	KindParadigm:      paradigms,
	KindDebugging:     debuggingApproaches,
}

// List returns the entries of a kind in catalog order. Unknown kinds
// return nil.
func List(kind Kind) []Entry {
	return byKind[kind]
}

// Get looks an entry up by slug, case-insensitively and ignoring
// surrounding whitespace.
func Get(kind Kind, slug string) (Entry, bool) {
	slug = strings.TrimSpace(slug)
	for _, e := range byKind[kind] {
		if strings.EqualFold(e.Slug, slug) {
			return e, true
		}
	}
	return Entry{}, false
}

// Slugs returns the slugs of a kind in catalog order.
func Slugs(kind Kind) []string {
	entries := byKind[kind]
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Slug
	}
	return out
}

// IndexEntry is the compact form used by the catalog index resource.
type IndexEntry struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Index returns every catalog as compact index entries, keyed by kind.
func Index() map[Kind][]IndexEntry {
	out := make(map[Kind][]IndexEntry, len(byKind))
	for kind, entries := range byKind {
		idx := make([]IndexEntry, len(entries))
		for i, e := range entries {
			idx[i] = IndexEntry{Slug: e.Slug, Name: e.Name, Summary: e.Summary}
		}
		out[kind] = idx
	}
	return out
}
