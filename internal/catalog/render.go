package catalog

import (
	"fmt"
	"strings"
)

// Render produces the full markdown document for one entry.
func Render(kind Kind, e Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", e.Name))
	sb.WriteString(fmt.Sprintf("*%s: `%s`*\n\n", kind.Title(), e.Slug))
	sb.WriteString(e.Summary)
	sb.WriteString("\n\n## Definition\n\n")
	sb.WriteString(e.Definition)
	sb.WriteString("\n")

	if len(e.WhenToUse) > 0 {
		sb.WriteString("\n## When to Use\n\n")
		for _, w := range e.WhenToUse {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}
	if len(e.Steps) > 0 {
		sb.WriteString("\n## How to Apply\n\n")
		for i, s := range e.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
		}
	}
	if len(e.Pitfalls) > 0 {
		sb.WriteString("\n## Pitfalls\n\n")
		for _, p := range e.Pitfalls {
			sb.WriteString(fmt.Sprintf("- %s\n", p))
		}
	}
	if e.Example != "" {
		sb.WriteString("\n## Example\n\n")
		sb.WriteString(e.Example)
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderList produces a markdown listing of every entry in a kind, for
// the no-argument form of the catalog tools.
func RenderList(kind Kind) string {
	entries := List(kind)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", kind.Title()))
	sb.WriteString(fmt.Sprintf("%d entries. Request one by slug for the full write-up.\n\n", len(entries)))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("- `%s`: **%s**. %s\n", e.Slug, e.Name, e.Summary))
	}
	return sb.String()
}

// RenderApplication produces the entry rendered against a concrete
// problem statement: the steps become a working checklist.
func RenderApplication(kind Kind, e Entry, problem string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Applying %s\n\n", e.Name))
	sb.WriteString("## Problem\n\n")
	sb.WriteString(problem)
	sb.WriteString("\n\n## Approach\n\n")
	sb.WriteString(e.Definition)
	sb.WriteString("\n\n## Work Through It\n\n")
	for i, s := range e.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n   - Applied here: \n", i+1, s))
	}
	if len(e.Pitfalls) > 0 {
		sb.WriteString("\n## Watch Out For\n\n")
		for _, p := range e.Pitfalls {
			sb.WriteString(fmt.Sprintf("- %s\n", p))
		}
	}
	sb.WriteString(fmt.Sprintf("\nFull reference: request `%s` from the %s catalog without a problem statement.\n",
		e.Slug, kind.Title()))
	return sb.String()
}
