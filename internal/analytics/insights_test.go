package analytics

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newInsightsGenerator(store *FileStore) *InsightsGenerator {
	return NewInsightsGenerator(NewUsageAggregator(store), NewErrorTracker(store))
}

func TestInsightsEmptyPeriod(t *testing.T) {
	gen := newInsightsGenerator(newTestStore(t))

	ins, err := gen.Generate(context.Background(), mustDate(t, "2026-03-01"), mustDate(t, "2026-03-06"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(ins.Highlights) != 1 {
		t.Fatalf("got %d highlights, want 1: %v", len(ins.Highlights), ins.Highlights)
	}
	want := "no usage recorded between 2026-03-01 and 2026-03-06"
	if ins.Highlights[0] != want {
		t.Errorf("highlight = %q, want %q", ins.Highlights[0], want)
	}
	if ins.UsageTrend != TrendStable || ins.ErrorTrend != TrendStable {
		t.Errorf("trends = %q/%q, want stable/stable", ins.UsageTrend, ins.ErrorTrend)
	}
}

func TestInsightsHighlights(t *testing.T) {
	now := mustDate(t, "2026-03-06").Add(12 * time.Hour)
	pinTime(t, now)

	store := newTestStore(t)
	seedTool(t, store, "2026-03-04", ToolMentalModel, 3, 0, "")
	seedTool(t, store, "2026-03-05", ToolMentalModel, 3, 0, "")
	seedTool(t, store, "2026-03-06", ToolDebugging, 2, 2, CategoryRuntime)

	gen := newInsightsGenerator(store)
	ins, err := gen.Generate(context.Background(), mustDate(t, "2026-03-01"), mustDate(t, "2026-03-06"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !ins.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", ins.GeneratedAt, now)
	}
	if ins.From != "2026-03-01" || ins.To != "2026-03-06" {
		t.Errorf("window = %s..%s", ins.From, ins.To)
	}
	if ins.Usage.TotalInvocations != 8 {
		t.Errorf("TotalInvocations = %d, want 8", ins.Usage.TotalInvocations)
	}
	if ins.UsageTrend != TrendIncreasing {
		t.Errorf("UsageTrend = %q, want %q", ins.UsageTrend, TrendIncreasing)
	}
	if ins.ErrorTrend != TrendIncreasing {
		t.Errorf("ErrorTrend = %q, want %q", ins.ErrorTrend, TrendIncreasing)
	}
	if len(ins.Problematic) != 1 || ins.Problematic[0].Tool != ToolDebugging {
		t.Errorf("Problematic = %+v, want only %q", ins.Problematic, ToolDebugging)
	}

	want := []string{
		"8 tool invocations between 2026-03-01 and 2026-03-06",
		"cogito_mental_model is the most used tool (75% of all invocations)",
		"usage is increasing across the period",
		"overall error rate is 25.0%, trending up",
		"cogito_debugging fails in 100% of 2 invocations (critical)",
	}
	if len(ins.Highlights) != len(want) {
		t.Fatalf("got %d highlights, want %d:\n%s", len(ins.Highlights), len(want), strings.Join(ins.Highlights, "\n"))
	}
	for i, line := range want {
		if ins.Highlights[i] != line {
			t.Errorf("highlight[%d] = %q, want %q", i, ins.Highlights[i], line)
		}
	}
}

func TestInsightsStableTrendsOmitTrendLines(t *testing.T) {
	store := newTestStore(t)
	seedTool(t, store, "2026-03-03", ToolParadigm, 2, 0, "")
	seedTool(t, store, "2026-03-04", ToolParadigm, 2, 0, "")

	gen := newInsightsGenerator(store)
	ins, err := gen.Generate(context.Background(), mustDate(t, "2026-03-03"), mustDate(t, "2026-03-04"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, line := range ins.Highlights {
		if strings.Contains(line, "usage is increasing") || strings.Contains(line, "usage is decreasing") {
			t.Errorf("stable usage produced a trend line: %q", line)
		}
		if strings.Contains(line, "trending") {
			t.Errorf("stable error rate produced a trend suffix: %q", line)
		}
	}
}
