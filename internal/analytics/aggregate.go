package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Trend is the direction of a metric across a period, computed by
// splitting the date-ordered series in half and comparing the means: a
// relative change above ten percent is a trend, anything else is stable.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// trendChangeThreshold is the relative change between the two half-means
// below which the series counts as stable.
const trendChangeThreshold = 0.10

// ToolUsage is the per-tool slice of a usage report.
type ToolUsage struct {
	Invocations   int     `json:"invocations"`
	Errors        int     `json:"errors"`
	AvgDurationMS float64 `json:"avgDurationMs"`
}

// UsageStats summarizes tool usage across a period.
type UsageStats struct {
	From             string                 `json:"from"`
	To               string                 `json:"to"`
	TotalInvocations int                    `json:"totalInvocations"`
	PerTool          map[ToolName]ToolUsage `json:"perTool"`
	MostPopular      ToolName               `json:"mostPopular,omitempty"`
	AvgDurationMS    float64                `json:"avgDurationMs"`
}

// UsageAggregator computes usage reports from stored events. All methods
// read whole daily partitions; an empty period yields zero counts, never
// an error.
type UsageAggregator struct {
	store *FileStore
}

// NewUsageAggregator builds an aggregator over the given store.
func NewUsageAggregator(store *FileStore) *UsageAggregator {
	return &UsageAggregator{store: store}
}

// normalizeWindow fills in the default trailing 30 day window for zero
// bounds.
func normalizeWindow(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = timeNow().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from, to
}

// Stats aggregates the period into per-tool and overall counts. Zero
// bounds select the default trailing 30 day window.
func (a *UsageAggregator) Stats(ctx context.Context, from, to time.Time) (UsageStats, error) {
	from, to = normalizeWindow(from, to)
	stats := UsageStats{
		From:    from.UTC().Format(DateLayout),
		To:      to.UTC().Format(DateLayout),
		PerTool: make(map[ToolName]ToolUsage),
	}

	events, err := a.store.ReadEvents(ctx, from, to)
	if err != nil {
		return stats, fmt.Errorf("usage stats: %w", err)
	}

	totalDuration := make(map[ToolName]int64)
	var allDuration int64
	for _, ev := range events {
		u := stats.PerTool[ev.ToolName]
		u.Invocations++
		if !ev.Success {
			u.Errors++
		}
		stats.PerTool[ev.ToolName] = u
		totalDuration[ev.ToolName] += ev.DurationMS
		allDuration += ev.DurationMS
		stats.TotalInvocations++
	}
	for tool, u := range stats.PerTool {
		u.AvgDurationMS = float64(totalDuration[tool]) / float64(u.Invocations)
		stats.PerTool[tool] = u
	}
	if stats.TotalInvocations > 0 {
		stats.AvgDurationMS = float64(allDuration) / float64(stats.TotalInvocations)
	}
	stats.MostPopular = mostPopular(stats.PerTool)
	return stats, nil
}

// mostPopular picks the tool with the most invocations, breaking ties by
// name so the answer is deterministic.
func mostPopular(perTool map[ToolName]ToolUsage) ToolName {
	var best ToolName
	bestCount := 0
	for tool, u := range perTool {
		if u.Invocations > bestCount || (u.Invocations == bestCount && bestCount > 0 && tool < best) {
			best = tool
			bestCount = u.Invocations
		}
	}
	return best
}

// DailyCounts returns invocations per calendar day, keyed YYYY-MM-DD.
// Days in the window without events are present with a zero count.
func (a *UsageAggregator) DailyCounts(ctx context.Context, from, to time.Time) (map[string]int, error) {
	from, to = normalizeWindow(from, to)
	events, err := a.store.ReadEvents(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}

	counts := make(map[string]int)
	for day := from.UTC().Truncate(24 * time.Hour); !day.After(to.UTC()); day = day.AddDate(0, 0, 1) {
		counts[day.Format(DateLayout)] = 0
	}
	for _, ev := range events {
		counts[ev.PartitionDate()]++
	}
	return counts, nil
}

// WeeklyCounts returns invocations per ISO week, keyed like 2026-W34.
func (a *UsageAggregator) WeeklyCounts(ctx context.Context, from, to time.Time) (map[string]int, error) {
	from, to = normalizeWindow(from, to)
	events, err := a.store.ReadEvents(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("weekly counts: %w", err)
	}
	counts := make(map[string]int)
	for _, ev := range events {
		year, week := ev.Timestamp.UTC().ISOWeek()
		counts[fmt.Sprintf("%d-W%02d", year, week)]++
	}
	return counts, nil
}

// MonthlyCounts returns invocations per month, keyed YYYY-MM.
func (a *UsageAggregator) MonthlyCounts(ctx context.Context, from, to time.Time) (map[string]int, error) {
	from, to = normalizeWindow(from, to)
	events, err := a.store.ReadEvents(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly counts: %w", err)
	}
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.Timestamp.UTC().Format("2006-01")]++
	}
	return counts, nil
}

// UsageTrend reports whether usage is rising or falling across the
// period, from the daily invocation counts including empty days.
func (a *UsageAggregator) UsageTrend(ctx context.Context, from, to time.Time) (Trend, error) {
	counts, err := a.DailyCounts(ctx, from, to)
	if err != nil {
		return TrendStable, err
	}
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]float64, 0, len(days))
	for _, day := range days {
		series = append(series, float64(counts[day]))
	}
	return trendOf(series), nil
}

// trendOf compares the mean of the first half of a date-ordered series
// with the mean of the second half. Fewer than two points is stable.
func trendOf(series []float64) Trend {
	if len(series) < 2 {
		return TrendStable
	}
	half := len(series) / 2
	first := mean(series[:half])
	second := mean(series[half:])

	if first == 0 {
		if second > 0 {
			return TrendIncreasing
		}
		return TrendStable
	}
	change := (second - first) / first
	switch {
	case change > trendChangeThreshold:
		return TrendIncreasing
	case change < -trendChangeThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
