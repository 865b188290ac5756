package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Severity tiers for problematic tools, by error rate.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Error-rate thresholds: at or above critical/warning/info respectively.
// DefaultProblemThreshold is also the floor below which a tool is not
// reported at all.
const (
	criticalErrorRate       = 0.25
	warningErrorRate        = 0.10
	DefaultProblemThreshold = 0.05
)

// ToolErrorStats is the per-tool slice of an error report.
type ToolErrorStats struct {
	Invocations int              `json:"invocations"`
	Errors      int              `json:"errors"`
	ErrorRate   float64          `json:"errorRate"`
	ByCategory  map[Category]int `json:"byCategory,omitempty"`
}

// ErrorStats summarizes failures across a period. Rates are 0 when there
// were no invocations; an empty period is a valid report, not an error.
type ErrorStats struct {
	From             string                      `json:"from"`
	To               string                      `json:"to"`
	TotalInvocations int                         `json:"totalInvocations"`
	TotalErrors      int                         `json:"totalErrors"`
	OverallErrorRate float64                     `json:"overallErrorRate"`
	PerTool          map[ToolName]ToolErrorStats `json:"perTool"`
	ByCategory       map[Category]int            `json:"byCategory,omitempty"`
}

// ProblematicTool is a tool whose error rate crossed the reporting
// threshold.
type ProblematicTool struct {
	Tool        ToolName `json:"tool"`
	Invocations int      `json:"invocations"`
	Errors      int      `json:"errors"`
	ErrorRate   float64  `json:"errorRate"`
	Severity    string   `json:"severity"`
}

// ErrorTracker computes failure reports from stored events.
type ErrorTracker struct {
	store *FileStore
}

// NewErrorTracker builds a tracker over the given store.
func NewErrorTracker(store *FileStore) *ErrorTracker {
	return &ErrorTracker{store: store}
}

// Stats aggregates failures for the period. Zero bounds select the
// default trailing 30 day window.
func (t *ErrorTracker) Stats(ctx context.Context, from, to time.Time) (ErrorStats, error) {
	from, to = normalizeWindow(from, to)
	stats := ErrorStats{
		From:    from.UTC().Format(DateLayout),
		To:      to.UTC().Format(DateLayout),
		PerTool: make(map[ToolName]ToolErrorStats),
	}

	events, err := t.store.ReadEvents(ctx, from, to)
	if err != nil {
		return stats, fmt.Errorf("error stats: %w", err)
	}

	for _, ev := range events {
		stats.TotalInvocations++
		s := stats.PerTool[ev.ToolName]
		s.Invocations++
		if !ev.Success {
			stats.TotalErrors++
			s.Errors++
			cat := ev.ErrorCategory
			if cat == "" {
				cat = CategoryUnknown
			}
			if s.ByCategory == nil {
				s.ByCategory = make(map[Category]int)
			}
			s.ByCategory[cat]++
			if stats.ByCategory == nil {
				stats.ByCategory = make(map[Category]int)
			}
			stats.ByCategory[cat]++
		}
		stats.PerTool[ev.ToolName] = s
	}

	for tool, s := range stats.PerTool {
		if s.Invocations > 0 {
			s.ErrorRate = float64(s.Errors) / float64(s.Invocations)
		}
		stats.PerTool[tool] = s
	}
	if stats.TotalInvocations > 0 {
		stats.OverallErrorRate = float64(stats.TotalErrors) / float64(stats.TotalInvocations)
	}
	return stats, nil
}

// ProblematicTools lists tools whose error rate is at or above the
// threshold, worst first. A non-positive threshold means
// DefaultProblemThreshold.
func (t *ErrorTracker) ProblematicTools(ctx context.Context, from, to time.Time, threshold float64) ([]ProblematicTool, error) {
	if threshold <= 0 {
		threshold = DefaultProblemThreshold
	}
	stats, err := t.Stats(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var out []ProblematicTool
	for tool, s := range stats.PerTool {
		if s.ErrorRate < threshold {
			continue
		}
		out = append(out, ProblematicTool{
			Tool:        tool,
			Invocations: s.Invocations,
			Errors:      s.Errors,
			ErrorRate:   s.ErrorRate,
			Severity:    severityFor(s.ErrorRate),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ErrorRate != out[j].ErrorRate {
			return out[i].ErrorRate > out[j].ErrorRate
		}
		return out[i].Tool < out[j].Tool
	})
	return out, nil
}

func severityFor(rate float64) string {
	switch {
	case rate >= criticalErrorRate:
		return SeverityCritical
	case rate >= warningErrorRate:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Trend reports whether the error rate is rising or falling across the
// period. The series is the per-day error rate over days that saw at
// least one invocation; days without data carry no rate and are skipped.
func (t *ErrorTracker) Trend(ctx context.Context, from, to time.Time) (Trend, error) {
	from, to = normalizeWindow(from, to)
	events, err := t.store.ReadEvents(ctx, from, to)
	if err != nil {
		return TrendStable, fmt.Errorf("error trend: %w", err)
	}

	type dayCount struct{ total, errors int }
	byDay := make(map[string]dayCount)
	for _, ev := range events {
		d := byDay[ev.PartitionDate()]
		d.total++
		if !ev.Success {
			d.errors++
		}
		byDay[ev.PartitionDate()] = d
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]float64, 0, len(days))
	for _, day := range days {
		d := byDay[day]
		series = append(series, float64(d.errors)/float64(d.total))
	}
	return trendOf(series), nil
}
