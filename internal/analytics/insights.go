package analytics

import (
	"context"
	"fmt"
	"time"
)

// Insights is a combined usage and reliability report for one period,
// with human-readable highlight lines for display in the telemetry CLI
// and the status resource.
type Insights struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Usage       UsageStats        `json:"usage"`
	Errors      ErrorStats        `json:"errors"`
	Problematic []ProblematicTool `json:"problematicTools,omitempty"`
	UsageTrend  Trend             `json:"usageTrend"`
	ErrorTrend  Trend             `json:"errorTrend"`
	Highlights  []string          `json:"highlights"`
}

// InsightsGenerator composes the aggregators into one report.
type InsightsGenerator struct {
	usage  *UsageAggregator
	errors *ErrorTracker
}

// NewInsightsGenerator builds a generator over the given aggregators.
func NewInsightsGenerator(usage *UsageAggregator, errors *ErrorTracker) *InsightsGenerator {
	return &InsightsGenerator{usage: usage, errors: errors}
}

// Generate builds the full report for the period. Zero bounds select the
// default trailing 30 day window.
func (g *InsightsGenerator) Generate(ctx context.Context, from, to time.Time) (Insights, error) {
	from, to = normalizeWindow(from, to)

	usage, err := g.usage.Stats(ctx, from, to)
	if err != nil {
		return Insights{}, err
	}
	errStats, err := g.errors.Stats(ctx, from, to)
	if err != nil {
		return Insights{}, err
	}
	problematic, err := g.errors.ProblematicTools(ctx, from, to, 0)
	if err != nil {
		return Insights{}, err
	}
	usageTrend, err := g.usage.UsageTrend(ctx, from, to)
	if err != nil {
		return Insights{}, err
	}
	errorTrend, err := g.errors.Trend(ctx, from, to)
	if err != nil {
		return Insights{}, err
	}

	ins := Insights{
		GeneratedAt: timeNow().UTC(),
		From:        usage.From,
		To:          usage.To,
		Usage:       usage,
		Errors:      errStats,
		Problematic: problematic,
		UsageTrend:  usageTrend,
		ErrorTrend:  errorTrend,
	}
	ins.Highlights = highlights(ins)
	return ins, nil
}

// highlights renders the report as short plain sentences.
func highlights(ins Insights) []string {
	if ins.Usage.TotalInvocations == 0 {
		return []string{fmt.Sprintf("no usage recorded between %s and %s", ins.From, ins.To)}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%d tool invocations between %s and %s",
		ins.Usage.TotalInvocations, ins.From, ins.To))

	if ins.Usage.MostPopular != "" {
		share := float64(ins.Usage.PerTool[ins.Usage.MostPopular].Invocations) /
			float64(ins.Usage.TotalInvocations) * 100
		lines = append(lines, fmt.Sprintf("%s is the most used tool (%.0f%% of all invocations)",
			ins.Usage.MostPopular, share))
	}

	switch ins.UsageTrend {
	case TrendIncreasing:
		lines = append(lines, "usage is increasing across the period")
	case TrendDecreasing:
		lines = append(lines, "usage is decreasing across the period")
	}

	errLine := fmt.Sprintf("overall error rate is %.1f%%", ins.Errors.OverallErrorRate*100)
	switch ins.ErrorTrend {
	case TrendIncreasing:
		errLine += ", trending up"
	case TrendDecreasing:
		errLine += ", trending down"
	}
	lines = append(lines, errLine)

	for _, p := range ins.Problematic {
		lines = append(lines, fmt.Sprintf("%s fails in %.0f%% of %d invocations (%s)",
			p.Tool, p.ErrorRate*100, p.Invocations, p.Severity))
	}
	return lines
}
