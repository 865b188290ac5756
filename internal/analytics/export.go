package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/natefinch/atomic"
)

// ExportSchemaVersion identifies the export document layout.
const ExportSchemaVersion = "1.0"

// ExportOptions control what an export contains.
type ExportOptions struct {
	// From and To bound the period; zero values select the default
	// trailing 30 day window.
	From time.Time
	To   time.Time

	// IncludeRaw adds the individual event records. Off by default: the
	// analytic sections never contain per-event data.
	IncludeRaw bool
}

// ExportMetadata stamps an export document.
type ExportMetadata struct {
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	From        string    `json:"from"`
	To          string    `json:"to"`
}

// ExportSummary is the top-line section, present in every export.
type ExportSummary struct {
	TotalInvocations int      `json:"totalInvocations"`
	TotalErrors      int      `json:"totalErrors"`
	OverallErrorRate float64  `json:"overallErrorRate"`
	MostPopular      ToolName `json:"mostPopular,omitempty"`
}

// ToolMetric merges one tool's usage and failure counts.
type ToolMetric struct {
	Tool          ToolName `json:"tool"`
	Invocations   int      `json:"invocations"`
	Errors        int      `json:"errors"`
	ErrorRate     float64  `json:"errorRate"`
	AvgDurationMS float64  `json:"avgDurationMs"`
}

// PopularityEntry ranks one tool by invocation count, rank 1 first.
type PopularityEntry struct {
	Rank        int      `json:"rank"`
	Tool        ToolName `json:"tool"`
	Invocations int      `json:"invocations"`
	Share       float64  `json:"share"`
}

// ExportTrends carries the period's trend directions.
type ExportTrends struct {
	Usage  Trend `json:"usage"`
	Errors Trend `json:"errors"`
}

// ExportDocument is the versioned, self-describing export format
// produced by the telemetry CLI. Metadata, summary, and storageInfo are
// always present; the analytic sections are omitted for a period with no
// recorded usage; rawEvents appears only on explicit request.
type ExportDocument struct {
	Metadata          ExportMetadata    `json:"metadata"`
	Summary           ExportSummary     `json:"summary"`
	UsageStats        *UsageStats       `json:"usageStats,omitempty"`
	ToolMetrics       []ToolMetric      `json:"toolMetrics,omitempty"`
	PopularityRanking []PopularityEntry `json:"popularityRanking,omitempty"`
	DailyCounts       map[string]int    `json:"dailyCounts,omitempty"`
	WeeklyCounts      map[string]int    `json:"weeklyCounts,omitempty"`
	MonthlyCounts     map[string]int    `json:"monthlyCounts,omitempty"`
	Trends            *ExportTrends     `json:"trends,omitempty"`
	ErrorStats        *ErrorStats       `json:"errorStats,omitempty"`
	ProblematicTools  []ProblematicTool `json:"problematicTools,omitempty"`
	ErrorTrend        Trend             `json:"errorTrend,omitempty"`
	InsightsReport    *Insights         `json:"insightsReport,omitempty"`
	InsightsSummary   []string          `json:"insightsSummary,omitempty"`
	RawEvents         []Event           `json:"rawEvents,omitempty"`
	StorageInfo       StorageInfo       `json:"storageInfo"`
}

// Exporter assembles export documents.
type Exporter struct {
	store    *FileStore
	usage    *UsageAggregator
	insights *InsightsGenerator
}

// NewExporter builds an exporter over the given store and aggregators.
func NewExporter(store *FileStore, usage *UsageAggregator, insights *InsightsGenerator) *Exporter {
	return &Exporter{store: store, usage: usage, insights: insights}
}

// Export builds the document for the requested period.
func (ex *Exporter) Export(ctx context.Context, opts ExportOptions) (ExportDocument, error) {
	from, to := normalizeWindow(opts.From, opts.To)

	ins, err := ex.insights.Generate(ctx, from, to)
	if err != nil {
		return ExportDocument{}, fmt.Errorf("export: %w", err)
	}
	info, err := ex.store.Info(ctx)
	if err != nil {
		return ExportDocument{}, fmt.Errorf("export: %w", err)
	}

	doc := ExportDocument{
		Metadata: ExportMetadata{
			Version:     ExportSchemaVersion,
			GeneratedAt: ins.GeneratedAt,
			From:        ins.From,
			To:          ins.To,
		},
		Summary: ExportSummary{
			TotalInvocations: ins.Usage.TotalInvocations,
			TotalErrors:      ins.Errors.TotalErrors,
			OverallErrorRate: ins.Errors.OverallErrorRate,
			MostPopular:      ins.Usage.MostPopular,
		},
		StorageInfo: info,
	}

	if ins.Usage.TotalInvocations > 0 {
		daily, err := ex.usage.DailyCounts(ctx, from, to)
		if err != nil {
			return ExportDocument{}, fmt.Errorf("export daily counts: %w", err)
		}
		weekly, err := ex.usage.WeeklyCounts(ctx, from, to)
		if err != nil {
			return ExportDocument{}, fmt.Errorf("export weekly counts: %w", err)
		}
		monthly, err := ex.usage.MonthlyCounts(ctx, from, to)
		if err != nil {
			return ExportDocument{}, fmt.Errorf("export monthly counts: %w", err)
		}

		usage := ins.Usage
		errStats := ins.Errors
		report := ins
		doc.UsageStats = &usage
		doc.ToolMetrics = toolMetrics(ins.Usage, ins.Errors)
		doc.PopularityRanking = popularityRanking(ins.Usage)
		doc.DailyCounts = daily
		doc.WeeklyCounts = weekly
		doc.MonthlyCounts = monthly
		doc.Trends = &ExportTrends{Usage: ins.UsageTrend, Errors: ins.ErrorTrend}
		doc.ErrorStats = &errStats
		doc.ProblematicTools = ins.Problematic
		doc.ErrorTrend = ins.ErrorTrend
		doc.InsightsReport = &report
		doc.InsightsSummary = ins.Highlights
	}

	if opts.IncludeRaw {
		events, err := ex.store.ReadEvents(ctx, from, to)
		if err != nil {
			return ExportDocument{}, fmt.Errorf("export raw events: %w", err)
		}
		doc.RawEvents = events
	}
	return doc, nil
}

// toolMetrics merges the per-tool views, most used first.
func toolMetrics(usage UsageStats, errStats ErrorStats) []ToolMetric {
	out := make([]ToolMetric, 0, len(usage.PerTool))
	for tool, u := range usage.PerTool {
		m := ToolMetric{
			Tool:          tool,
			Invocations:   u.Invocations,
			Errors:        u.Errors,
			AvgDurationMS: u.AvgDurationMS,
		}
		if s, ok := errStats.PerTool[tool]; ok {
			m.ErrorRate = s.ErrorRate
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Invocations != out[j].Invocations {
			return out[i].Invocations > out[j].Invocations
		}
		return out[i].Tool < out[j].Tool
	})
	return out
}

// popularityRanking orders tools by invocation count, with 1-based ranks
// and each tool's share of all invocations in the period.
func popularityRanking(usage UsageStats) []PopularityEntry {
	out := make([]PopularityEntry, 0, len(usage.PerTool))
	for tool, u := range usage.PerTool {
		out = append(out, PopularityEntry{Tool: tool, Invocations: u.Invocations})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Invocations != out[j].Invocations {
			return out[i].Invocations > out[j].Invocations
		}
		return out[i].Tool < out[j].Tool
	})
	for i := range out {
		out[i].Rank = i + 1
		if usage.TotalInvocations > 0 {
			out[i].Share = float64(out[i].Invocations) / float64(usage.TotalInvocations)
		}
	}
	return out
}

// ExportJSON renders the document as indented JSON.
func (ex *Exporter) ExportJSON(ctx context.Context, opts ExportOptions) ([]byte, error) {
	doc, err := ex.Export(ctx, opts)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// WriteFile exports to a file, creating parent directories as needed.
func (ex *Exporter) WriteFile(ctx context.Context, opts ExportOptions, path string) error {
	data, err := ex.ExportJSON(ctx, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
