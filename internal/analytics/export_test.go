package analytics

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestExporter(t *testing.T) (*Exporter, *FileStore) {
	t.Helper()
	store := newTestStore(t)
	return NewExporter(store, NewUsageAggregator(store), newInsightsGenerator(store)), store
}

func TestExportDocument(t *testing.T) {
	ex, store := newTestExporter(t)
	seedTool(t, store, "2026-03-10", ToolMentalModel, 4, 1, CategoryRuntime)

	doc, err := ex.Export(context.Background(), ExportOptions{
		From: mustDate(t, "2026-03-01"),
		To:   mustDate(t, "2026-03-31"),
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if doc.Metadata.Version != ExportSchemaVersion {
		t.Errorf("Version = %q, want %q", doc.Metadata.Version, ExportSchemaVersion)
	}
	if doc.Metadata.From != "2026-03-01" || doc.Metadata.To != "2026-03-31" {
		t.Errorf("window = %s..%s", doc.Metadata.From, doc.Metadata.To)
	}
	if doc.Summary.TotalInvocations != 4 || doc.Summary.TotalErrors != 1 {
		t.Errorf("summary = %d invocations / %d errors, want 4/1",
			doc.Summary.TotalInvocations, doc.Summary.TotalErrors)
	}
	if doc.Summary.MostPopular != ToolMentalModel {
		t.Errorf("MostPopular = %q, want %q", doc.Summary.MostPopular, ToolMentalModel)
	}
	if doc.UsageStats == nil || doc.UsageStats.TotalInvocations != 4 {
		t.Errorf("UsageStats = %+v, want 4 invocations", doc.UsageStats)
	}
	if doc.ErrorStats == nil || doc.ErrorStats.TotalErrors != 1 {
		t.Errorf("ErrorStats = %+v, want 1 error", doc.ErrorStats)
	}
	if doc.DailyCounts["2026-03-10"] != 4 {
		t.Errorf("DailyCounts[2026-03-10] = %d, want 4", doc.DailyCounts["2026-03-10"])
	}
	if doc.MonthlyCounts["2026-03"] != 4 {
		t.Errorf("MonthlyCounts[2026-03] = %d, want 4", doc.MonthlyCounts["2026-03"])
	}
	if doc.Trends == nil || doc.InsightsReport == nil || len(doc.InsightsSummary) == 0 {
		t.Error("trend or insight sections missing")
	}
	if doc.StorageInfo.FileCount != 1 || doc.StorageInfo.EventCount != 4 {
		t.Errorf("StorageInfo = %+v", doc.StorageInfo)
	}
	if doc.RawEvents != nil {
		t.Error("RawEvents present without IncludeRaw")
	}
}

func TestExportRankings(t *testing.T) {
	ex, store := newTestExporter(t)
	seedTool(t, store, "2026-03-10", ToolDebugging, 6, 0, "")
	seedTool(t, store, "2026-03-11", ToolParadigm, 2, 0, "")

	doc, err := ex.Export(context.Background(), ExportOptions{
		From: mustDate(t, "2026-03-01"),
		To:   mustDate(t, "2026-03-31"),
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if len(doc.ToolMetrics) != 2 || doc.ToolMetrics[0].Tool != ToolDebugging {
		t.Fatalf("ToolMetrics = %+v, want debugging first", doc.ToolMetrics)
	}
	ranking := doc.PopularityRanking
	if len(ranking) != 2 {
		t.Fatalf("got %d ranking entries, want 2", len(ranking))
	}
	if ranking[0].Rank != 1 || ranking[0].Tool != ToolDebugging || ranking[0].Invocations != 6 {
		t.Errorf("rank 1 = %+v", ranking[0])
	}
	if ranking[1].Rank != 2 || ranking[1].Tool != ToolParadigm {
		t.Errorf("rank 2 = %+v", ranking[1])
	}
	if got := ranking[0].Share; got < 0.74 || got > 0.76 {
		t.Errorf("rank 1 share = %v, want 0.75", got)
	}
}

func TestExportEmptyPeriodOmitsAnalytics(t *testing.T) {
	ex, _ := newTestExporter(t)

	doc, err := ex.Export(context.Background(), ExportOptions{
		From: mustDate(t, "2026-03-01"),
		To:   mustDate(t, "2026-03-31"),
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if doc.Summary.TotalInvocations != 0 {
		t.Errorf("TotalInvocations = %d, want 0", doc.Summary.TotalInvocations)
	}
	if doc.UsageStats != nil || doc.ErrorStats != nil || doc.Trends != nil || doc.InsightsReport != nil {
		t.Error("analytic sections present for an empty period")
	}
	if doc.DailyCounts != nil || doc.PopularityRanking != nil {
		t.Error("count sections present for an empty period")
	}
}

func TestExportSummaryCarriesNoEventData(t *testing.T) {
	ex, store := newTestExporter(t)
	seedTool(t, store, "2026-03-10", ToolDebugging, 3, 1, CategoryTimeout)
	opts := ExportOptions{From: mustDate(t, "2026-03-01"), To: mustDate(t, "2026-03-31")}

	data, err := ex.ExportJSON(context.Background(), opts)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if strings.Contains(string(data), "sessionId") {
		t.Error("summary export leaks per-event session data")
	}
	if strings.Contains(string(data), "rawEvents") {
		t.Error("summary export contains rawEvents section")
	}

	opts.IncludeRaw = true
	data, err = ex.ExportJSON(context.Background(), opts)
	if err != nil {
		t.Fatalf("ExportJSON(IncludeRaw) error = %v", err)
	}
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(doc.RawEvents) != 3 {
		t.Errorf("got %d raw events, want 3", len(doc.RawEvents))
	}
}

func TestExportWriteFile(t *testing.T) {
	ex, store := newTestExporter(t)
	seedTool(t, store, "2026-03-10", ToolParadigm, 2, 0, "")

	path := filepath.Join(t.TempDir(), "exports", "usage.json")
	opts := ExportOptions{From: mustDate(t, "2026-03-01"), To: mustDate(t, "2026-03-31")}
	if err := ex.WriteFile(context.Background(), opts, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export file is not valid JSON: %v", err)
	}
	if doc.Metadata.Version != ExportSchemaVersion {
		t.Errorf("Version = %q, want %q", doc.Metadata.Version, ExportSchemaVersion)
	}
	if doc.Summary.TotalInvocations != 2 {
		t.Errorf("TotalInvocations = %d, want 2", doc.Summary.TotalInvocations)
	}
}
