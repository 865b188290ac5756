package updater

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
)

// --- normalizeVersion ---

func TestNormalizeVersion_StripsV(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"v0.1.0", "0.1.0"},
		{"", ""},
		{"v", ""},
		{"vv1.0.0", "v1.0.0"}, // only strips one leading v
	}

	for _, tt := range tests {
		got := normalizeVersion(tt.input)
		if got != tt.want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// --- isNewer ---

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer patch", "0.2.0", "0.2.1", true},
		{"newer minor", "0.2.0", "0.3.0", true},
		{"newer major", "0.2.0", "1.0.0", true},
		{"same version", "0.2.0", "0.2.0", false},
		{"older version", "0.3.0", "0.2.0", false},
		{"empty current", "", "0.2.0", false},
		{"empty latest", "0.2.0", "", false},
		{"both empty", "", "", false},
		{"dev current", "dev", "0.2.0", false},
		{"two part version", "0.2", "0.3.0", true},
		{"two part latest", "0.2.0", "0.3", true},
		{"major jump", "1.9.9", "2.0.0", true},
		{"minor jump", "0.9.0", "0.10.0", true},
		{"prerelease suffix ignored", "1.2.3-rc1", "1.2.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isNewer(tt.current, tt.latest)
			if got != tt.want {
				t.Errorf("isNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

// --- leadingInt ---

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"0", 0},
		{"1", 1},
		{"42", 42},
		{"10", 10},
		{"", 0},
		{"abc", 0},
		{"3rc1", 3}, // stops at non-digit
	}

	for _, tt := range tests {
		got := leadingInt(tt.input)
		if got != tt.want {
			t.Errorf("leadingInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// --- buildAssetName ---

func TestBuildAssetName(t *testing.T) {
	got := buildAssetName("0.3.0")

	wantExt := "tar.gz"
	if runtime.GOOS == "windows" {
		wantExt = "zip"
	}

	want := "cogito_0.3.0_" + runtime.GOOS + "_" + runtime.GOARCH + "." + wantExt
	if got != want {
		t.Errorf("buildAssetName(\"0.3.0\") = %q, want %q", got, want)
	}
}

// --- Check ---

// newTestServer responds with a fake GitHub release payload. Caller must
// defer ts.Close().
func newTestServer(t *testing.T, rel release, statusCode int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(statusCode)
		if statusCode == http.StatusOK {
			if err := json.NewEncoder(w).Encode(rel); err != nil {
				t.Errorf("encoding test response: %v", err)
			}
		}
	}))
	return ts
}

// withTestServer overrides releaseEndpoint and httpClient, restoring them
// when the test finishes.
func withTestServer(t *testing.T, ts *httptest.Server) {
	t.Helper()
	origEndpoint := releaseEndpoint
	origClient := httpClient

	releaseEndpoint = ts.URL
	httpClient = ts.Client()

	t.Cleanup(func() {
		releaseEndpoint = origEndpoint
		httpClient = origClient
	})
}

func TestCheck_UpdateAvailable(t *testing.T) {
	rel := release{
		TagName: "v0.3.0",
		HTMLURL: "https://github.com/cogitohq/cogito/releases/tag/v0.3.0",
	}
	ts := newTestServer(t, rel, http.StatusOK)
	defer ts.Close()
	withTestServer(t, ts)

	result := Check("v0.2.0")

	if !result.UpdateAvailable {
		t.Error("expected UpdateAvailable to be true")
	}
	if result.LatestVersion != "0.3.0" {
		t.Errorf("LatestVersion = %q, want %q", result.LatestVersion, "0.3.0")
	}
	if result.CurrentVersion != "0.2.0" {
		t.Errorf("CurrentVersion = %q, want %q", result.CurrentVersion, "0.2.0")
	}
	if result.ReleaseURL != rel.HTMLURL {
		t.Errorf("ReleaseURL = %q, want %q", result.ReleaseURL, rel.HTMLURL)
	}
}

func TestCheck_AlreadyLatest(t *testing.T) {
	rel := release{
		TagName: "v0.2.0",
		HTMLURL: "https://github.com/cogitohq/cogito/releases/tag/v0.2.0",
	}
	ts := newTestServer(t, rel, http.StatusOK)
	defer ts.Close()
	withTestServer(t, ts)

	result := Check("v0.2.0")

	if result.UpdateAvailable {
		t.Error("expected UpdateAvailable to be false when already at latest")
	}
}

func TestCheck_NetworkError(t *testing.T) {
	// Point at a server that is already closed.
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()
	withTestServer(t, ts)

	result := Check("v0.2.0")

	if result.UpdateAvailable {
		t.Error("expected UpdateAvailable to be false on network error")
	}
	if result.LatestVersion != "" {
		t.Errorf("LatestVersion = %q, want empty on network error", result.LatestVersion)
	}
	if result.CurrentVersion != "0.2.0" {
		t.Errorf("CurrentVersion = %q, want %q", result.CurrentVersion, "0.2.0")
	}
}

func TestCheck_APIErrorStatus(t *testing.T) {
	ts := newTestServer(t, release{}, http.StatusForbidden)
	defer ts.Close()
	withTestServer(t, ts)

	result := Check("v0.2.0")

	if result.UpdateAvailable {
		t.Error("expected UpdateAvailable to be false on API error")
	}
}

func TestCheck_DevVersion(t *testing.T) {
	rel := release{
		TagName: "v0.3.0",
		HTMLURL: "https://github.com/cogitohq/cogito/releases/tag/v0.3.0",
	}
	ts := newTestServer(t, rel, http.StatusOK)
	defer ts.Close()
	withTestServer(t, ts)

	result := Check("dev")

	// Dev builds cannot be compared, so they never report updates.
	if result.UpdateAvailable {
		t.Error("expected UpdateAvailable to be false for dev version")
	}
}

// --- SelfUpdate ---

func TestSelfUpdate_AlreadyLatest(t *testing.T) {
	rel := release{
		TagName: "v0.2.0",
		HTMLURL: "https://github.com/cogitohq/cogito/releases/tag/v0.2.0",
	}
	ts := newTestServer(t, rel, http.StatusOK)
	defer ts.Close()
	withTestServer(t, ts)

	err := SelfUpdate("v0.2.0")
	if err == nil {
		t.Fatal("expected error when already at latest version")
	}
	if got := err.Error(); got != "already at latest version (v0.2.0)" {
		t.Errorf("error = %q, want %q", got, "already at latest version (v0.2.0)")
	}
}

func TestSelfUpdate_APIError(t *testing.T) {
	ts := newTestServer(t, release{}, http.StatusInternalServerError)
	defer ts.Close()
	withTestServer(t, ts)

	if err := SelfUpdate("v0.2.0"); err == nil {
		t.Fatal("expected error on API failure")
	}
}

func TestSelfUpdate_NoMatchingAsset(t *testing.T) {
	rel := release{
		TagName: "v0.3.0",
		HTMLURL: "https://github.com/cogitohq/cogito/releases/tag/v0.3.0",
		Assets: []asset{
			{
				Name:               "cogito_0.3.0_solaris_sparc.tar.gz",
				BrowserDownloadURL: "https://example.com/nope",
			},
		},
	}
	ts := newTestServer(t, rel, http.StatusOK)
	defer ts.Close()
	withTestServer(t, ts)

	if err := SelfUpdate("v0.2.0"); err == nil {
		t.Fatal("expected error when no matching asset found")
	}
}

// --- archive extraction ---

// createTestTarGz builds a tar.gz archive holding one file.
func createTestTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	header := &tar.Header{
		Name: name,
		Mode: 0o755,
		Size: int64(len(content)),
	}
	if err := tw.WriteHeader(header); err != nil {
		t.Fatalf("writing tar header: %v", err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatalf("writing tar body: %v", err)
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar writer: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}

	return buf.Bytes()
}

// createTestZip builds a zip archive holding one file.
func createTestZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := w.Write(content); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}

	return buf.Bytes()
}

func TestExtractFromTarGz_Success(t *testing.T) {
	content := []byte("#!/bin/sh\necho hello\n")
	archive := createTestTarGz(t, "cogito", content)

	data, err := extractFromTarGz(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractFromTarGz: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("extracted = %q, want %q", data, content)
	}
}

func TestExtractFromTarGz_NestedPath(t *testing.T) {
	content := []byte("binary")
	archive := createTestTarGz(t, "cogito_0.3.0_linux_amd64/cogito", content)

	data, err := extractFromTarGz(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractFromTarGz: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("extracted = %q, want %q", data, content)
	}
}

func TestExtractFromTarGz_BinaryNotFound(t *testing.T) {
	archive := createTestTarGz(t, "not-the-binary", []byte("hello"))

	if _, err := extractFromTarGz(bytes.NewReader(archive)); err == nil {
		t.Fatal("expected error when binary not found in archive")
	}
}

func TestExtractFromTarGz_InvalidGzip(t *testing.T) {
	if _, err := extractFromTarGz(bytes.NewReader([]byte("not gzip data"))); err == nil {
		t.Fatal("expected error on invalid gzip data")
	}
}

func TestExtractFromZip_Success(t *testing.T) {
	content := []byte("windows binary")
	archive := createTestZip(t, "cogito.exe", content)

	data, err := extractFromZip(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractFromZip: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("extracted = %q, want %q", data, content)
	}
}

func TestExtractFromZip_BinaryNotFound(t *testing.T) {
	archive := createTestZip(t, "README.md", []byte("docs"))

	if _, err := extractFromZip(bytes.NewReader(archive)); err == nil {
		t.Fatal("expected error when binary not found in zip")
	}
}

func TestExtractFromZip_InvalidArchive(t *testing.T) {
	if _, err := extractFromZip(bytes.NewReader([]byte("not a zip"))); err == nil {
		t.Fatal("expected error on invalid zip data")
	}
}

func TestExtractBinary_DispatchesByExtension(t *testing.T) {
	content := []byte("binary data")

	tarData := createTestTarGz(t, "cogito", content)
	data, err := extractBinary(bytes.NewReader(tarData), "cogito_0.3.0_linux_amd64.tar.gz")
	if err != nil {
		t.Fatalf("extractBinary (tar.gz): %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("tar.gz: extracted = %q, want %q", data, content)
	}

	zipData := createTestZip(t, "cogito.exe", content)
	data, err = extractBinary(bytes.NewReader(zipData), "cogito_0.3.0_windows_amd64.zip")
	if err != nil {
		t.Fatalf("extractBinary (zip): %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("zip: extracted = %q, want %q", data, content)
	}
}
