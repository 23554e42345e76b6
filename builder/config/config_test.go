package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// changeToTempDir changes to a temp directory and returns a cleanup function
func changeToTempDir(t *testing.T) func() {
	t.Helper()
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	return func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("Failed to restore original directory: %v", err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	cfg := Load([]string{})

	if cfg.LoadErr != nil {
		t.Errorf("LoadErr = %v, want nil", cfg.LoadErr)
	}
	if cfg.CorpusDir != "content" || cfg.OutputDir != "public" || cfg.CacheDir != ".stemr-cache" {
		t.Errorf("dirs = %q %q %q", cfg.CorpusDir, cfg.OutputDir, cfg.CacheDir)
	}
	if !cfg.Stemming || !cfg.StopWords {
		t.Error("stemming and stop words should be enabled by default")
	}
	if cfg.Workers != 12 {
		t.Errorf("Workers = %d, want 12", cfg.Workers)
	}
	if cfg.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want 10", cfg.MaxResults)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.SnapshotPath() != filepath.Join("public", "search.bin") {
		t.Errorf("SnapshotPath() = %q", cfg.SnapshotPath())
	}
}

func TestLoad_FromYAML(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	yamlContent := `
corpusDir: docs
outputDir: dist
stemming: false
workers: 4
stemCacheTTL: 5m
maxEditDistance: 1
scoreTitleMatch: 20
server:
  addr: ":9000"
  watch: true
log:
  level: debug
  file: stemr.log
`
	if err := os.WriteFile(DefaultConfigFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to create test stemr.yaml: %v", err)
	}

	cfg := Load([]string{})

	if cfg.CorpusDir != "docs" || cfg.OutputDir != "dist" {
		t.Errorf("dirs = %q %q", cfg.CorpusDir, cfg.OutputDir)
	}
	if cfg.Stemming {
		t.Error("Stemming should be disabled")
	}
	if !cfg.StopWords {
		t.Error("StopWords should keep its default")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.StemCacheTTL != 5*time.Minute {
		t.Errorf("StemCacheTTL = %v, want 5m", cfg.StemCacheTTL)
	}
	if cfg.MaxEditDistance != 1 {
		t.Errorf("MaxEditDistance = %d, want 1", cfg.MaxEditDistance)
	}
	if cfg.ScoreTitleMatch != 20 {
		t.Errorf("ScoreTitleMatch = %v, want 20", cfg.ScoreTitleMatch)
	}
	if cfg.ScoreTagMatch != 5 {
		t.Errorf("ScoreTagMatch = %v, want default 5", cfg.ScoreTagMatch)
	}
	if cfg.Server.Addr != ":9000" || !cfg.Server.Watch {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "stemr.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	if err := os.WriteFile(DefaultConfigFile, []byte("corpusDir: docs\nworkers: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load([]string{"-corpus", "notes", "-no-stem", "-force", "query", "terms"})

	if cfg.CorpusDir != "notes" {
		t.Errorf("CorpusDir = %q, flag should win over file", cfg.CorpusDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, unset flag should not override file", cfg.Workers)
	}
	if cfg.Stemming {
		t.Error("-no-stem should disable stemming")
	}
	if !cfg.ForceRebuild {
		t.Error("-force should set ForceRebuild")
	}
	if len(cfg.Args) != 2 || cfg.Args[0] != "query" || cfg.Args[1] != "terms" {
		t.Errorf("Args = %v", cfg.Args)
	}
}

func TestLoad_ConfigFlag(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	if err := os.WriteFile("custom.yaml", []byte("outputDir: site\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load([]string{"-config", "custom.yaml"})
	if cfg.OutputDir != "site" {
		t.Errorf("OutputDir = %q, want site", cfg.OutputDir)
	}
	if cfg.ConfigFile != "custom.yaml" {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	if err := os.WriteFile(DefaultConfigFile, []byte("workers: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load([]string{})
	if cfg.LoadErr == nil {
		t.Error("LoadErr should report the parse failure")
	}
	if cfg.Workers != 12 {
		t.Errorf("Workers = %d, defaults should be kept", cfg.Workers)
	}
}

func TestLoad_Validation(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	yamlContent := `
maxWorkers: 8
workers: 100
maxEditDistance: 9
maxResults: 0
scoreFuzzyModifier: 3
stemCacheSize: 5
debounceDuration: 1ms
server:
  shutdownTimeout: 10m
log:
  level: verbose
`
	if err := os.WriteFile(DefaultConfigFile, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load([]string{})

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Workers", cfg.Workers, 8},
		{"MaxEditDistance", cfg.MaxEditDistance, 4},
		{"MaxResults", cfg.MaxResults, 1},
		{"ScoreFuzzyModifier", cfg.ScoreFuzzyModifier, 1.0},
		{"StemCacheSize", cfg.StemCacheSize, 1000},
		{"DebounceDuration", cfg.DebounceDuration, 10 * time.Millisecond},
		{"ShutdownTimeout", cfg.Server.ShutdownTimeout, 60 * time.Second},
		{"Log.Level", cfg.Log.Level, "info"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSearchOptionsAndFingerprint(t *testing.T) {
	cleanup := changeToTempDir(t)
	defer cleanup()

	cfg := Load([]string{"-limit", "3"})
	opts := cfg.SearchOptions()
	if opts.Limit != 3 || opts.MaxEditDistance != 2 || opts.ScoreTitleMatch != 10 {
		t.Errorf("SearchOptions() = %+v", opts)
	}

	other := Load([]string{"-no-stopwords"})
	if cfg.Fingerprint() == other.Fingerprint() {
		t.Error("analyzer settings should change the fingerprint")
	}
	if got := other.Analyzer().Analyze("the running"); len(got) != 2 || got[1] != "run" {
		t.Errorf("Analyzer().Analyze() = %v", got)
	}
}
