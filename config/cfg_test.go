package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flint/common"
)

func TestLoadConfiguration_Defaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if cfg.Lint.Jobs != 0 {
		t.Errorf("jobs = %d, want 0", cfg.Lint.Jobs)
	}
	if cfg.Lint.Format != common.ReportFmtText {
		t.Errorf("format = %s, want text", cfg.Lint.Format)
	}
	if cfg.Lint.MinSeverity != common.SeverityWarning {
		t.Errorf("min_severity = %s, want warning", cfg.Lint.MinSeverity)
	}
	if cfg.Lint.Baseline != "" {
		t.Errorf("baseline = %q, want empty", cfg.Lint.Baseline)
	}
	if len(cfg.Catalog.Definitions) != 0 {
		t.Errorf("definitions = %v, want empty", cfg.Catalog.Definitions)
	}
	if cfg.Reporting.Destination == "" {
		t.Error("reporting destination has no default")
	}
}

func TestLoadConfiguration_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
version: 1
lint:
  jobs: 4
  format: json
  min_severity: error
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("unable to write config: %v", err)
	}

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	if cfg.Lint.Jobs != 4 {
		t.Errorf("jobs = %d, want 4", cfg.Lint.Jobs)
	}
	if cfg.Lint.Format != common.ReportFmtJSON {
		t.Errorf("format = %s, want json", cfg.Lint.Format)
	}
	if cfg.Lint.MinSeverity != common.SeverityError {
		t.Errorf("min_severity = %s, want error", cfg.Lint.MinSeverity)
	}
	// values absent from the file keep template defaults
	if cfg.Reporting.Destination == "" {
		t.Error("file overlay wiped the reporting defaults")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown field",
			content: "version: 1\nbogus: true\n",
		},
		{
			name:    "bad version",
			content: "version: 7\n",
		},
		{
			name:    "bad format",
			content: "version: 1\nlint:\n  format: xml\n",
		},
		{
			name:    "negative jobs",
			content: "version: 1\nlint:\n  jobs: -2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("unable to write config: %v", err)
			}
			if _, err := LoadConfiguration(path); err == nil {
				t.Error("expected configuration load to fail")
			}
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing configuration file")
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	for _, want := range []string{"version:", "catalog:", "lint:", "logging:", "reporting:"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("default configuration missing %q", want)
		}
	}

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	dump, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if !strings.Contains(string(dump), "min_severity: warning") {
		t.Errorf("dump missing active values:\n%s", dump)
	}
}
