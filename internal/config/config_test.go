package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unkn0wn-root/nestedjson/transform"
)

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(`
rules:
  - path: payload
    mode: unnest
  - path: events.*.attrs[]
    mode: nest
keep_going: true
log_level: debug
logger: logrus
max_inner_bytes: 1024
`), YAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(cfg.Rules) != 2 || cfg.Rules[1].Path != "events.*.attrs[]" {
		t.Fatalf("rules: %+v", cfg.Rules)
	}
	if !cfg.KeepGoing || cfg.LogLevel != "debug" || cfg.Logger != "logrus" || cfg.MaxInnerBytes != 1024 {
		t.Fatalf("settings: %+v", cfg)
	}
	rules, err := cfg.TransformRules()
	if err != nil {
		t.Fatal(err)
	}
	if rules[0].Mode != transform.Unnest || rules[1].Mode != transform.Nest {
		t.Fatalf("modes: %+v", rules)
	}
}

func TestParseJSONC(t *testing.T) {
	cfg, err := Parse([]byte(`{
		// double-encoded fields emitted by the gateway
		"rules": [
			{"path": "body", "mode": "unnest"}, /* trailing comma next */
		],
	}`), JSONC)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Path != "body" {
		t.Fatalf("rules: %+v", cfg.Rules)
	}
	// defaults kept for unset keys
	if cfg.LogLevel != "info" || cfg.Logger != "zap" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("rulez: []\n"), YAML); err == nil {
		t.Fatalf("yaml: expected error for unknown key")
	}
	if _, err := Parse([]byte(`{"rulez": []}`), JSONC); err == nil {
		t.Fatalf("jsonc: expected error for unknown key")
	}
}

func TestParseEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil, YAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Rules:         []Rule{{Path: "", Mode: "unnest"}, {Path: "a", Mode: "flatten"}},
		LogLevel:      "loud",
		Logger:        "printf",
		MaxInnerBytes: -1,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	for _, want := range []string{"rules[0]: path is required", "rules[1]", "log_level", "logger", "max_inner_bytes"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %v", want, err)
		}
	}

	if err := Default().Validate(); err == nil || !strings.Contains(err.Error(), "no rules") {
		t.Fatalf("expected no-rules error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yml")
	if err := os.WriteFile(path, []byte("rules:\n  - {path: p, mode: unnest}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Path != "p" {
		t.Fatalf("rules: %+v", cfg.Rules)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(filepath.Join(dir, "rules.toml")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"rules": [`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{"a.yaml": YAML, "a.YML": YAML, "a.json": JSONC, "a.jsonc": JSONC}
	for p, want := range cases {
		got, err := FormatFromPath(p)
		if err != nil || got != want {
			t.Fatalf("%s: got %q, %v", p, got, err)
		}
	}
}
