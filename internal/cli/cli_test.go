package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/TimurManjosov/bfhl/internal/client"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DefaultEnv != "dev" {
		t.Errorf("Expected default env 'dev', got %q", cfg.DefaultEnv)
	}
	if got := cfg.Environments["dev"].BaseURL; got != "http://localhost:3000" {
		t.Errorf("Expected dev base URL http://localhost:3000, got %q", got)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	want := &Config{
		DefaultEnv: "prod",
		Environments: map[string]EnvConfig{
			"prod": {BaseURL: "https://bfhl.example.com"},
		},
	}
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestGetEnvConfig_Priority(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(BaseURLEnvVar, "")
	if err := InitConfig(); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	envCfg, name, err := GetEnvConfig("", "")
	if err != nil {
		t.Fatalf("GetEnvConfig failed: %v", err)
	}
	if name != "dev" || envCfg.BaseURL != "http://localhost:3000" {
		t.Errorf("Expected dev config from file, got %q %+v", name, envCfg)
	}

	t.Setenv(BaseURLEnvVar, "http://from-env:3000")
	envCfg, _, err = GetEnvConfig("", "")
	if err != nil {
		t.Fatalf("GetEnvConfig failed: %v", err)
	}
	if envCfg.BaseURL != "http://from-env:3000" {
		t.Errorf("Expected env var base URL, got %q", envCfg.BaseURL)
	}

	envCfg, _, err = GetEnvConfig("", "http://from-flag:3000")
	if err != nil {
		t.Fatalf("GetEnvConfig failed: %v", err)
	}
	if envCfg.BaseURL != "http://from-flag:3000" {
		t.Errorf("Expected flag base URL, got %q", envCfg.BaseURL)
	}
}

func TestGetEnvConfig_UnknownEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(BaseURLEnvVar, "")

	if _, _, err := GetEnvConfig("staging", ""); err == nil {
		t.Error("Expected error for unknown environment")
	}
}

func TestPrintResult_Formats(t *testing.T) {
	result := &client.Result{
		IsSuccess:     true,
		OfficialEmail: "tester@example.edu",
		Data:          json.RawMessage(`[0,1,1,2,7540113804746346429]`),
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := PrintResult(&buf, "fibonacci", result, FormatJSON); err != nil {
			t.Fatalf("PrintResult failed: %v", err)
		}
		if !strings.Contains(buf.String(), "7540113804746346429") {
			t.Errorf("Expected exact large integer in output, got %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := PrintResult(&buf, "fibonacci", result, FormatYAML); err != nil {
			t.Fatalf("PrintResult failed: %v", err)
		}
		var got struct {
			Operation string  `yaml:"operation"`
			Data      []int64 `yaml:"data"`
		}
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("Output is not valid YAML: %v", err)
		}
		if diff := cmp.Diff([]int64{0, 1, 1, 2, 7540113804746346429}, got.Data); diff != "" {
			t.Errorf("Data mismatch (-want +got):\n%s", diff)
		}
		if got.Operation != "fibonacci" {
			t.Errorf("Expected operation fibonacci, got %q", got.Operation)
		}
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := PrintResult(&buf, "fibonacci", result, FormatTable); err != nil {
			t.Fatalf("PrintResult failed: %v", err)
		}
		if !strings.Contains(buf.String(), "[0,1,1,2,7540113804746346429]") {
			t.Errorf("Expected compact data in table, got %s", buf.String())
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		if err := PrintResult(&buf, "fibonacci", result, OutputFormat("xml")); err == nil {
			t.Error("Expected error for unsupported format")
		}
	})
}

func TestPrintResult_TableShowsErrorAndPlainAnswer(t *testing.T) {
	var buf bytes.Buffer
	failed := &client.Result{OfficialEmail: "tester@example.edu", Error: "lcm cannot be calculated with zero"}
	if err := PrintResult(&buf, "lcm", failed, FormatTable); err != nil {
		t.Fatalf("PrintResult failed: %v", err)
	}
	if !strings.Contains(buf.String(), "lcm cannot be calculated with zero") {
		t.Errorf("Expected error message in table, got %s", buf.String())
	}

	buf.Reset()
	answered := &client.Result{IsSuccess: true, Data: json.RawMessage(`"Paris"`)}
	if err := PrintResult(&buf, "AI", answered, FormatTable); err != nil {
		t.Fatalf("PrintResult failed: %v", err)
	}
	if strings.Contains(buf.String(), `"Paris"`) || !strings.Contains(buf.String(), "Paris") {
		t.Errorf("Expected unquoted answer in table, got %s", buf.String())
	}
}

func TestPrintInfoAndHealth(t *testing.T) {
	info := &client.Info{
		IsSuccess: true,
		Endpoints: map[string]string{"GET /health": "Health check", "POST /bfhl": "Process operations"},
	}
	var buf bytes.Buffer
	if err := PrintInfo(&buf, info, FormatTable); err != nil {
		t.Fatalf("PrintInfo failed: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "GET /health") > strings.Index(out, "POST /bfhl") {
		t.Errorf("Expected endpoints sorted, got %s", out)
	}

	buf.Reset()
	if err := PrintHealth(&buf, &client.Health{IsSuccess: true, OfficialEmail: "tester@example.edu"}, FormatJSON); err != nil {
		t.Fatalf("PrintHealth failed: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if got["is_success"] != true {
		t.Errorf("Expected is_success true, got %v", got["is_success"])
	}
}
