package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.Success(map[string]any{
		"status":  "saved",
		"entries": 3,
	})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["status"] != "saved" {
		t.Errorf("status = %v, want %q", result["status"], "saved")
	}
	if result["entries"] != float64(3) {
		t.Errorf("entries = %v, want 3", result["entries"])
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewSystemError("cannot read content.json"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != "cannot read content.json" {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitSystemError {
		t.Errorf("code = %v, want %d", result["code"], ExitSystemError)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "Content saved"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if got := buf.String(); got != "Content saved\n" {
		t.Errorf("output = %q, want %q", got, "Content saved\n")
	}
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(NewUserError("run 'lunchlady setup' first"))

	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Error: run 'lunchlady setup' first") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPrinter_Info(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Info("Add Section %s", "cancelled")
	if buf.String() != "Add Section cancelled\n" {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("Info in JSON mode should be silent, got %q", buf.String())
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("theme %q has no html folder", "dark")
	if !strings.Contains(buf.String(), `Warning: theme "dark" has no html folder`) {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Warn("degraded")
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if result["warning"] != "degraded" {
		t.Errorf("warning = %v", result["warning"])
	}
}

func TestPrinter_SatisfiesReporter(t *testing.T) {
	var _ Reporter = NewPrinter(&bytes.Buffer{}, false, false)
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"KEY", "TITLE"}, [][]string{
		{"home", "Home"},
		{"projects", "Projects"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if strings.TrimRight(lines[0], " ") != "KEY       TITLE" {
		t.Errorf("header = %q", lines[0])
	}
	if strings.TrimRight(lines[1], " ") != "home      Home" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestPrinter_ColorOffIsPlain(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)
	printer.Section("Sections")
	printer.KeyValue("Title", "Test Site")
	printer.Info("Saved %s", "content.json")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("escape codes in uncolored output: %q", buf.String())
	}
	for _, want := range []string{"Sections", "Title: Test Site", "Saved content.json"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %q", want, buf.String())
		}
	}
}

func TestErrorJSON_Format(t *testing.T) {
	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(ErrorJSON("test error", ExitConflict), &parsed); err != nil {
		t.Fatalf("Failed to parse ErrorJSON output: %v", err)
	}
	if parsed.Error != "test error" || parsed.Code != ExitConflict {
		t.Errorf("parsed = %+v", parsed)
	}
}
