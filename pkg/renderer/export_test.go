package renderer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/resume-builder/pkg/resume"
	"gopkg.in/yaml.v3"
)

func TestJSONIsPrettyAndNormalized(t *testing.T) {
	out, err := JSON(janeDoe())
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	if !strings.Contains(string(out), "\n  \"personal\": {") {
		t.Errorf("expected indented output, got:\n%s", out)
	}

	var decoded resume.Data
	err = json.Unmarshal(out, &decoded)
	if err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Personal.FullName != "Jane Doe" {
		t.Errorf("expected Jane Doe, got %q", decoded.Personal.FullName)
	}
	if decoded.Projects == nil || decoded.CustomSections == nil {
		t.Error("expected empty lists to be exported as arrays")
	}
}

func TestYAML(t *testing.T) {
	out, err := YAML(janeDoe())
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}

	var decoded resume.Data
	err = yaml.Unmarshal(out, &decoded)
	if err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Experience) != 1 || decoded.Experience[0].Company != "Acme" {
		t.Errorf("unexpected experience: %+v", decoded.Experience)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: ".JSON", want: FormatJSON},
		{in: "markdown", want: FormatMarkdown},
		{in: "md", want: FormatMarkdown},
		{in: "yml", want: FormatYAML},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExport(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatMarkdown, FormatYAML} {
		out, err := Export(janeDoe(), []string{"experience"}, format, nil)
		if err != nil {
			t.Fatalf("Export(%s) failed: %v", format, err)
		}
		if !strings.Contains(string(out), "Acme") {
			t.Errorf("Export(%s) lost content:\n%s", format, out)
		}
	}

	_, err := Export(janeDoe(), nil, Format("pdf"), nil)
	if err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "dir", "resume.md")

	err := WriteFile([]byte("# Test"), nestedPath)
	if err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, err := os.ReadFile(nestedPath)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(data) != "# Test" {
		t.Errorf("Expected content '# Test', got '%s'", string(data))
	}
}

func TestDefaultFilename(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		format   Format
		expected string
	}{
		{name: "simple", fullName: "Jane Doe", format: FormatJSON, expected: "jane-doe.json"},
		{name: "punctuation", fullName: "  Dr. Jane  O'Doe ", format: FormatMarkdown, expected: "dr-jane-o-doe.md"},
		{name: "non latin", fullName: "张 伟", format: FormatYAML, expected: "张-伟.yaml"},
		{name: "empty", fullName: "", format: FormatMarkdown, expected: "resume.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DefaultFilename(tt.fullName, tt.format)
			if result != tt.expected {
				t.Errorf("DefaultFilename(%q) = %q, want %q", tt.fullName, result, tt.expected)
			}
		})
	}
}
