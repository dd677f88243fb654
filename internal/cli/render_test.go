package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,dot", []string{"svg", "png", "dot"}},
		{"json only", "json", []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, base, want string
	}{
		{"", "family", "family"},
		{"out/tree.svg", "family", "out/tree"},
		{"out/tree.json", "family", "out/tree"},
		{"out/tree", "family", "out/tree"},
		{"out/tree.pdf", "family", "out/tree.pdf"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.base); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.base, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		formats []string
		output  string
		want    string
	}{
		{"single format derived", "svg", []string{"svg"}, "", "family.svg"},
		{"single format explicit", "svg", []string{"svg"}, "drawing.txt", "drawing.txt"},
		{"several formats derived", "svg", []string{"svg", "json"}, "", "family.svg"},
		{"derived json is a layout", "json", []string{"json"}, "", "family.layout.json"},
		{"several formats share prefix", "json", []string{"svg", "json"}, "out/tree.svg", "out/tree.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.format, tt.formats, "family", tt.output); got != tt.want {
				t.Errorf("artifactPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "family")
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	paths, err := writeArtifacts(artifacts, []string{"svg", "json", "png"}, base, "")
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{base + ".svg", base + ".layout.json"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg = %q, %v", data, err)
	}
}

func TestWriteArtifactsCreatesOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "tree.svg")
	if _, err := writeArtifacts(map[string][]byte{"svg": []byte("<svg/>")}, []string{"svg"}, "ignored", out); err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}
