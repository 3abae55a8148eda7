package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDefaults(t *testing.T) {
	out, err := execute(t, "encode")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != config.Encode(config.DefaultParams()) {
		t.Errorf("unexpected config string %q", got)
	}
}

func TestParamPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := os.WriteFile(path, []byte("percentage_a: 30\nbase_speed: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "encode",
		"--preset", "pentagram",
		"--config", path,
		"--base-speed", "7",
		"--show", "A1",
		"--hide", "T",
	)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	p := config.Decode(strings.TrimSpace(out))

	if p.CornersA != 5 || p.CornersB != 2 {
		t.Errorf("expected preset corners 5/2, got %d/%d", p.CornersA, p.CornersB)
	}
	if p.PercentageA != 30 {
		t.Errorf("expected file to override preset, got pA=%g", p.PercentageA)
	}
	if p.BaseSpeed != 7 {
		t.Errorf("expected flag to override file, got bS=%g", p.BaseSpeed)
	}
	if !p.Flags.PrimaryAxis || p.Flags.Trace {
		t.Errorf("expected A1 on and T off, got %+v", p.Flags)
	}
}

func TestParamsStringWinsOverPreset(t *testing.T) {
	out, err := execute(t, "encode", "--preset", "pentagram", "--params", "#cA=6&cB=1")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	p := config.Decode(strings.TrimSpace(out))
	if p.CornersA != 6 || p.CornersB != 1 {
		t.Errorf("expected 6/1, got %d/%d", p.CornersA, p.CornersB)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := [][]string{
		{"encode", "--preset", "nope"},
		{"encode", "--show", "XYZ"},
		{"encode", "--corners-a", "-2"},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestDecode(t *testing.T) {
	out, err := execute(t, "decode", "https://example.org/#C&cA=5")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(out, "corners_a: 5") || !strings.Contains(out, "corners: true") {
		t.Errorf("unexpected yaml:\n%s", out)
	}
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("missing preset %s", name)
		}
	}
}

func TestMatch(t *testing.T) {
	out, err := execute(t, "match", "--rpm", "8")
	if err != nil {
		t.Fatal(err)
	}
	p := config.Decode(strings.TrimSpace(out))
	// fastest hand is B with speedup -4
	if p.BaseSpeed != 2 {
		t.Errorf("expected base speed 2, got %g", p.BaseSpeed)
	}

	out, err = execute(t, "match", "--manual", "--speedup-a", "0", "--speedup-b", "0")
	if err != nil {
		t.Fatalf("no rotation should only warn: %v", err)
	}
	if p := config.Decode(strings.TrimSpace(out)); p.BaseSpeed != config.DefaultBaseSpeed {
		t.Errorf("expected unchanged base speed, got %g", p.BaseSpeed)
	}
}

func TestFrameSVG(t *testing.T) {
	out, err := execute(t, "frame", "--preset", "hands", "--rounds", "0.25")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "<line") {
		t.Errorf("expected svg with lines, got:\n%.200s", out)
	}
}

func TestFramePNGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if _, err := execute(t, "frame", "--format", "png", "--size", "64", "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("expected png signature")
	}
}

func TestFrameUnknownFormat(t *testing.T) {
	if _, err := execute(t, "frame", "--format", "gif"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTraceCSV(t *testing.T) {
	out, err := execute(t, "trace", "--steps", "10")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "step,x,y" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 12 {
		t.Errorf("expected header and 11 rows, got %d lines", len(lines))
	}
}

func TestAnalyze(t *testing.T) {
	out, err := execute(t, "analyze", "--graph=false")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "symmetry: 7-fold") {
		t.Errorf("expected 7-fold symmetry, got:\n%s", out)
	}
	if !strings.Contains(out, "closed: true") {
		t.Errorf("expected closed curve, got:\n%s", out)
	}
}

func TestRecordListExport(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--data", dir, "record", "--duration", "1", "--fps", "10", "--name", "demo")
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if !strings.Contains(out, "frames: 11") {
		t.Errorf("expected 11 frames, got:\n%s", out)
	}

	out, err = execute(t, "--data", dir, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "demo") {
		t.Errorf("expected run in list, got:\n%s", out)
	}

	out, err = execute(t, "--data", dir, "export-json")
	if err != nil {
		t.Fatal(err)
	}
	var data storage.ExportData
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(data.Times) != 11 || len(data.Corners[0]) != 12 {
		t.Errorf("unexpected export shape: %d frames, %d corners", len(data.Times), len(data.Corners[0]))
	}

	if _, err := execute(t, "--data", dir, "delete", data.Metadata.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--data", dir, "plot"); err == nil {
		t.Error("expected error when no runs are left")
	}
}

func TestTour(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	scenario := `name: demo
steps:
  - preset: pentagram
    duration: 0.5
    fps: 10
    save_as: star
  - params: "#cA=3&cB=2"
    duration: 0.5
    fps: 10
`
	if err := os.WriteFile(path, []byte(scenario), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--data", filepath.Join(dir, "runs"), "tour", path)
	if err != nil {
		t.Fatalf("tour failed: %v", err)
	}
	if !strings.Contains(out, "step 2") || strings.Count(out, "run id:") != 1 {
		t.Errorf("unexpected output:\n%s", out)
	}
}
