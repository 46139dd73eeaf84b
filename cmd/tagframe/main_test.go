package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/tagframe/internal/config"
	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/types"
	"github.com/simonhull/tagframe/internal/wire"
)

var audio = []byte{0xFF, 0xFB, 0x90, 0x64, 0x00, 0x01}

// writeMP3 writes a tagged file holding one TIT2 frame.
func writeMP3(t *testing.T, dir, name, title string) string {
	t.Helper()

	tag := id3v2.NewTag()
	tag.Add(id3v2.Frame{ID: "TIT2", Content: id3v2.Text{Value: title}})

	var buf bytes.Buffer
	if _, err := id3v2.Encode(&buf, tag, 0); err != nil {
		t.Fatal(err)
	}
	buf.Write(audio)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func titleOf(t *testing.T, records []types.Record) string {
	t.Helper()

	for _, rec := range records {
		if rec.ID == "TIT2" {
			s, ok := rec.Payload.(types.String)
			if !ok {
				t.Fatalf("TIT2 payload = %T, want String", rec.Payload)
			}
			return string(s)
		}
	}
	t.Fatal("no TIT2 record")
	return ""
}

func TestRun_Arguments(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"no subcommand", nil, exitUsage, "", "missing subcommand"},
		{"unknown subcommand", []string{"tag"}, exitUsage, "", `unknown subcommand "tag"`},
		{"unknown flag", []string{"--colour", "load"}, exitUsage, "", "colour"},
		{"help", []string{"--help"}, exitOK, "Usage:", ""},
		{"short help", []string{"-h"}, exitOK, "--preserve-mtime", ""},
		{"version", []string{"--version"}, exitOK, "tagframe 0.1.0", ""},
		{"bad format", []string{"--format", "yaml", "load", "x.mp3"}, exitUsage, "", "output.format"},
		{"bad level", []string{"--log-level", "loud", "load", "x.mp3"}, exitUsage, "", "log.level"},
		{"negative padding", []string{"--padding", "-1", "load", "x.mp3"}, exitUsage, "", "write.padding"},
		{"load without path", []string{"load"}, exitUsage, "", "missing file path"},
		{"update without path", []string{"update"}, exitUsage, "", "missing file path"},
		{"update extra argument", []string{"update", "a", "b", "c"}, exitUsage, "", `unexpected argument "c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)
			if res.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", res.code, tt.wantCode, res.stderr)
			}
			if tt.wantOut != "" && !strings.Contains(res.stdout, tt.wantOut) {
				t.Errorf("stdout %q should contain %q", res.stdout, tt.wantOut)
			}
			if tt.wantErr != "" && !strings.Contains(res.stderr, tt.wantErr) {
				t.Errorf("stderr %q should contain %q", res.stderr, tt.wantErr)
			}
		})
	}
}

func TestRun_Load(t *testing.T) {
	path := writeMP3(t, t.TempDir(), "song.mp3", "Song")

	res := runCLI(t, "", "load", path)
	if res.code != exitOK {
		t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
	}

	records, err := wire.DecodeJSON([]byte(res.stdout))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if got := titleOf(t, records); got != "Song" {
		t.Errorf("title = %q, want Song", got)
	}
}

func TestRun_LoadMany(t *testing.T) {
	dir := t.TempDir()
	first := writeMP3(t, dir, "a.mp3", "First")
	second := writeMP3(t, dir, "b.mp3", "Second")

	res := runCLI(t, "", "load", first, second)
	if res.code != exitOK {
		t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
	}

	dec := json.NewDecoder(strings.NewReader(res.stdout))
	var titles []string
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			t.Fatal(err)
		}
		records, err := wire.DecodeJSON(raw)
		if err != nil {
			t.Fatal(err)
		}
		titles = append(titles, titleOf(t, records))
	}

	if len(titles) != 2 || titles[0] != "First" || titles[1] != "Second" {
		t.Errorf("titles = %v, want [First Second]", titles)
	}
}

func TestRun_LoadMissingFile(t *testing.T) {
	res := runCLI(t, "", "load", filepath.Join(t.TempDir(), "missing.mp3"))
	if res.code != exitError {
		t.Errorf("exit code = %d, want %d", res.code, exitError)
	}
	if !strings.Contains(res.stderr, "error:") {
		t.Errorf("stderr %q should report the error", res.stderr)
	}
}

func TestRun_UpdateFromStdin(t *testing.T) {
	path := writeMP3(t, t.TempDir(), "song.mp3", "Old")

	res := runCLI(t, `[["text", "TIT2", "New", false]]`, "update", path)
	if res.code != exitOK {
		t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
	}

	records, err := wire.DecodeJSON([]byte(res.stdout))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if got := titleOf(t, records); got != "New" {
		t.Errorf("printed title = %q, want New", got)
	}

	res = runCLI(t, "", "load", path)
	records, err = wire.DecodeJSON([]byte(res.stdout))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if got := titleOf(t, records); got != "New" {
		t.Errorf("stored title = %q, want New", got)
	}
}

func TestRun_UpdateFromFileAsCBOR(t *testing.T) {
	dir := t.TempDir()
	path := writeMP3(t, dir, "song.mp3", "Old")

	var edits bytes.Buffer
	if err := wire.EncodeCBOR(&edits, []types.Record{
		{Kind: types.KindText, ID: "TIT2", Payload: types.String("Binary")},
	}); err != nil {
		t.Fatal(err)
	}
	editsPath := filepath.Join(dir, "edits.cbor")
	if err := os.WriteFile(editsPath, edits.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, "", "--format", "cbor", "--backup", ".orig", "--validate", "update", path, editsPath)
	if res.code != exitOK {
		t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
	}

	records, err := wire.DecodeCBOR([]byte(res.stdout))
	if err != nil {
		t.Fatalf("DecodeCBOR() error = %v", err)
	}
	if got := titleOf(t, records); got != "Binary" {
		t.Errorf("title = %q, want Binary", got)
	}
	if _, err := os.Stat(path + ".orig"); err != nil {
		t.Errorf("backup missing: %v", err)
	}
}

func TestRun_UpdateRejectsBadEdits(t *testing.T) {
	path := writeMP3(t, t.TempDir(), "song.mp3", "Old")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, `[["lyrics", "USLT", {"lang": "eng"}, false]]`, "update", path, "-")
	if res.code != exitError {
		t.Errorf("exit code = %d, want %d", res.code, exitError)
	}
	if !strings.Contains(res.stderr, "decoding edits") {
		t.Errorf("stderr %q should mention decoding", res.stderr)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("file changed after rejected edits")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeMP3(t, dir, "song.mp3", "Song")
	cfgPath := filepath.Join(dir, "tagframe.yaml")
	if err := os.WriteFile(cfgPath, []byte("output:\n  format: cbor\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("file value applies", func(t *testing.T) {
		res := runCLI(t, "", "--config", cfgPath, "load", path)
		if res.code != exitOK {
			t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
		}
		if _, err := wire.DecodeCBOR([]byte(res.stdout)); err != nil {
			t.Errorf("output is not CBOR: %v", err)
		}
	})

	t.Run("flag overrides file", func(t *testing.T) {
		res := runCLI(t, "", "--config", cfgPath, "--format", "json", "load", path)
		if res.code != exitOK {
			t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
		}
		if _, err := wire.DecodeJSON([]byte(res.stdout)); err != nil {
			t.Errorf("output is not JSON: %v", err)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		res := runCLI(t, "", "--config", filepath.Join(dir, "missing.yaml"), "load", path)
		if res.code != exitUsage {
			t.Errorf("exit code = %d, want %d", res.code, exitUsage)
		}
	})
}

func TestRun_DebugLogging(t *testing.T) {
	path := writeMP3(t, t.TempDir(), "song.mp3", "Old")

	res := runCLI(t, `[["text", "TIT2", "New", false]]`, "--log-level", "debug", "update", path)
	if res.code != exitOK {
		t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
	}
	if !strings.Contains(res.stderr, "tag written") {
		t.Errorf("stderr %q should contain the write log", res.stderr)
	}
}
