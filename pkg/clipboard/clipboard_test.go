package clipboard

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	native "github.com/atotto/clipboard"
	"github.com/google/go-cmp/cmp"

	"pbcat/pkg/apperr"
)

type fakeCandidate struct {
	name  string
	err   error
	calls *[]string
	got   []byte
}

func (f *fakeCandidate) Name() string { return f.name }

func (f *fakeCandidate) Copy(data []byte) error {
	*f.calls = append(*f.calls, f.name)
	if f.err != nil {
		return f.err
	}
	f.got = append([]byte(nil), data...)
	return nil
}

func TestDeliverStopsAtFirstSuccess(t *testing.T) {
	var calls []string
	broken := &fakeCandidate{name: "broken", err: errors.New("exit status 1"), calls: &calls}
	working := &fakeCandidate{name: "working", calls: &calls}
	unused := &fakeCandidate{name: "unused", calls: &calls}

	if err := New([]Candidate{broken, working, unused}, nil).Deliver([]byte("payload")); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if diff := cmp.Diff([]string{"broken", "working"}, calls); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
	if string(working.got) != "payload" {
		t.Fatalf("working candidate got %q", working.got)
	}
}

func TestDeliverAllCandidatesFail(t *testing.T) {
	var calls []string
	last := errors.New("xsel: exit status 1")
	cands := []Candidate{
		&fakeCandidate{name: "xclip", err: errors.New("xclip: not found"), calls: &calls},
		&fakeCandidate{name: "xsel", err: last, calls: &calls},
	}

	err := New(cands, nil).Deliver([]byte("x"))
	if !apperr.Is(err, apperr.KindClipboardUnavailable) {
		t.Fatalf("expected clipboard unavailable, got %v", err)
	}
	if !errors.Is(err, last) {
		t.Fatalf("expected the last candidate error to be wrapped, got %v", err)
	}
	if !strings.Contains(err.Error(), "tried xclip, xsel") {
		t.Fatalf("error %q should list the tried candidates", err.Error())
	}
	if len(calls) != 2 {
		t.Fatalf("each candidate should be tried exactly once, got %v", calls)
	}
}

func TestDeliverWithoutCandidates(t *testing.T) {
	err := New(nil, nil).Deliver([]byte("x"))
	if !apperr.Is(err, apperr.KindClipboardUnavailable) {
		t.Fatalf("expected clipboard unavailable, got %v", err)
	}
	if !errors.Is(err, errNoCandidates) {
		t.Fatalf("expected errNoCandidates, got %v", err)
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake clipboard programs need a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommandCopyWritesStdin(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "clip.txt")

	cmd := Command{Program: "sh", Args: []string{"-c", `cat > "$0"`, out}}
	if err := cmd.Copy([]byte("hello clipboard")); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "hello clipboard" {
		t.Fatalf("clipboard content = %q", got)
	}
}

func TestCommandCopyLargePayload(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "clip.txt")
	payload := []byte(strings.Repeat("0123456789abcdef", 1<<14))

	cmd := Command{Program: "sh", Args: []string{"-c", `cat > "$0"`, out}}
	if err := cmd.Copy(payload); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(payload) {
		t.Fatalf("clipboard got %d bytes, want %d", len(got), len(payload))
	}
}

func TestCommandCopyNonZeroExit(t *testing.T) {
	requireShell(t)

	cmd := Command{Program: "sh", Args: []string{"-c", "cat >/dev/null; exit 3"}}
	err := cmd.Copy([]byte("data"))
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected an exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("exit code = %d, want 3", exitErr.ExitCode())
	}
}

// copyWithin runs cmd.Copy and fails the test if it has not returned in time.
func copyWithin(t *testing.T, cmd Command, data []byte, limit time.Duration) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- cmd.Copy(data) }()
	select {
	case err := <-done:
		return err
	case <-time.After(limit):
		t.Fatalf("%s: Copy still blocked after %s", cmd.Name(), limit)
		return nil
	}
}

func TestCommandCopyProgramExitsWithoutReading(t *testing.T) {
	requireShell(t)
	payload := bytes.Repeat([]byte("x"), 4<<20)

	err := copyWithin(t, Command{Program: "sh", Args: []string{"-c", "exit 3"}}, payload, 30*time.Second)
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected an exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("exit code = %d, want 3", exitErr.ExitCode())
	}
}

func TestCommandCopySuccessfulExitWithoutReadingFails(t *testing.T) {
	requireShell(t)
	payload := bytes.Repeat([]byte("x"), 4<<20)

	err := copyWithin(t, Command{Program: "sh", Args: []string{"-c", "exit 0"}}, payload, 30*time.Second)
	if err == nil {
		t.Fatalf("expected a write error when the program drops its input")
	}
	if !strings.Contains(err.Error(), "failed to write input") {
		t.Fatalf("error %q should report the failed write", err.Error())
	}
}

func TestCommandCopyMissingProgram(t *testing.T) {
	cmd := Command{Program: "pbcat-no-such-clipboard-tool"}
	if err := cmd.Copy([]byte("data")); err == nil {
		t.Fatalf("expected a spawn error")
	}
}

func TestDeliverFallsBackToWorkingProgram(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "clip.txt")

	cands := []Candidate{
		Command{Program: "pbcat-no-such-clipboard-tool"},
		Command{Program: "sh", Args: []string{"-c", "cat >/dev/null; exit 1"}},
		Command{Program: "sh", Args: []string{"-c", `cat > "$0"`, out}},
	}
	if err := New(cands, nil).Deliver([]byte("fallback")); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "fallback" {
		t.Fatalf("clipboard content = %q", got)
	}
}

func TestCommandName(t *testing.T) {
	cases := []struct {
		cmd  Command
		want string
	}{
		{Command{Program: "pbcopy"}, "pbcopy"},
		{Command{Program: "xclip", Args: []string{"-selection", "clipboard"}}, "xclip -selection clipboard"},
	}
	for _, tc := range cases {
		if got := tc.cmd.Name(); got != tc.want {
			t.Errorf("Name() = %q, want %q", got, tc.want)
		}
	}
}

func TestCandidates(t *testing.T) {
	names := func(cands []Candidate) []string {
		var out []string
		for _, c := range cands {
			out = append(out, c.Name())
		}
		return out
	}

	cases := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"pbcopy"}},
		{"linux", []string{"wl-copy", "xclip -selection clipboard", "xsel --clipboard --input"}},
		{"freebsd", []string{"wl-copy", "xclip -selection clipboard", "xsel --clipboard --input"}},
		{"android", []string{"termux-clipboard-set"}},
		{"plan9", nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, names(Candidates(tc.goos))); diff != "" {
			t.Errorf("Candidates(%q) mismatch (-want +got):\n%s", tc.goos, diff)
		}
	}

	if got := names(Candidates("windows")); len(got) == 0 || got[0] != "clip" {
		t.Errorf("Candidates(windows) = %v, want clip first", got)
	}
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{EnvFile: "/tmp/out.txt"}
	d := FromEnv(func(k string) string { return env[k] }, "linux", nil)
	sink, ok := d.(FileSink)
	if !ok {
		t.Fatalf("expected FileSink, got %T", d)
	}
	if sink.Path != "/tmp/out.txt" {
		t.Fatalf("Path = %q", sink.Path)
	}

	d = FromEnv(func(string) string { return "" }, "linux", nil)
	if _, ok := d.(*Clipboard); !ok {
		t.Fatalf("expected *Clipboard, got %T", d)
	}
}

func TestFileSinkDeliver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipboard.txt")
	if err := os.WriteFile(path, []byte("old contents that are longer"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := (FileSink{Path: path}).Deliver([]byte("new")); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("file = %q, want %q", got, "new")
	}
}

func TestFileSinkMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "clipboard.txt")
	err := FileSink{Path: path}.Deliver([]byte("x"))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLibraryUnsupported(t *testing.T) {
	if !native.Unsupported {
		t.Skip("a native clipboard is available; not overwriting it")
	}
	if err := (Library{}).Copy([]byte("x")); !errors.Is(err, errLibraryUnsupported) {
		t.Fatalf("expected errLibraryUnsupported, got %v", err)
	}
}
