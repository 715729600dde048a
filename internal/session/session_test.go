package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/handiism/ia-launcher/internal/dosbox"
	"github.com/handiism/ia-launcher/internal/model"
	"github.com/handiism/ia-launcher/internal/store"
)

// failingFetcher counts calls; any fetch is unexpected in these tests.
type failingFetcher struct {
	calls int
}

func (f *failingFetcher) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	f.calls++
	return fmt.Errorf("unexpected fetch of %s", url)
}

// notFoundLocator simulates a host without DOSBox.
type notFoundLocator struct{}

func (notFoundLocator) Locate() (string, error) {
	return "", dosbox.ErrNotFound
}

func newGame(t *testing.T, withPayload bool) *model.Game {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "test_title")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	g := model.LoadGame(dir)
	if withPayload {
		if err := os.MkdirAll(g.GameDir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

// fakeEmulator installs a shell script standing in for DOSBox and
// returns a locator for it. The script body runs with the payload
// directory as its working directory, like the real emulator.
func fakeEmulator(t *testing.T, body string) dosbox.Locator {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script emulator stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "dosbox")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return dosbox.Fixed(path)
}

func hasArg(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}

func TestBuildPlanNoBootCommand(t *testing.T) {
	g := newGame(t, true)

	// A requested autorun is silently downgraded: there is nothing to
	// auto-execute.
	for _, requested := range []bool{true, false} {
		p := buildPlan(g, requested)

		if p.autorun {
			t.Errorf("autorun=%v request: effective autorun = true, want false", requested)
		}
		if hasArg(p.args, "-exit") {
			t.Errorf("autorun=%v request: -exit flag set without a boot command", requested)
		}
		if p.runTarget != "." {
			t.Errorf("autorun=%v request: runTarget = %q, want %q", requested, p.runTarget, ".")
		}
		if string(p.script) != "\n" {
			t.Errorf("autorun=%v request: script = %q, want placeholder", requested, p.script)
		}
	}
}

func TestBuildPlanNoBootCommandKeepsExistingScript(t *testing.T) {
	g := newGame(t, true)
	if err := os.WriteFile(g.BatPath, []byte("HAND.BAT"), 0644); err != nil {
		t.Fatal(err)
	}

	p := buildPlan(g, true)
	if p.script != nil {
		t.Errorf("existing script would be overwritten with %q", p.script)
	}
}

func TestBuildPlanAutorunScript(t *testing.T) {
	g := newGame(t, true)
	g.EmulatorStart = "CD KEEN\nKEEN1.EXE"

	p := buildPlan(g, true)

	if !p.autorun {
		t.Error("effective autorun = false, want true")
	}
	if p.runTarget != model.ScriptFile {
		t.Errorf("runTarget = %q, want %q", p.runTarget, model.ScriptFile)
	}
	want := "@echo off\ncls\nCD KEEN\nKEEN1.EXE"
	if string(p.script) != want {
		t.Errorf("script = %q, want %q", p.script, want)
	}
	if !hasArg(p.args, "-exit") {
		t.Error("-exit flag missing for autorun")
	}
	if !hasArg(p.args, "-fullscreen") {
		t.Error("-fullscreen flag missing")
	}
}

func TestBuildPlanAutorunExecutableShortcut(t *testing.T) {
	g := newGame(t, true)
	g.EmulatorStart = "KEEN1.EXE"
	if err := os.WriteFile(filepath.Join(g.GameDir, "KEEN1.EXE"), []byte("MZ"), 0644); err != nil {
		t.Fatal(err)
	}

	p := buildPlan(g, true)

	// The boot command names an existing file, so it is the run target
	// itself; no script is generated.
	if p.runTarget != "KEEN1.EXE" {
		t.Errorf("runTarget = %q, want %q", p.runTarget, "KEEN1.EXE")
	}
	if p.script != nil {
		t.Errorf("script = %q, want none", p.script)
	}
	if !hasArg(p.args, "-exit") {
		t.Error("-exit flag missing for autorun")
	}
}

func TestBuildPlanInteractive(t *testing.T) {
	g := newGame(t, true)
	g.EmulatorStart = "KEEN1.EXE"

	p := buildPlan(g, false)

	if p.autorun {
		t.Error("effective autorun = true, want false")
	}
	if p.runTarget != "." {
		t.Errorf("runTarget = %q, want %q", p.runTarget, ".")
	}
	// Script holds the bare boot command, no echo-suppression preamble.
	if string(p.script) != "KEEN1.EXE" {
		t.Errorf("script = %q, want %q", p.script, "KEEN1.EXE")
	}
	if hasArg(p.args, "-exit") {
		t.Error("-exit flag set for an interactive session")
	}
}

func TestBuildPlanConfigArgs(t *testing.T) {
	g := newGame(t, true)

	p := buildPlan(g, false)
	if hasArg(p.args, "-conf") {
		t.Error("-conf flag set without emulator config")
	}

	g.DOSBoxConf = "[cpu]\ncycles=max"
	p = buildPlan(g, false)
	for _, want := range []string{"-fullscreen", "-userconf", "-conf", model.ConfFile} {
		if !hasArg(p.args, want) {
			t.Errorf("args = %v, missing %q", p.args, want)
		}
	}
}

func TestCapture(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		hasScript  bool
		wantSaved  string
		wantChange bool
	}{
		{"non-empty script adopted", "FOO.EXE\nBAR.EXE\n", true, "FOO.EXE\nBAR.EXE\n", true},
		{"empty script ignored", "", true, "", false},
		{"missing script ignored", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, true)
			g.EmulatorStart = "ORIGINAL.EXE"
			if err := g.SaveMetadata(); err != nil {
				t.Fatal(err)
			}
			if tt.hasScript {
				if err := os.WriteFile(g.BatPath, []byte(tt.script), 0644); err != nil {
					t.Fatal(err)
				}
			}

			c := NewController(nil, nil)
			if err := c.capture(g); err != nil {
				t.Fatalf("capture: %v", err)
			}

			want := "ORIGINAL.EXE"
			if tt.wantChange {
				want = tt.wantSaved
			}
			if g.EmulatorStart != want {
				t.Errorf("EmulatorStart = %q, want %q", g.EmulatorStart, want)
			}

			fresh := model.LoadGame(g.Dir)
			if fresh.EmulatorStart != want {
				t.Errorf("persisted EmulatorStart = %q, want %q", fresh.EmulatorStart, want)
			}
		})
	}
}

func TestStartInteractiveCapturesScriptEdits(t *testing.T) {
	locator := fakeEmulator(t, `printf 'FOO.EXE\nBAR.EXE\n' > dosbox.bat`)

	g := newGame(t, true)
	g.EmulatorStart = "FOO.EXE"
	if err := g.SaveMetadata(); err != nil {
		t.Fatal(err)
	}

	c := NewController(store.NewStoreWithFetcher(&failingFetcher{}, nil), locator)
	if err := c.Start(context.Background(), g, false); err != nil {
		t.Fatalf("Start: %v", err)
	}

	want := "FOO.EXE\nBAR.EXE\n"
	if g.EmulatorStart != want {
		t.Errorf("EmulatorStart = %q, want %q", g.EmulatorStart, want)
	}
	fresh := model.LoadGame(g.Dir)
	if fresh.EmulatorStart != want {
		t.Errorf("persisted EmulatorStart = %q, want %q", fresh.EmulatorStart, want)
	}
}

func TestStartInteractiveIgnoresEmptiedScript(t *testing.T) {
	locator := fakeEmulator(t, `: > dosbox.bat`)

	g := newGame(t, true)
	g.EmulatorStart = "FOO.EXE"
	if err := g.SaveMetadata(); err != nil {
		t.Fatal(err)
	}

	c := NewController(store.NewStoreWithFetcher(&failingFetcher{}, nil), locator)
	if err := c.Start(context.Background(), g, false); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if g.EmulatorStart != "FOO.EXE" {
		t.Errorf("EmulatorStart = %q, want unchanged %q", g.EmulatorStart, "FOO.EXE")
	}
}

func TestStartPassesArgumentsAndWorkingDirectory(t *testing.T) {
	locator := fakeEmulator(t, `echo "$@" > args.txt`)

	g := newGame(t, true)
	g.EmulatorStart = "KEEN1.EXE"
	g.DOSBoxConf = "[cpu]\ncycles=max"
	if err := g.SaveMetadata(); err != nil {
		t.Fatal(err)
	}

	c := NewController(store.NewStoreWithFetcher(&failingFetcher{}, nil), locator)
	if err := c.Start(context.Background(), g, false); err != nil {
		t.Fatalf("Start: %v", err)
	}

	args, err := os.ReadFile(filepath.Join(g.GameDir, "args.txt"))
	if err != nil {
		t.Fatal("emulator stub did not run in the payload directory")
	}
	got := strings.TrimSpace(string(args))
	want := ". -fullscreen -userconf -conf " + model.ConfFile
	if got != want {
		t.Errorf("emulator args = %q, want %q", got, want)
	}

	conf, err := os.ReadFile(g.ConfPath)
	if err != nil {
		t.Fatal("config file was not written")
	}
	if string(conf) != g.DOSBoxConf {
		t.Errorf("config file = %q, want %q", conf, g.DOSBoxConf)
	}
}

func TestStartLocatorFailureBeforePayloadWork(t *testing.T) {
	fetcher := &failingFetcher{}
	g := newGame(t, false)
	g.URLs = []string{"http://x/a.zip"}

	c := NewController(store.NewStoreWithFetcher(fetcher, nil), notFoundLocator{})
	err := c.Start(context.Background(), g, true)

	if !errors.Is(err, dosbox.ErrNotFound) {
		t.Fatalf("Start error = %v, want ErrNotFound", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("missing emulator still triggered %d fetches", fetcher.calls)
	}
}

func TestStartLaunchFailureSurfaced(t *testing.T) {
	g := newGame(t, true)
	g.EmulatorStart = "KEEN1.EXE"

	c := NewController(store.NewStoreWithFetcher(&failingFetcher{}, nil), dosbox.Fixed(filepath.Join(t.TempDir(), "missing-dosbox")))
	if err := c.Start(context.Background(), g, true); err == nil {
		t.Fatal("Start succeeded with an unspawnable emulator binary")
	}
}

func TestStartWithoutPayloadOrURLs(t *testing.T) {
	locator := fakeEmulator(t, `exit 0`)

	g := newGame(t, false)
	c := NewController(store.NewStoreWithFetcher(&failingFetcher{}, nil), locator)
	if err := c.Start(context.Background(), g, true); err == nil {
		t.Fatal("Start succeeded for a title with no payload and no source URLs")
	}
}
