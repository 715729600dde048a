package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/handiism/ia-launcher/internal/dosbox"
	ioutils "github.com/handiism/ia-launcher/internal/io"
	"github.com/handiism/ia-launcher/internal/model"
	"github.com/handiism/ia-launcher/internal/store"
)

// autorunPreamble suppresses command echo and clears the screen before
// the boot command runs, so an autorun session opens on the title's
// own output.
const autorunPreamble = "@echo off\ncls\n"

// Controller runs game sessions. It owns every write to the command
// script and config file inside a payload directory; per-title
// metadata flows back out only through the interactive capture step.
//
// Concurrent sessions for the same title are not supported; callers
// serialize per-title access themselves.
type Controller struct {
	store   *store.Store
	locator dosbox.Locator
}

// NewController creates a Controller. The locator is injected so
// emulator presence can be simulated in tests.
func NewController(st *store.Store, locator dosbox.Locator) *Controller {
	return &Controller{store: st, locator: locator}
}

// plan describes one emulator invocation: what DOSBox should run,
// with which arguments, and what the command script must contain
// before launch.
type plan struct {
	// runTarget is DOSBox's mount-and-run argument, relative to the
	// payload directory: a script, an executable, or "." to enter the
	// emulator at the payload root without executing anything.
	runTarget string

	// args follow the run target on the command line.
	args []string

	// script is the command script to write before launch; nil leaves
	// any existing script alone.
	script []byte

	// autorun is the effective mode after the no-boot-command override.
	autorun bool
}

// buildPlan decides the run target, arguments, script contents and
// effective mode for a session.
//
// When the title has no boot command there is nothing to auto-execute,
// so a requested autorun is silently downgraded to an interactive
// session. This mirrors the historical launcher behavior and is relied
// on by titles that are still being configured.
func buildPlan(g *model.Game, autorun bool) plan {
	p := plan{
		runTarget: ".",
		args:      []string{"-fullscreen"},
	}

	if g.DOSBoxConf != "" {
		p.args = append(p.args, "-userconf", "-conf", model.ConfFile)
	}

	switch {
	case g.EmulatorStart == "":
		autorun = false
		if _, err := os.Stat(g.BatPath); err != nil {
			// Placeholder script, so an interactive session has a file
			// to edit from inside the emulator.
			p.script = []byte("\n")
		}

	case autorun:
		if isFile(resolveInPayload(g, g.EmulatorStart)) {
			// Special case for many titles whose boot command is just
			// the name of the executable: run it directly.
			p.runTarget = g.EmulatorStart
		} else {
			p.runTarget = model.ScriptFile
			p.script = []byte(autorunPreamble + g.EmulatorStart)
		}

	default:
		// Interactive with a boot command: regenerate the script (no
		// preamble) but enter the emulator without executing it.
		p.script = []byte(g.EmulatorStart)
	}

	if autorun {
		p.args = append(p.args, "-exit")
	} else {
		p.runTarget = "."
	}
	p.autorun = autorun

	return p
}

// Start runs a session for the given title.
//
// The payload is acquired first if missing; acquisition failures are
// fatal for this title and propagate unretried. The emulator is then
// launched with the payload directory as its working directory.
//
// With autorun in effect the call returns as soon as the process is
// spawned; its further lifetime belongs to the OS. Otherwise Start
// blocks until the user exits the emulator, then reads the command
// script back: a non-empty script becomes the title's new boot command
// and is persisted to metadata. The emulator's exit code is ignored in
// both modes.
func (c *Controller) Start(ctx context.Context, g *model.Game, autorun bool) error {
	dosboxPath, err := c.locator.Locate()
	if err != nil {
		return err
	}

	if !g.HasPayload() {
		if err := c.store.EnsurePayload(ctx, g); err != nil {
			return err
		}
		if !g.HasPayload() {
			return fmt.Errorf("title %s has no payload and no source URLs", g.Identifier)
		}
	}

	p := buildPlan(g, autorun)

	if g.DOSBoxConf != "" {
		if err := ioutils.WriteFile(ctx, g.ConfPath, []byte(g.DOSBoxConf)); err != nil {
			return err
		}
	}
	if p.script != nil {
		if err := ioutils.WriteFile(ctx, g.BatPath, p.script); err != nil {
			return err
		}
	}

	cmd := exec.Command(dosboxPath, append([]string{p.runTarget}, p.args...)...)
	cmd.Dir = g.GameDir

	if p.autorun {
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("launching DOSBox: %w", err)
		}
		// Fire and forget: the emulator outlives this call.
		return cmd.Process.Release()
	}

	err = cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("launching DOSBox: %w", err)
	}

	return c.capture(g)
}

// capture reads the command script after an interactive session and
// adopts its contents as the stored boot command.
//
// The script lives inside the emulated filesystem, so it is the one
// channel both the user (from inside DOSBox) and the launcher can
// observe. Only a script with actual content overwrites the stored
// command; an emptied, blank or deleted script leaves the metadata
// untouched.
func (c *Controller) capture(g *model.Game) error {
	data, err := os.ReadFile(g.BatPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		// Untouched placeholder or blanked script: no commands to adopt.
		return nil
	}

	g.EmulatorStart = string(data)
	return g.SaveMetadata()
}

// resolveInPayload interprets a boot command as a path: relative names
// resolve against the payload directory, absolute paths stand as-is.
func resolveInPayload(g *model.Game, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(g.GameDir, name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
