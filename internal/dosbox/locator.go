package dosbox

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no usable DOSBox install is discovered
// by any probe. It is fatal: nothing can run without the emulator.
var ErrNotFound = errors.New("DOSBox not found on this system")

// Guidance is the user-facing explanation printed when ErrNotFound
// surfaces at startup.
const Guidance = `Uh-oh! The program DOSBox could not be found on your system.
IA Launcher acts as a frontend for DOSBox: when you select a game, it
starts DOSBox with the right arguments to play that game.

Please visit https://www.dosbox.com/ to learn more about DOSBox and
download the correct installer for your operating system.`

// Locator supplies a validated command able to launch DOSBox.
//
// The session controller takes a Locator rather than resolving the
// emulator itself, so tests can simulate emulator presence or absence
// without touching the host filesystem.
type Locator interface {
	Locate() (string, error)
}

// Probe is one discovery strategy. It returns the emulator command
// and whether the probe succeeded.
type Probe func() (string, bool)

// ProbeLocator tries an ordered list of probes and caches the first
// hit for the lifetime of the process.
type ProbeLocator struct {
	probes []Probe

	once sync.Once
	path string
	err  error
}

// NewLocator creates a ProbeLocator with the platform's default probe
// order: the PATH lookup first, then the known install locations.
func NewLocator() *ProbeLocator {
	return NewLocatorWithProbes(
		PathProbe("dosbox"),
		// Special case for macOS app bundles
		FileProbe("/Applications/dosbox.app/Contents/MacOS/DOSBox"),
		FileProbe("/Applications/DOSBox.app/Contents/MacOS/DOSBox"),
		// Special case for Windows
		GlobProbe(filepath.Join(os.Getenv("ProgramFiles(x86)"), "dosbox*", "dosbox.exe")),
	)
}

// NewLocatorWithProbes creates a ProbeLocator with a custom probe order.
func NewLocatorWithProbes(probes ...Probe) *ProbeLocator {
	return &ProbeLocator{probes: probes}
}

// Locate runs the probes in order and returns the first command that
// answers a version check. All probes failing yields ErrNotFound.
// The result is cached; repeat calls do not probe again.
func (l *ProbeLocator) Locate() (string, error) {
	l.once.Do(func() {
		for _, probe := range l.probes {
			if path, ok := probe(); ok {
				l.path = path
				return
			}
		}
		l.err = ErrNotFound
	})
	return l.path, l.err
}

// PathProbe looks name up on PATH and validates it.
func PathProbe(name string) Probe {
	return func() (string, bool) {
		path, err := exec.LookPath(name)
		if err != nil {
			return "", false
		}
		return path, tryCommand(path)
	}
}

// FileProbe validates a fixed candidate path.
func FileProbe(path string) Probe {
	return func() (string, bool) {
		if _, err := os.Stat(path); err != nil {
			return "", false
		}
		return path, tryCommand(path)
	}
}

// GlobProbe validates the first match of a glob pattern.
func GlobProbe(pattern string) Probe {
	return func() (string, bool) {
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			return "", false
		}
		return matches[0], tryCommand(matches[0])
	}
}

// tryCommand checks that the candidate actually behaves like DOSBox by
// asking it for its version.
func tryCommand(path string) bool {
	cmd := exec.Command(path, "--version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// Fixed returns a Locator that always yields the given command without
// probing. Used for the config override and as a test double.
func Fixed(path string) Locator {
	return fixedLocator(path)
}

type fixedLocator string

func (f fixedLocator) Locate() (string, error) {
	return string(f), nil
}
