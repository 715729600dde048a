package dosbox

import (
	"errors"
	"path/filepath"
	"testing"
)

func countingProbe(result string, ok bool, calls *int) Probe {
	return func() (string, bool) {
		*calls++
		return result, ok
	}
}

func TestLocateTriesProbesInOrder(t *testing.T) {
	var first, second, third int
	l := NewLocatorWithProbes(
		countingProbe("", false, &first),
		countingProbe("/usr/bin/dosbox", true, &second),
		countingProbe("/opt/dosbox", true, &third),
	)

	path, err := l.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if path != "/usr/bin/dosbox" {
		t.Errorf("Locate() = %q, want the second probe's result", path)
	}
	if first != 1 || second != 1 {
		t.Errorf("probe calls = %d,%d, want 1,1", first, second)
	}
	if third != 0 {
		t.Error("probing continued past the first success")
	}
}

func TestLocateCachesResult(t *testing.T) {
	var calls int
	l := NewLocatorWithProbes(countingProbe("/usr/bin/dosbox", true, &calls))

	for i := 0; i < 3; i++ {
		if _, err := l.Locate(); err != nil {
			t.Fatalf("Locate: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("probe ran %d times across repeated Locate calls, want 1", calls)
	}
}

func TestLocateNotFound(t *testing.T) {
	var calls int
	l := NewLocatorWithProbes(
		countingProbe("", false, &calls),
		countingProbe("", false, &calls),
	)

	_, err := l.Locate()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Locate error = %v, want ErrNotFound", err)
	}
	if calls != 2 {
		t.Errorf("probe calls = %d, want 2", calls)
	}
}

func TestFileProbeMissingFile(t *testing.T) {
	probe := FileProbe(filepath.Join(t.TempDir(), "no-such-binary"))
	if _, ok := probe(); ok {
		t.Error("FileProbe succeeded on a missing file")
	}
}

func TestGlobProbeNoMatches(t *testing.T) {
	probe := GlobProbe(filepath.Join(t.TempDir(), "dosbox*", "dosbox.exe"))
	if _, ok := probe(); ok {
		t.Error("GlobProbe succeeded with no matches")
	}
}

func TestFixed(t *testing.T) {
	path, err := Fixed("/custom/dosbox").Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if path != "/custom/dosbox" {
		t.Errorf("Locate() = %q, want the fixed path", path)
	}
}
