package model

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/ia-launcher/internal/metadata"
)

// Well-known file and directory names inside a title directory.
const (
	// MetadataFile is the per-title key-value document.
	MetadataFile = "metadata.ini"

	// PayloadDir is the directory that becomes the emulated C: drive.
	PayloadDir = "dosbox_drive_c"

	// ScriptFile is the command script executed inside the emulator.
	// It lives in the payload directory, so it is visible (and editable)
	// from inside the emulated filesystem.
	ScriptFile = "dosbox.bat"

	// ConfFile is the DOSBox configuration file, also inside the
	// payload directory.
	ConfFile = "dosbox.conf"

	// TitleScreenFile is an optional screenshot shown by the browser.
	TitleScreenFile = "title.png"
)

// Game represents one installable title in the library.
//
// A Game is backed by a directory whose basename is the stable
// identifier, plus a metadata.ini document holding the configurable
// fields. All fields are optional; a bare directory is a valid,
// not-yet-configured title.
//
// The identifier never changes after creation: it is derived from the
// directory path, which is immutable for the lifetime of the record.
// EmulatorStart is the only field rewritten at runtime, and only as a
// side effect of an interactive session capturing an edited script.
type Game struct {
	// Dir is the title directory inside the library.
	Dir string

	// Identifier is the basename of Dir. Used for sorting and for
	// URL-safe references.
	Identifier string

	// Title and Year are optional display strings.
	Title string
	Year  string

	// EmulatorStart is the literal command script contents executed
	// inside the emulated filesystem to boot the title.
	EmulatorStart string

	// DOSBoxConf is verbatim DOSBox configuration file contents.
	// Empty means the emulator runs with its defaults.
	DOSBoxConf string

	// URLs are the payload source URLs, fetched in order on first run.
	URLs []string

	// GameDir is the payload directory (the emulated C: drive root).
	// Absent until the first run downloads the payload.
	GameDir string

	// BatPath and ConfPath are the command script and config file
	// locations inside the payload directory.
	BatPath  string
	ConfPath string

	doc *metadata.Document
}

// LoadGame loads the title stored at dir.
//
// Missing or partial metadata is normal and yields zero-valued fields.
func LoadGame(dir string) *Game {
	doc := metadata.Load(filepath.Join(dir, MetadataFile))

	gameDir := filepath.Join(dir, PayloadDir)
	g := &Game{
		Dir:           dir,
		Identifier:    filepath.Base(dir),
		Title:         doc.Get("title"),
		Year:          doc.Get("year"),
		EmulatorStart: doc.Get("emulator_start"),
		DOSBoxConf:    doc.Get("dosbox_conf"),
		GameDir:       gameDir,
		BatPath:       filepath.Join(gameDir, ScriptFile),
		ConfPath:      filepath.Join(gameDir, ConfFile),
		doc:           doc,
	}

	// The url key holds one URL per line; historical files used spaces.
	if raw := doc.Get("url"); raw != "" {
		g.URLs = strings.Fields(raw)
	}

	return g
}

// Less orders games by identifier, the library's display order.
func (g *Game) Less(other *Game) bool {
	return g.Identifier < other.Identifier
}

// URLEncoded returns the identifier in URL-safe percent encoding.
func (g *Game) URLEncoded() string {
	return url.PathEscape(g.Identifier)
}

// HasPayload reports whether the payload directory exists on disk.
func (g *Game) HasPayload() bool {
	info, err := os.Stat(g.GameDir)
	return err == nil && info.IsDir()
}

// TitleScreen returns the path of the title screenshot, or the empty
// string when the title has none.
func (g *Game) TitleScreen() string {
	path := filepath.Join(g.Dir, TitleScreenFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// DisplayName returns the human-facing name for lists: the configured
// title with its year when known, otherwise the identifier.
func (g *Game) DisplayName() string {
	if g.Title == "" {
		return g.Identifier
	}
	if g.Year == "" {
		return g.Title
	}
	return g.Title + " (" + g.Year + ")"
}

// SaveMetadata persists the currently set fields to metadata.ini.
//
// Only non-empty fields are written; keys not owned by this record are
// left untouched. URLs serialize newline-joined to preserve order.
func (g *Game) SaveMetadata() error {
	if g.Title != "" {
		g.doc.Set("title", g.Title)
	}
	if g.Year != "" {
		g.doc.Set("year", g.Year)
	}
	if len(g.URLs) > 0 {
		g.doc.Set("url", strings.Join(g.URLs, "\n"))
	}
	if g.EmulatorStart != "" {
		g.doc.Set("emulator_start", g.EmulatorStart)
	}
	if g.DOSBoxConf != "" {
		g.doc.Set("dosbox_conf", g.DOSBoxConf)
	}
	return g.doc.Save()
}
