package metadata

import (
	"gopkg.in/ini.v1"
)

// Section is the namespace holding all launcher-owned keys.
const Section = "metadata"

// Document is a per-title metadata.ini file.
//
// The document is a flat key-value store under the [metadata] section.
// A missing or unreadable file behaves exactly like an empty one: every
// key reads as absent. This is the normal state for titles that have
// never been configured, so it is never reported as an error.
//
// Keys outside the [metadata] section (or unknown keys inside it) are
// preserved across Save, so hand-edited files keep their extras.
//
// Example:
//
//	doc, _ := metadata.Load("/library/commander_keen/metadata.ini")
//	title := doc.Get("title") // "" when unset
//	doc.Set("emulator_start", "KEEN1.EXE")
//	err := doc.Save()
type Document struct {
	path string
	file *ini.File
}

// loadOptions match the format written by configparser-era libraries:
// multi-line values may use Python-style indentation continuations.
var loadOptions = ini.LoadOptions{
	Loose:                      true,
	AllowPythonMultilineValues: true,
}

// Load reads the document at path.
//
// A nonexistent file yields an empty document. A malformed file is
// treated the same way: absent configuration, not an error.
func Load(path string) *Document {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		f = ini.Empty(loadOptions)
	}
	return &Document{path: path, file: f}
}

// Get returns the value for key in the [metadata] section, or the
// empty string when the key is absent.
func (d *Document) Get(key string) string {
	return d.file.Section(Section).Key(key).String()
}

// Set stores value under key in the [metadata] section. The change is
// not durable until Save is called.
func (d *Document) Set(key, value string) {
	d.file.Section(Section).Key(key).SetValue(value)
}

// Has reports whether key is present in the [metadata] section.
func (d *Document) Has(key string) bool {
	return d.file.Section(Section).HasKey(key)
}

// Save writes the document back to its file, creating it if needed.
func (d *Document) Save() error {
	return d.file.SaveTo(d.path)
}

// Path returns the backing file path.
func (d *Document) Path() string {
	return d.path
}
