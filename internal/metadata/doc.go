// Package metadata reads and writes the per-title metadata.ini document.
//
// Every title directory may contain a metadata.ini with a single
// [metadata] section:
//
//	[metadata]
//	title = Commander Keen 1
//	year = 1990
//	emulator_start = KEEN1.EXE
//	url = https://archive.org/download/CommanderKeen1/KEEN1.ZIP
//
// All keys are optional. A missing file, a missing section or a missing
// key all read as the empty string; not-yet-configured titles are a
// normal state, never an error.
//
// # Loading and Saving
//
//	doc := metadata.Load(path)      // never fails on absent files
//	start := doc.Get("emulator_start")
//	doc.Set("emulator_start", "GAME.BAT")
//	err := doc.Save()
//
// Values may span multiple lines (boot scripts often do). Files written
// by Python's configparser, which indents continuation lines, are read
// correctly as well.
package metadata
