// Package config provides configuration management for ia-launcher.
//
// Settings live in a small JSON file and cover the launcher itself,
// not individual titles (per-title configuration is metadata.ini,
// handled by the metadata package).
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // a missing file is not an error; this is a real read failure
//	}
//	fmt.Println(settings.LibraryPath)
//
// Available options:
//   - LibraryPath: where title directories live (~/.ialauncher/library)
//   - DOSBoxPath: fixed emulator command, skipping discovery
//   - Verbose: per-file progress output
package config
