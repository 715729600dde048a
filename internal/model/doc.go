// Package model defines the core data structures used throughout
// the ia-launcher application.
//
// # Game
//
// Game represents one installable title, backed by a directory in the
// library and its metadata.ini document:
//
//	game := model.LoadGame("/library/commander_keen")
//	fmt.Println(game.Identifier) // "commander_keen"
//	fmt.Println(game.GameDir)    // where the payload lives
//	fmt.Println(game.BatPath)    // the generated command script
//
// # Title directory layout
//
//	commander_keen/
//	├── metadata.ini        optional key-value document
//	├── title.png           optional screenshot for the browser
//	├── KEEN1.ZIP           cached download
//	└── dosbox_drive_c/     payload: the emulated C: drive
//	    ├── dosbox.bat      generated command script
//	    └── ...             extracted game files
//
// The payload directory is created by the content store on first run
// and never deleted automatically.
package model
