// Package session runs game sessions: it prepares a title's payload
// directory, materializes the DOSBox command script and config file,
// and launches the emulator.
//
// # Two modes
//
// Autorun executes the title's boot command and lets DOSBox exit when
// it finishes; the launcher does not wait for the process.
//
// Interactive enters DOSBox at the payload root without executing
// anything and blocks until the user exits. Whatever the command
// script contains at that point becomes the title's stored boot
// command, which makes the script a configuration channel reachable
// from inside the emulator:
//
//	C:\> echo MYGAME.BAT >> dosbox.bat
//	C:\> exit
//
// Those two lines, typed at the DOS prompt, durably change how the
// title boots next time.
//
// # Usage
//
//	ctrl := session.NewController(contentStore, dosbox.NewLocator())
//	err := ctrl.Start(ctx, game, true) // autorun
package session
