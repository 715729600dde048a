// Package dosbox locates the DOSBox emulator on the host system.
//
// Discovery is an ordered list of probe strategies, each validating a
// candidate by running it with --version:
//
//	locator := dosbox.NewLocator()
//	path, err := locator.Locate()
//	if errors.Is(err, dosbox.ErrNotFound) {
//	    fmt.Fprintln(os.Stderr, dosbox.Guidance)
//	    os.Exit(1)
//	}
//
// The default order covers the PATH lookup, the macOS app bundle
// locations and the Windows Program Files install. A fixed command
// (from configuration, or from a test) bypasses probing via
// dosbox.Fixed.
package dosbox
