package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/ia-launcher/internal/config"
	"github.com/handiism/ia-launcher/internal/dosbox"
	"github.com/handiism/ia-launcher/internal/tui"
)

func main() {
	var (
		libraryFlag = flag.String("library", "", "Library directory (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file")
		dosboxFlag  = flag.String("dosbox", "", "DOSBox command (skips discovery)")
	)
	flag.Parse()

	configPath := config.DefaultPath()
	if *configFlag != "" {
		configPath = *configFlag
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *libraryFlag != "" {
		settings.LibraryPath = *libraryFlag
	}
	if *dosboxFlag != "" {
		settings.DOSBoxPath = *dosboxFlag
	}

	var locator dosbox.Locator
	if settings.DOSBoxPath != "" {
		locator = dosbox.Fixed(settings.DOSBoxPath)
	} else {
		locator = dosbox.NewLocator()
	}

	// The browser is useless without an emulator, so fail here with
	// the full explanation instead of on the first launch attempt.
	if _, err := locator.Locate(); err != nil {
		fmt.Fprintln(os.Stderr, dosbox.Guidance)
		os.Exit(1)
	}

	if err := tui.Run(settings, locator); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
