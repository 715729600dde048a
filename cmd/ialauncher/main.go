package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/ia-launcher/internal/config"
	"github.com/handiism/ia-launcher/internal/dosbox"
	"github.com/handiism/ia-launcher/internal/library"
	"github.com/handiism/ia-launcher/internal/session"
	"github.com/handiism/ia-launcher/internal/store"
)

func main() {
	// Command line flags
	var (
		libraryFlag     = flag.String("library", "", "Library directory (overrides config)")
		configFlag      = flag.String("config", "", "Path to config file")
		dosboxFlag      = flag.String("dosbox", "", "DOSBox command (skips discovery)")
		listFlag        = flag.Bool("list", false, "List all titles and exit")
		runFlag         = flag.String("run", "", "Identifier of the title to run")
		interactiveFlag = flag.Bool("interactive", false, "Run without autorun; script edits made inside DOSBox are kept")
		downloadFlag    = flag.String("download", "", "Download a title's payload without running it")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	if !*listFlag && *runFlag == "" && *downloadFlag == "" {
		fmt.Println("IA Launcher - play archived DOS games through DOSBox")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  ialauncher -list")
		fmt.Println("  ialauncher -run <identifier> [-interactive]")
		fmt.Println("  ialauncher -download <identifier>")
		fmt.Println()
		fmt.Println("For the library browser, use: ialauncher-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	configPath := config.DefaultPath()
	if *configFlag != "" {
		configPath = *configFlag
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *libraryFlag != "" {
		settings.LibraryPath = *libraryFlag
	}
	if *dosboxFlag != "" {
		settings.DOSBoxPath = *dosboxFlag
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	games, err := library.Scan(ctx, settings.LibraryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning library: %v\n", err)
		os.Exit(1)
	}

	if *listFlag {
		for _, game := range games {
			installed := " "
			if game.HasPayload() {
				installed = "*"
			}
			fmt.Printf("%s %-30s %s\n", installed, game.Identifier, game.DisplayName())
		}
		return
	}

	contentStore := store.NewStore(func(event store.ProgressEvent) {
		if event.Level == store.LevelVerbose && !settings.Verbose {
			return
		}
		fmt.Println(event.Message)
	})

	if *downloadFlag != "" {
		game := library.Find(games, *downloadFlag)
		if game == nil {
			fmt.Fprintf(os.Stderr, "No such title: %s\n", *downloadFlag)
			os.Exit(1)
		}
		if err := contentStore.EnsurePayload(ctx, game); err != nil {
			fmt.Fprintf(os.Stderr, "Error downloading %s: %v\n", game.Identifier, err)
			os.Exit(1)
		}
		fmt.Printf("Payload ready in %s\n", game.GameDir)
		return
	}

	game := library.Find(games, *runFlag)
	if game == nil {
		fmt.Fprintf(os.Stderr, "No such title: %s\n", *runFlag)
		os.Exit(1)
	}

	// Resolve the emulator up front so a missing install fails before
	// any payload work starts.
	locator := resolveLocator(settings)
	if _, err := locator.Locate(); err != nil {
		fmt.Fprintln(os.Stderr, dosbox.Guidance)
		os.Exit(1)
	}

	controller := session.NewController(contentStore, locator)
	if err := controller.Start(ctx, game, !*interactiveFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", game.Identifier, err)
		os.Exit(1)
	}
}

func resolveLocator(settings *config.Settings) dosbox.Locator {
	if settings.DOSBoxPath != "" {
		return dosbox.Fixed(settings.DOSBoxPath)
	}
	return dosbox.NewLocator()
}
