package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/handiism/ia-launcher/internal/model"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds how many metadata documents are parsed at
// once while scanning a large library.
const maxConcurrentLoads = 16

// Scan loads every title in the library directory, sorted by
// identifier.
//
// Each subdirectory of dir is one title; files at the top level are
// ignored. Titles without metadata load fine with empty fields, so a
// directory dropped into the library shows up immediately.
func Scan(ctx context.Context, dir string) ([]*model.Game, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}

	games := make([]*model.Game, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, titleDir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			games[i] = model.LoadGame(titleDir)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Less(games[j])
	})

	return games, nil
}

// Find returns the game with the given identifier, or nil.
func Find(games []*model.Game, identifier string) *model.Game {
	for _, game := range games {
		if game.Identifier == identifier {
			return game
		}
	}
	return nil
}
