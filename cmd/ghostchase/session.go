package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostchase/internal/input"
	"github.com/vovakirdan/ghostchase/internal/session"
	"github.com/vovakirdan/ghostchase/internal/storage"
)

func (a *app) runSession(cmd *cobra.Command, args []string) error {
	logger, err := a.logger()
	if err != nil {
		return err
	}
	loader, keys, policy, err := a.settings()
	if err != nil {
		return err
	}

	var stream *input.Stream
	if a.flagInput == "" || a.flagInput == "-" {
		stream = input.NewStream(a.stdin, input.StdinName, keys)
	} else {
		stream, err = input.Open(a.flagInput, keys)
		if err != nil {
			return err
		}
	}
	defer stream.Close()

	opts := session.Options{
		Levels: args,
		Loader: loader,
		Policy: policy,
		Input:  stream.Name(),
		Logger: logger,
	}
	if store := a.openJournal(logger); store != nil {
		defer store.Close()
		opts.Recorder = store
	}

	s, err := session.New(opts, stream, a.stdout)
	if err != nil {
		return err
	}

	sum, err := s.Run()
	logger.Debug("session finished",
		"outcome", sum.Outcome,
		"levels", len(sum.Levels),
		"won", sum.Won(),
		"steps", sum.Steps(),
		"consumed", stream.Consumed(),
	)
	return err
}

// openJournal opens the results journal when --db is set.
// A journal that cannot be opened is logged and skipped; play goes on.
func (a *app) openJournal(logger *log.Logger) *storage.Store {
	if a.flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(a.flagDBPath)
	if err != nil {
		logger.Error("could not open results journal", "path", a.flagDBPath, "err", err)
		return nil
	}
	return store
}
