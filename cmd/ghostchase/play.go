package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ghostchase/internal/fault"
	"github.com/vovakirdan/ghostchase/internal/platform/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	var transcript string

	cmd := &cobra.Command{
		Use:   "play <level>...",
		Short: "Play levels interactively",
		Long: `Play levels in the terminal, one turn per key press.

Controls:
  w/a/s/d or arrows  - Move (keys follow the config file)
  .                  - Wait a turn
  q/Ctrl+C           - Quit
  ?                  - Toggle help

Examples:
  ghostchase play maps/01.txt maps/02.txt
  ghostchase play --policy greedy maps/01.txt
  ghostchase play --transcript game.txt maps/01.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(args, transcript)
		},
	}
	cmd.Flags().StringVar(&transcript, "transcript", "", "Also write the frame transcript to this file")
	return cmd
}

func (a *app) runPlay(levels []string, transcriptPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal; pipe commands to 'ghostchase <level>...' instead")
	}

	logger, err := a.logger()
	if err != nil {
		return err
	}
	loader, keys, policy, err := a.settings()
	if err != nil {
		return err
	}

	opts := tui.PlayOptions{
		Levels: levels,
		Loader: loader,
		Policy: policy,
		Keys:   keys,
	}

	if transcriptPath != "" {
		f, err := os.Create(transcriptPath)
		if err != nil {
			return fault.New(fault.KindOpen, "create transcript", transcriptPath, err)
		}
		defer f.Close()
		opts.Sink = f
	} else {
		opts.Sink = io.Discard
	}

	if store := a.openJournal(logger); store != nil {
		defer store.Close()
		opts.Recorder = store
	}

	sum, err := tui.Play(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s: won %d of %d levels in %d steps\n",
		sum.Outcome, sum.Won(), len(levels), sum.Steps())
	return nil
}
