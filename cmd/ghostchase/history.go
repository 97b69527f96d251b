package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ghostchase/internal/platform/tui"
	"github.com/vovakirdan/ghostchase/internal/storage"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit       int
		stats       bool
		interactive bool
		clearRuns   bool
		levelPath   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long: `Display runs recorded in the results journal.

Runs are only recorded when a session is started with --db. Without --db
this command reads ` + defaultHistoryDB + `.

Examples:
  ghostchase history --db runs.db
  ghostchase history --stats
  ghostchase history --level maps/01.txt
  ghostchase history -I
  ghostchase history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd, historyOptions{
				limit:       limit,
				stats:       stats,
				interactive: interactive,
				clear:       clearRuns,
				level:       levelPath,
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	cmd.Flags().BoolVar(&stats, "stats", false, "Show per-level statistics instead of runs")
	cmd.Flags().BoolVarP(&interactive, "interactive", "I", false, "Browse runs in a terminal UI")
	cmd.Flags().BoolVar(&clearRuns, "clear", false, "Delete every recorded run")
	cmd.Flags().StringVar(&levelPath, "level", "", "Show statistics for one level path")
	return cmd
}

type historyOptions struct {
	limit       int
	stats       bool
	interactive bool
	clear       bool
	level       string
}

func (a *app) runHistory(cmd *cobra.Command, opts historyOptions) error {
	dbPath := a.flagDBPath
	if dbPath == "" {
		dbPath = defaultHistoryDB
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case opts.clear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Results journal cleared.")
		return nil

	case opts.interactive:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, width, height)

	case opts.level != "":
		return printOneLevel(cmd, store, opts.level)

	case opts.stats:
		return printLevelStats(cmd, store)
	}
	return printRuns(cmd, store, opts.limit)
}

func printRuns(cmd *cobra.Command, store *storage.Store, limit int) error {
	out := cmd.OutOrStdout()

	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Recent runs")
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-16s  %-8s  %-6s  %-6s  %s\n", "Run", "Date", "Policy", "Won", "Steps", "Outcome")
	fmt.Fprintf(out, "  %-5s  %-16s  %-8s  %-6s  %-6s  %s\n", "---", "----", "------", "---", "-----", "-------")

	for _, r := range runs {
		fmt.Fprintf(out, "  %-5d  %-16s  %-8s  %-6s  %-6d  %s\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Policy,
			fmt.Sprintf("%d/%d", r.Won, r.Levels),
			r.Steps,
			r.Outcome,
		)
	}
	return nil
}

func printLevelStats(cmd *cobra.Command, store *storage.Store) error {
	out := cmd.OutOrStdout()

	all, err := store.GetAllLevelStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Level statistics")
	fmt.Fprintln(out)

	if len(all) == 0 {
		fmt.Fprintln(out, "No levels played yet.")
		return nil
	}

	paths := make([]string, 0, len(all))
	for p := range all {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Fprintf(out, "  %-30s  %-6s  %-5s  %-7s  %s\n", "Level", "Plays", "Wins", "Caught", "Best")
	fmt.Fprintf(out, "  %-30s  %-6s  %-5s  %-7s  %s\n", "-----", "-----", "----", "------", "----")

	for _, p := range paths {
		s := all[p]
		best := "-"
		if s.Wins > 0 {
			best = fmt.Sprintf("%d steps", s.BestSteps)
		}
		fmt.Fprintf(out, "  %-30s  %-6d  %-5d  %-7d  %s\n", p, s.Plays, s.Wins, s.Caught, best)
	}
	return nil
}

func printOneLevel(cmd *cobra.Command, store *storage.Store, path string) error {
	out := cmd.OutOrStdout()

	s, err := store.GetLevelStats(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Level %s\n\n", path)
	if s.Plays == 0 {
		fmt.Fprintln(out, "Not played yet.")
		return nil
	}

	fmt.Fprintf(out, "  Plays:   %d\n", s.Plays)
	fmt.Fprintf(out, "  Wins:    %d\n", s.Wins)
	fmt.Fprintf(out, "  Caught:  %d\n", s.Caught)
	if s.Wins > 0 {
		fmt.Fprintf(out, "  Best:    %d steps\n", s.BestSteps)
	}
	return nil
}
