// ghostchase is a turn-based pursuit game on a tile grid.
//
// Usage:
//
//	ghostchase [flags] <level>...     - Play levels from a command stream, write the transcript
//	ghostchase check <level>...       - Validate level files
//	ghostchase policies               - List ghost movement policies
//	ghostchase play <level>...        - Play interactively in the terminal
//	ghostchase history                - Show runs recorded in a results journal
//
// Global flags:
//
//	--config <path>     - Config file (YAML or TOML)
//	--policy <id>       - Ghost policy (default from config: chase)
//	--db <path>         - Results journal database (disabled when empty)
//	--log-level <lvl>   - Log level on stderr (default: error)
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ghostchase/internal/config"
	"github.com/vovakirdan/ghostchase/internal/fault"
	"github.com/vovakirdan/ghostchase/internal/input"
	"github.com/vovakirdan/ghostchase/internal/level"

	// Import policies to register them
	_ "github.com/vovakirdan/ghostchase/internal/ghost"
)

// defaultHistoryDB is read by the history command when --db is not given.
const defaultHistoryDB = "~/.ghostchase/results.db"

// app holds the flags and streams of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flagConfig   string
	flagPolicy   string
	flagDBPath   string
	flagLogLevel string
	flagInput    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
// stdout is buffered and flushed on every path, fatal ones included.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	out := bufio.NewWriter(stdout)
	a := &app{stdin: stdin, stdout: out, stderr: stderr}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(out)
	root.SetErr(stderr)

	err := root.Execute()
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = fault.New(fault.KindWrite, "write transcript", "", ferr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return fault.ExitCode(err)
	}
	return fault.ExitOK
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ghostchase [flags] <level>...",
		Short: "Ghostchase - collect every dot before the ghosts catch you",
		Long: `Ghostchase plays one or more tile-grid levels in sequence. Commands are
read one character at a time from standard input (w/a/s/d move, q quits,
whitespace is ignored) and every board change is written to standard output.

Level files use W for walls, P for the player, I B Y C for ghosts, '.' for
collectibles and space for floor. Any other character is an obstacle.

Exit status:
  0   every level concluded (won, quit or caught)
  39  a level or the command input could not be opened
  40  a level or the command input could not be read
  41  a level is malformed, or input ended before a level concluded

Examples:
  ghostchase maps/01.txt maps/02.txt < moves.txt
  echo "ddssq" | ghostchase --policy greedy maps/01.txt
  ghostchase check maps/*.txt
  ghostchase play maps/01.txt`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runSession,
	}

	root.PersistentFlags().StringVar(&a.flagConfig, "config", "", "Path to config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&a.flagPolicy, "policy", "", "Ghost policy ID (see 'ghostchase policies')")
	root.PersistentFlags().StringVar(&a.flagDBPath, "db", "", "Path to results journal database (empty = disabled)")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "error", "Log level: debug, info, warn, error")
	root.Flags().StringVarP(&a.flagInput, "input", "i", "", "Command input file (default: standard input)")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newPoliciesCmd(a))
	root.AddCommand(newPlayCmd(a))
	root.AddCommand(newHistoryCmd(a))

	return root
}

// logger builds the stderr logger for the configured level.
func (a *app) logger() (*log.Logger, error) {
	lvl, err := log.ParseLevel(a.flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: "ghostchase",
		Level:  lvl,
	})
	return logger, nil
}

// settings resolves the config file into loader, keymap and policy.
func (a *app) settings() (*level.Loader, input.Keymap, string, error) {
	cfg, err := config.Load(a.flagConfig)
	if err != nil {
		return nil, input.Keymap{}, "", err
	}
	glyphs, err := cfg.LevelGlyphs()
	if err != nil {
		return nil, input.Keymap{}, "", err
	}
	keys, err := cfg.Keymap()
	if err != nil {
		return nil, input.Keymap{}, "", err
	}

	policy := a.flagPolicy
	if policy == "" {
		policy = cfg.Ghosts.Policy
	}
	return level.NewLoader(glyphs), keys, policy, nil
}
