package cli

import (
	"errors"

	"github.com/brandonbloom/playthru/internal/config"
	"github.com/brandonbloom/playthru/internal/relay"
	"github.com/brandonbloom/playthru/internal/version"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCommand(nil).Execute()
}

// ExitCode maps an error returned by Execute onto a process exit status. A
// failing target script passes its own status through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var execErr *relay.ExecutionError
	if errors.As(err, &execErr) && execErr.ExitCode > 0 {
		return execErr.ExitCode
	}
	return 1
}

type rootOptions struct {
	configPath  string
	blankLines  string
	interpreter string
	dryRun      bool
	verbose     bool
}

// newRootCommand builds the CLI. A nil invoker runs real processes wired to
// the command's streams.
func newRootCommand(invoker relay.Invoker) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "playthru <game_name>",
		Short: "Replay a recorded playthrough against a game script",
		Long: `Reads ../playthroughs/<game_name>-playthrough.txt, joins its commands with
newlines and runs "python <game_name>.py <commands>". Paths and the interpreter
can be changed in playthru.toml.`,
		Version:       version.String(),
		Args:          gameNameArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaythrough(cmd, opts, invoker, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to playthru.toml")

	flags := cmd.Flags()
	flags.StringVar(&opts.blankLines, "blank-lines", "", "skip or keep blank playthrough lines (default from config)")
	flags.StringVar(&opts.interpreter, "interpreter", "", "interpreter used to run the game script (default from config)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the commands without running the game script")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "report resolved paths on stderr")

	cmd.AddCommand(newInitCommand(opts))

	return cmd
}
