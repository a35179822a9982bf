package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brandonbloom/playthru/internal/config"
	"github.com/brandonbloom/playthru/internal/playthrough"
	"github.com/brandonbloom/playthru/internal/relay"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func gameNameArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s: expected exactly one game name, got %d", cmd.UseLine(), len(args))
	}
	if err := validateGameName(args[0]); err != nil {
		return fmt.Errorf("usage: %s: %w", cmd.UseLine(), err)
	}
	return nil
}

func validateGameName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("game name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("game name %q must not contain path separators", name)
	}
	return nil
}

func runPlaythrough(cmd *cobra.Command, opts *rootOptions, invoker relay.Invoker, game string) error {
	load := config.Load
	if cmd.Flags().Changed("config") {
		load = config.LoadFile
	}
	cfg, err := load(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("interpreter") {
		if strings.TrimSpace(opts.interpreter) == "" {
			return config.ErrMissingInterpreter
		}
		cfg.Interpreter = opts.interpreter
	}
	blankSource := cfg.BlankLines
	if flags.Changed("blank-lines") {
		blankSource = opts.blankLines
	}
	mode, err := playthrough.ParseBlankLines(blankSource)
	if err != nil {
		return err
	}

	path := cfg.PlaythroughPath(game)
	script := cfg.ScriptPath(game)
	if opts.verbose {
		stderr := cmd.ErrOrStderr()
		fmt.Fprintf(stderr, "playthrough: %s\n", path)
		fmt.Fprintf(stderr, "script: %s\n", script)
		fmt.Fprintf(stderr, "interpreter: %s\n", cfg.Interpreter)
		fmt.Fprintf(stderr, "blank lines: %s\n", mode)
	}

	commands, err := playthrough.Load(path, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.dryRun:
		invoker = &dryRunInvoker{out: out, commands: commands, width: terminalWidth(out)}
	case invoker == nil:
		invoker = relay.ExecInvoker{
			Stdin:  cmd.InOrStdin(),
			Stdout: out,
			Stderr: cmd.ErrOrStderr(),
		}
	}

	executor := &relay.Executor{
		Invoker:     invoker,
		Interpreter: cfg.Interpreter,
		Out:         out,
		Color:       writerIsTerminal(out) && !color.NoColor,
	}
	return executor.Execute(commands, script)
}
