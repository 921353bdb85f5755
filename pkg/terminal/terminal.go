package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaaniles/fcore-ocr/pkg/terminal/commands"
	"github.com/jaaniles/fcore-ocr/pkg/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	deps    commands.Dependencies
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Dependencies commands.Dependencies
	Output       io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	opts.Dependencies.Reporter = export.NewReporter(opts.Output)

	cli := &CLI{deps: opts.Dependencies}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fcore",
		Short: "Screenshot-to-report tool for FC career mode",
	}

	cmd.AddCommand(commands.NewCaptureCmd(cli.deps))
	cmd.AddCommand(commands.NewReportsCmd(cli.deps))
	cmd.AddCommand(commands.NewSubmitCmd(cli.deps))
	cmd.AddCommand(commands.NewAbortCmd(cli.deps))
	cmd.AddCommand(commands.NewBacklogCmd(cli.deps))

	return cmd
}
