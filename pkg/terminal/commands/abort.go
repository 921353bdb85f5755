package commands

import (
	"github.com/spf13/cobra"
)

type AbortCmd struct {
	deps Dependencies
}

// NewAbortCmd discards an in-progress report and its cache file.
func NewAbortCmd(deps Dependencies) *cobra.Command {
	ac := &AbortCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "abort <handle>",
		Short: "Discard an in-progress report",
		Args:  cobra.ExactArgs(1),
		RunE:  ac.run,
	}
	return cmd
}

func (ac *AbortCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(ac.deps)
	defer cancel()

	rep, err := findByHandle(ctx, ac.deps.Reports, args[0])
	if err != nil {
		return err
	}
	return ac.deps.Reports.Abort(ctx, rep)
}
