package commands

import (
	"github.com/spf13/cobra"

	"github.com/jaaniles/fcore-ocr/pkg/adapters"
)

type SubmitCmd struct {
	deps Dependencies
}

// NewSubmitCmd ships a report to the backend. Submitting an incomplete
// report is allowed; the backend decides what to accept.
func NewSubmitCmd(deps Dependencies) *cobra.Command {
	sc := &SubmitCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "submit <handle>",
		Short: "Submit a report",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}
	return cmd
}

func (sc *SubmitCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(sc.deps)
	defer cancel()

	rep, err := findByHandle(ctx, sc.deps.Reports, args[0])
	if err != nil {
		return err
	}
	if err := sc.deps.Reports.Submit(ctx, rep); err != nil {
		return err
	}
	return sc.deps.Reporter.Handle(adapters.MapDomainReportToAPI(rep, nil))
}
