package commands

import (
	"github.com/spf13/cobra"

	"github.com/jaaniles/fcore-ocr/pkg/adapters"
	"github.com/jaaniles/fcore-ocr/pkg/models/api"
)

type ReportsCmd struct {
	deps   Dependencies
	handle string
}

// NewReportsCmd lists the in-progress reports, or prints one report's full
// payload when --handle is given.
func NewReportsCmd(deps Dependencies) *cobra.Command {
	rc := &ReportsCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Show in-progress reports",
		RunE:  rc.run,
	}
	cmd.Flags().StringVar(&rc.handle, "handle", "", "Show the full payload of one report")
	return cmd
}

func (rc *ReportsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(rc.deps)
	defer cancel()

	if rc.handle != "" {
		rep, err := findByHandle(ctx, rc.deps.Reports, rc.handle)
		if err != nil {
			return err
		}
		missing, _ := rc.deps.Reports.MissingScreens(rep)
		return rc.deps.Reporter.HandleDetail(adapters.MapDomainReportToAPIDetail(rep, missing))
	}

	inProgress, err := rc.deps.Reports.Resume(ctx)
	if err != nil {
		return err
	}

	response := make([]api.Report, 0, len(inProgress))
	for _, rep := range inProgress {
		missing, _ := rc.deps.Reports.MissingScreens(rep)
		response = append(response, adapters.MapDomainReportToAPI(rep, missing))
	}
	return rc.deps.Reporter.HandleList(response)
}
