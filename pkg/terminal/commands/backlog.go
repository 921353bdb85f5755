package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// Backlog sweeps run a full OCR pass per screenshot; give them room.
const backlogTimeout = 30 * time.Minute

type BacklogCmd struct {
	deps Dependencies
}

// NewBacklogCmd processes the squad screenshot backlog into one player
// report and submits it.
func NewBacklogCmd(deps Dependencies) *cobra.Command {
	bc := &BacklogCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "Process the squad screenshot backlog",
		RunE:  bc.run,
	}
	return cmd
}

func (bc *BacklogCmd) run(cmd *cobra.Command, args []string) error {
	ctx := bc.deps.Logger.WithContext(context.Background())
	ctx, cancel := context.WithTimeout(ctx, backlogTimeout)
	defer cancel()

	return bc.deps.Watcher.Process(ctx, bc.deps.Owner)
}
