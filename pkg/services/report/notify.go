package report

import (
	"time"

	"github.com/rs/zerolog"
)

// LogNotifier is the CLI's notification surface: status messages go to the
// structured log instead of an on-screen overlay.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notify(text string, duration time.Duration) {
	n.Logger.Info().Dur("dismiss_after", duration).Msg(text)
}
