package watcher

import (
	"strings"
	"sync"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// roster accumulates extracted records per player. Safe for concurrent
// assignment from the extraction goroutines; the latest record for a given
// player and screen wins.
type roster struct {
	mu     sync.Mutex
	order  []string
	byName map[string]*domain.SquadMember
}

func newRoster() *roster {
	return &roster{byName: make(map[string]*domain.SquadMember)}
}

func (r *roster) assign(name string, screen domain.ScreenType, record any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.byName[name]
	if !ok {
		member = &domain.SquadMember{Name: name}
		r.byName[name] = member
		r.order = append(r.order, name)
	}

	switch screen {
	case domain.ScreenSquadFinancial:
		member.Financial, _ = record.(*domain.SquadFinancial)
	case domain.ScreenSquadStats:
		member.Stats, _ = record.(*domain.SquadStats)
	case domain.ScreenSquadAttributes:
		member.Attributes, _ = record.(*domain.AttributeProfile)
	}
}

// members returns the roster in first-seen order.
func (r *roster) members() []*domain.SquadMember {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.SquadMember, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

func joinTexts(dets []domain.Detection) string {
	var parts []string
	for _, d := range dets {
		if t := strings.TrimSpace(d.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
