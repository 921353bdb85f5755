package extract

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/recognition"
)

// Extractor turns one recognized screenshot into its typed record. The
// detections come from a full-frame recognition pass; extractors may issue
// further narrow recognition calls on cropped sub-regions.
type Extractor interface {
	Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error)
}

// Deps carries the shared collaborators every extractor draws from.
type Deps struct {
	Manager *recognition.Manager
	Chain   recognition.Chain
	Cfg     config.Extract

	// OurTeam is the user's team name, used to re-key home/away stats to
	// ours/theirs via fuzzy matching.
	OurTeam string
}

// Registry maps screen types to their extractors.
type Registry interface {
	Register(screen domain.ScreenType, extractor Extractor) error
	Lookup(screen domain.ScreenType) (Extractor, bool)
	Screens() []domain.ScreenType
}

type registry struct {
	mu         sync.RWMutex
	extractors map[domain.ScreenType]Extractor
}

func NewRegistry() Registry {
	return &registry{extractors: make(map[domain.ScreenType]Extractor)}
}

func (r *registry) Register(screen domain.ScreenType, extractor Extractor) error {
	if screen == "" || screen == domain.ScreenUnknown {
		return fmt.Errorf("cannot register extractor for screen %q", screen)
	}
	if extractor == nil {
		return fmt.Errorf("extractor cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extractors[screen]; exists {
		return fmt.Errorf("screen %q is already registered", screen)
	}
	r.extractors[screen] = extractor
	return nil
}

func (r *registry) Lookup(screen domain.ScreenType) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	extractor, ok := r.extractors[screen]
	return extractor, ok
}

func (r *registry) Screens() []domain.ScreenType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	screens := make([]domain.ScreenType, 0, len(r.extractors))
	for screen := range r.extractors {
		screens = append(screens, screen)
	}
	return screens
}

// DefaultRegistry wires one extractor per known screen type.
func DefaultRegistry(deps Deps) (Registry, error) {
	r := NewRegistry()

	sim := NewSimPerformanceExtractor(deps)
	entries := map[domain.ScreenType]Extractor{
		domain.ScreenPreMatch:                  NewPreMatchExtractor("regular"),
		domain.ScreenSimPreMatch:               NewPreMatchExtractor("simulated"),
		domain.ScreenMatchFacts:                NewMatchFactsExtractor(deps),
		domain.ScreenMatchFactsExtended:        NewMatchFactsExtendedExtractor(deps),
		domain.ScreenPlayerPerformance:         NewPerformanceExtractor(deps),
		domain.ScreenPlayerPerformanceExtended: NewPerformanceExtendedExtractor(deps),
		domain.ScreenSimMatchFacts:             NewSimFactsExtractor(deps),
		domain.ScreenSimMatchPerformance:       sim,
		domain.ScreenSimMatchPerformanceBench:  sim,
		domain.ScreenSquadFinancial:            NewSquadFinancialExtractor(deps),
		domain.ScreenSquadAttributes:           NewSquadAttributesExtractor(deps),
		domain.ScreenSquadStats:                NewSquadStatsExtractor(deps),
	}
	for screen, extractor := range entries {
		if err := r.Register(screen, extractor); err != nil {
			return nil, err
		}
	}
	return r, nil
}
