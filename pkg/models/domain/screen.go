package domain

// ScreenType identifies which application UI layout a screenshot depicts.
// Screen types are only ever inferred from recognized content or sampled
// pixel color, never from file names or capture order.
type ScreenType string

const (
	ScreenPreMatch                  ScreenType = "pre_match"
	ScreenSimPreMatch               ScreenType = "sim_pre_match"
	ScreenMatchFacts                ScreenType = "match_facts"
	ScreenMatchFactsExtended        ScreenType = "match_facts_extended"
	ScreenPlayerPerformance         ScreenType = "player_performance"
	ScreenPlayerPerformanceExtended ScreenType = "player_performance_extended"
	ScreenSimMatchFacts             ScreenType = "sim_match_facts"
	ScreenSimMatchPerformance       ScreenType = "sim_match_performance"
	ScreenSimMatchPerformanceBench  ScreenType = "sim_match_performance_bench"
	ScreenSquadFinancial            ScreenType = "squad_financial"
	ScreenSquadAttributes           ScreenType = "squad_attributes"
	ScreenSquadStats                ScreenType = "squad_stats"
	ScreenUnknown                   ScreenType = "unknown"
)
