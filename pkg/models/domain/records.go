package domain

// TeamStats is one side of a regular match facts screen. Stat values that
// could not be recognized are recorded as zero, never omitted.
type TeamStats struct {
	Name       string  `json:"name"`
	Score      int     `json:"score"`
	Possession int     `json:"possession"`
	Shots      int     `json:"shots"`
	Passes     int     `json:"passes"`
	Accuracy   float64 `json:"accuracy"`
	Tackles    int     `json:"tackles"`
}

// MatchFacts is the extracted record of the match_facts screen, re-keyed
// from home/away to ours/theirs once our team has been identified.
type MatchFacts struct {
	Ours   TeamStats `json:"our_team"`
	Theirs TeamStats `json:"their_team"`
}

// StatPair is a home/away value pair for one labeled stat row.
type StatPair struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// MatchFactsExtended is the extracted record of the detailed post-match
// stats screen, keyed by the stat label as rendered.
type MatchFactsExtended struct {
	Stats map[string]StatPair `json:"stats"`
}

// PerformanceEntry is a single player row on the player_performance screen.
type PerformanceEntry struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	IsMVP  bool    `json:"is_mvp"`
}

// PlayerPerformance is the extracted record of the player_performance screen.
type PlayerPerformance struct {
	Players []PerformanceEntry `json:"players"`
}

// PerformanceDetail is a row on the extended performance table, where
// rating, goals and assists live under the MR/G/AST column labels.
type PerformanceDetail struct {
	Position string  `json:"position"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
	IsMVP    bool    `json:"is_mvp"`
}

// PlayerPerformanceExtended is the extracted record of the extended
// performance screen.
type PlayerPerformanceExtended struct {
	Players []PerformanceDetail `json:"players"`
}

// PenaltyShootout carries the shootout score when a simulated match went to
// penalties.
type PenaltyShootout struct {
	Ours   int `json:"our_penalty_score"`
	Theirs int `json:"their_penalty_score"`
}

// SimSideStats holds the per-side statistics of a simulated match.
type SimSideStats struct {
	OurPossession   int `json:"our_possession"`
	TheirPossession int `json:"their_possession"`
	OurShots        int `json:"our_shots"`
	TheirShots      int `json:"their_shots"`
	OurChances      int `json:"our_chances"`
	TheirChances    int `json:"their_chances"`
}

// SimMatchFacts is the extracted record of the sim_match_facts screen.
type SimMatchFacts struct {
	Winner     string           `json:"winner"`
	OurTeam    string           `json:"our_team_name"`
	TheirTeam  string           `json:"their_team_name"`
	OurScore   int              `json:"our_score"`
	TheirScore int              `json:"their_score"`
	IsDraw     bool             `json:"is_draw"`
	Penalties  *PenaltyShootout `json:"penalties,omitempty"`
	Stats      SimSideStats     `json:"stats"`
}

// LineupEntry is one player on a simulated match performance screen.
// Captaincy, substitution and scored-goal flags come from icon and color
// sampling rather than text.
type LineupEntry struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	IsCaptain  bool    `json:"is_captain"`
	IsSub      bool    `json:"is_sub"`
	ScoredGoal bool    `json:"scored_goal"`
}

// Lineup is the extracted record of a sim_match_performance screen, for
// either the starting eleven or the bench variant.
type Lineup struct {
	Side    string        `json:"side"`
	Players []LineupEntry `json:"players"`
}

// FinancialEntry is one row of the squad financial table.
type FinancialEntry struct {
	Position       string `json:"position"`
	Name           string `json:"name"`
	IsCaptain      bool   `json:"is_captain"`
	Age            int    `json:"age"`
	MarketValue    int    `json:"market_value"`
	Wage           int    `json:"wage"`
	ContractMonths int    `json:"contract_length_months"`
	ContractRaw    string `json:"contract_length_string"`
}

// SquadFinancial is the extracted record of the squad_financial screen.
type SquadFinancial struct {
	Players []FinancialEntry `json:"players"`
}

// AttributeProfile is one squad member's attribute card.
type AttributeProfile struct {
	Name          string         `json:"name"`
	OverallRating int            `json:"overall_rating"`
	Positions     []string       `json:"positions"`
	Age           int            `json:"age"`
	HeightCm      float64        `json:"height_cm"`
	WeightKg      float64        `json:"weight_kg"`
	PreferredFoot string         `json:"pref_foot"`
	Skills        map[string]int `json:"skills"`
	Playstyles    []string       `json:"playstyles"`
}

// SquadStats is the totals row of the squad_stats screen.
type SquadStats struct {
	Appearances   int     `json:"appearances"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	CleanSheets   int     `json:"clean_sheets"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	AverageRating float64 `json:"rating_avg"`
}

// SquadMember groups the three squad screens captured for one player during
// backlog processing.
type SquadMember struct {
	Name       string            `json:"name"`
	Financial  *SquadFinancial   `json:"financial"`
	Stats      *SquadStats       `json:"stats"`
	Attributes *AttributeProfile `json:"attributes"`
}

// PreMatch is the extracted record of the pre-match screen. Mode is either
// "regular" or "simulated", decided by the background of the play button.
type PreMatch struct {
	Mode       string `json:"mode"`
	CapturedAt int64  `json:"captured_at"`
}
