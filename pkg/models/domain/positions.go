package domain

// Positions is the closed vocabulary of on-pitch position labels, longest
// variants included. A position token on screen is strong evidence of a
// performance or squad layout.
var Positions = []string{
	"GK", "RB", "RWB", "LB", "LWB", "CB", "RCB", "LCB",
	"CDM", "CM", "LCM", "RCM", "CAM", "RM", "LM", "RW", "LW",
	"ST", "CF", "RS", "LS", "RF", "LF",
}
