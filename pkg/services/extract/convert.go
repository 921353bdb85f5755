package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	yearPattern  = regexp.MustCompile(`(\d+)\s*y`)
	monthPattern = regexp.MustCompile(`(\d+)\s*m`)
)

// ParseMoney converts an abbreviated money string like "800K", "1.2M" or
// "E3K" into whole units. Currency symbols are stripped; a bare number is
// taken as already being in whole units.
func ParseMoney(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer("E", "", "$", "", "€", "", ",", "").Replace(s)

	multiplier := 1.0
	switch {
	case strings.Contains(s, "M"):
		multiplier = 1_000_000
		s = strings.ReplaceAll(s, "M", "")
	case strings.Contains(s, "K"):
		multiplier = 1_000
		s = strings.ReplaceAll(s, "K", "")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable money value %q: %w", s, err)
	}
	return int(v * multiplier), nil
}

// ContractMonths converts a contract length string like "1y 7m" or "7m" to
// a total month count. Missing parts count as zero.
func ContractMonths(s string) int {
	months := 0
	if m := yearPattern.FindStringSubmatch(s); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			months += y * 12
		}
	}
	if m := monthPattern.FindStringSubmatch(s); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			months += v
		}
	}
	return months
}

// FeetToCm converts an imperial height to centimeters.
func FeetToCm(feet, inches int) float64 {
	return round2(float64(feet)*30.48 + float64(inches)*2.54)
}

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs int) float64 {
	return round2(float64(lbs) * 0.453592)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
