package extract

import (
	"context"
	"image"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/geometry"
)

// financialHeaders maps the table's header labels to field names. The
// header row fixes the column x-positions every data row is assigned by.
var financialHeaders = map[string]string{
	"pos":      "position",
	"name":     "name",
	"age":      "age",
	"value":    "value",
	"wage":     "wage",
	"contract": "contract",
}

// SquadFinancialExtractor reads the squad financial table: one row per
// player with position, name, age, market value, wage and contract length.
type SquadFinancialExtractor struct {
	deps Deps
}

func NewSquadFinancialExtractor(deps Deps) *SquadFinancialExtractor {
	return &SquadFinancialExtractor{deps: deps}
}

func (e *SquadFinancialExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	columns := e.headerColumns(dets)
	if len(columns) < 3 {
		return nil, &MissingAnchorError{Anchor: "table headers"}
	}

	var players []domain.FinancialEntry
	for _, row := range geometry.GroupRows(dets, 30) {
		if isHeaderRow(row) {
			continue
		}
		entry, ok := e.readRow(ctx, row, columns)
		if ok {
			players = append(players, entry)
		}
	}

	if len(players) == 0 {
		return nil, &MissingAnchorError{Anchor: "player rows"}
	}
	return &domain.SquadFinancial{Players: players}, nil
}

// headerColumns locates the table header labels and returns field name to
// column x-center.
func (e *SquadFinancialExtractor) headerColumns(dets []domain.Detection) map[string]float64 {
	columns := map[string]float64{}
	for _, d := range dets {
		text := strings.ToLower(strings.TrimSpace(d.Text))
		for label, field := range financialHeaders {
			if strings.HasPrefix(text, label) {
				if _, dup := columns[field]; !dup {
					columns[field] = d.Quad.Center().X
				}
			}
		}
	}
	return columns
}

func isHeaderRow(row []domain.Detection) bool {
	hits := 0
	for _, d := range row {
		text := strings.ToLower(strings.TrimSpace(d.Text))
		for label := range financialHeaders {
			if strings.HasPrefix(text, label) {
				hits++
			}
		}
	}
	return hits >= 2
}

// readRow assigns every cell of one table row to its nearest column. The
// name column may span several detections, including the captain marker.
func (e *SquadFinancialExtractor) readRow(ctx context.Context, row []domain.Detection, columns map[string]float64) (domain.FinancialEntry, bool) {
	entry := domain.FinancialEntry{}
	var nameParts []string

	for _, d := range row {
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		switch geometry.NearestColumn(d.Quad.Center().X, columns) {
		case "position":
			entry.Position = strings.ToUpper(text)
		case "name":
			if strings.ToLower(text) == "c" {
				entry.IsCaptain = true
				continue
			}
			nameParts = append(nameParts, text)
		case "age":
			if age, err := strconv.Atoi(text); err == nil {
				entry.Age = age
			}
		case "value":
			if v, err := ParseMoney(text); err == nil {
				entry.MarketValue = v
			} else {
				zerolog.Ctx(ctx).Debug().Str("value", text).Msg("unparseable market value")
			}
		case "wage":
			if v, err := ParseMoney(text); err == nil {
				entry.Wage = v
			}
		case "contract":
			entry.ContractRaw = text
			entry.ContractMonths = ContractMonths(text)
		}
	}

	name := strings.Join(nameParts, " ")
	clean, ok := ValidName(name)
	if !ok {
		return domain.FinancialEntry{}, false
	}
	entry.IsCaptain, entry.Name = captainFromName(clean, entry.IsCaptain)
	return entry, true
}

// captainFromName folds an embedded captain marker into the flag detected
// from the separate "c" cell.
func captainFromName(name string, isCaptain bool) (bool, string) {
	embedded, clean := Captaincy(name, nil, "", domain.Detection{})
	return isCaptain || embedded, clean
}
