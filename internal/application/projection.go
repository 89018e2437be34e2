package application

import (
	"fmt"
	"strconv"
	"strings"
)

// PlacementRow is one display row of a placement table, flattened the
// way result dashboards consume it: a place label (with a tie marker),
// the competitor identity, one ordinal column per judge, and the joined
// rationale notes.
type PlacementRow struct {
	// PlaceLabel is the place number, suffixed with " (tie)" for tied
	// groups.
	PlaceLabel string
	// CompetitorID is the start number.
	CompetitorID string
	// Name holds the competitor names as published.
	Name string
	// JudgeRanks holds one ordinal per judge, aligned with the result's
	// JudgeLabels; a judge without a rank leaves an empty column.
	JudgeRanks []string
	// Notes joins the placement rationale and the competitor's
	// tie-break note with " | ".
	Notes string
}

// PlacementRows flattens a tabulation result into display rows, one per
// competitor, in placement order.
func PlacementRows(result *TabulationResult) []PlacementRow {
	if result == nil {
		return nil
	}

	names := make(map[string]string, len(result.Competitors))
	for _, c := range result.Competitors {
		names[c.ID] = c.Name
	}

	var rows []PlacementRow
	for _, record := range result.Placements {
		label := strconv.Itoa(record.Place)
		if record.Tied {
			label = fmt.Sprintf("%d (tie)", record.Place)
		}

		for _, id := range record.CompetitorIDs {
			ranks := make([]string, len(result.Rankings))
			for i, ranking := range result.Rankings {
				if rank, ok := ranking[id]; ok {
					ranks[i] = strconv.Itoa(rank)
				}
			}

			notes := make([]string, 0, 2)
			if record.Rationale != "" {
				notes = append(notes, record.Rationale)
			}
			if note := record.Notes[id]; note != "" {
				notes = append(notes, note)
			}

			rows = append(rows, PlacementRow{
				PlaceLabel:   label,
				CompetitorID: id,
				Name:         names[id],
				JudgeRanks:   ranks,
				Notes:        strings.Join(notes, " | "),
			})
		}
	}
	return rows
}
