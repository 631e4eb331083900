// Package stats derives every live view from the current snapshot of
// non-archived events. Functions here are pure: they are re-run in full on
// each snapshot change and must stay side-effect free.
package stats

import (
	"sort"
	"time"

	"salesboard/internal/model"
	"salesboard/internal/week"
)

// LeaderboardEntry is one ranked roster row. Zero-count salespeople are
// included so the board always shows the full team.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Count    int    `json:"count"`
}

type LocationTotal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TypeCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Instant is the snapshot fed to achievement rules. WeeklyProjects is the
// whole live set: the live board is the current week by construction.
type Instant struct {
	WeeklyProjects     int
	MondayProjects     int
	HourlyMax          int
	AllSalespeopleDay  bool
	AllProjectTypesDay bool
}

// Sanitize drops events missing a required field. The count of dropped
// events is returned so the caller can report the anomaly; a bad event must
// not fail the whole aggregation.
func Sanitize(events []model.ProjectEvent) ([]model.ProjectEvent, int) {
	valid := make([]model.ProjectEvent, 0, len(events))
	dropped := 0
	for _, ev := range events {
		if ev.SalespersonID == "" || ev.ProjectTypeID == "" || ev.Location == "" {
			dropped++
			continue
		}
		valid = append(valid, ev)
	}
	return valid, dropped
}

// CountByLocation counts live events logged against one location.
func CountByLocation(events []model.ProjectEvent, locationID string) int {
	n := 0
	for _, ev := range events {
		if ev.Location == locationID {
			n++
		}
	}
	return n
}

func LocationTotals(events []model.ProjectEvent, locations []model.Location) []LocationTotal {
	totals := make([]LocationTotal, 0, len(locations))
	for _, loc := range locations {
		totals = append(totals, LocationTotal{
			ID:    loc.ID,
			Name:  loc.Name,
			Count: CountByLocation(events, loc.ID),
		})
	}
	return totals
}

// Leaderboard ranks the full roster by live event count, descending.
// Ties keep roster order (the roster is name-sorted), so ordering is
// deterministic across recomputations.
func Leaderboard(events []model.ProjectEvent, roster []model.Salesperson) []LeaderboardEntry {
	counts := make(map[string]int, len(roster))
	for _, ev := range events {
		counts[ev.SalespersonID]++
	}

	entries := make([]LeaderboardEntry, 0, len(roster))
	for _, sp := range roster {
		entries = append(entries, LeaderboardEntry{
			ID:       sp.ID,
			Name:     sp.Name,
			Initials: sp.Initials,
			Count:    counts[sp.ID],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// ProjectTypePopularity returns only types with at least one live event,
// most popular first. Ties keep catalog order.
func ProjectTypePopularity(events []model.ProjectEvent, types []model.ProjectType) []TypeCount {
	counts := make(map[string]int, len(types))
	for _, ev := range events {
		counts[ev.ProjectTypeID]++
	}

	popular := make([]TypeCount, 0, len(types))
	for _, pt := range types {
		if counts[pt.ID] > 0 {
			popular = append(popular, TypeCount{ID: pt.ID, Name: pt.Name, Count: counts[pt.ID]})
		}
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Count > popular[j].Count
	})
	return popular
}

// InstantStats computes the figures the achievement rules look at.
func InstantStats(events []model.ProjectEvent, roster []model.Salesperson, types []model.ProjectType) Instant {
	inst := Instant{WeeklyProjects: len(events)}

	hourBuckets := make(map[string]int)
	daySalespeople := make(map[string]map[string]bool)
	dayTypes := make(map[string]map[string]bool)

	for _, ev := range events {
		if ev.LoggedAt.Weekday() == time.Monday {
			inst.MondayProjects++
		}

		day := week.DayKey(ev.LoggedAt)
		hourBuckets[ev.LoggedAt.Format("2006-01-02T15")]++

		if daySalespeople[day] == nil {
			daySalespeople[day] = make(map[string]bool)
		}
		daySalespeople[day][ev.SalespersonID] = true

		if dayTypes[day] == nil {
			dayTypes[day] = make(map[string]bool)
		}
		dayTypes[day][ev.ProjectTypeID] = true
	}

	for _, n := range hourBuckets {
		if n > inst.HourlyMax {
			inst.HourlyMax = n
		}
	}
	for _, seen := range daySalespeople {
		if len(seen) == len(roster) {
			inst.AllSalespeopleDay = true
			break
		}
	}
	for _, seen := range dayTypes {
		if len(seen) == len(types) {
			inst.AllProjectTypesDay = true
			break
		}
	}
	return inst
}

// TopSalesperson finds the roster member with the most events in the
// snapshot. Iteration follows the roster, so a tie resolves to the first
// roster entry holding the max. ok is false for an empty snapshot.
func TopSalesperson(events []model.ProjectEvent, roster []model.Salesperson) (model.Salesperson, int, bool) {
	counts := make(map[string]int, len(roster))
	for _, ev := range events {
		counts[ev.SalespersonID]++
	}

	var top model.Salesperson
	max := 0
	for _, sp := range roster {
		if counts[sp.ID] > max {
			max = counts[sp.ID]
			top = sp
		}
	}
	if max == 0 {
		return model.Salesperson{}, 0, false
	}
	return top, max, true
}
