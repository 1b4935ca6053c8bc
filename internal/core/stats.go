package core

import (
	"time"

	"astrobrasil/pkg/domain"
)

// CenterShare is a research center's share of all cataloged projects.
type CenterShare struct {
	Name     string  `json:"name"`
	Projects int     `json:"projects"`
	Percent  float64 `json:"percent"`
}

// TotalProjects sums the project counts of the supplied centers.
func TotalProjects(centers []domain.ResearchCenter) int {
	total := 0
	for _, c := range centers {
		total += c.Projects
	}
	return total
}

// ProjectShares computes each center's percentage of the total project count.
// Shares are all zero when no center has projects.
func ProjectShares(centers []domain.ResearchCenter) []CenterShare {
	total := TotalProjects(centers)
	out := make([]CenterShare, 0, len(centers))
	for _, c := range centers {
		share := CenterShare{Name: c.Name, Projects: c.Projects}
		if total > 0 {
			share.Percent = float64(c.Projects) / float64(total) * 100
		}
		out = append(out, share)
	}
	return out
}

// MissionCounts tallies missions per status. Every concrete status is
// present, with zero when no mission carries it.
func MissionCounts(missions []domain.Mission) map[domain.MissionStatus]int {
	statuses := domain.MissionStatuses()
	counts := make(map[domain.MissionStatus]int, len(statuses))
	for _, s := range statuses {
		counts[s] = 0
	}
	for _, m := range missions {
		counts[m.Status]++
	}
	return counts
}

// CenterAge returns the number of calendar years since the center's founding.
func CenterAge(c domain.ResearchCenter, now time.Time) int {
	return now.Year() - c.Founded
}

// Summary aggregates catalog statistics for dashboards.
type Summary struct {
	TotalCost     float64                      `json:"total_cost"`
	TotalProjects int                          `json:"total_projects"`
	MissionCounts map[domain.MissionStatus]int `json:"mission_counts"`
	Shares        []CenterShare                `json:"shares"`
}
