// Package domain defines the catalog entities and storage capabilities
// shared by astrobrasil services and adapters.
package domain

import (
	"fmt"
	"strings"
)

// MissionStatus is the lifecycle label attached to a mission.
type MissionStatus string

// Supported mission statuses.
const (
	// StatusOperational marks a mission currently in service.
	StatusOperational MissionStatus = "operational"
	// StatusClosed marks a finished mission.
	StatusClosed MissionStatus = "closed"
	// StatusFuture marks a planned mission.
	StatusFuture MissionStatus = "future"

	// StatusAll is the filter sentinel selecting every mission.
	StatusAll MissionStatus = "all"
)

// MissionStatuses lists the concrete statuses in display order.
func MissionStatuses() []MissionStatus {
	return []MissionStatus{StatusOperational, StatusFuture, StatusClosed}
}

// Valid reports whether s is one of the concrete mission statuses.
func (s MissionStatus) Valid() bool {
	switch s {
	case StatusOperational, StatusClosed, StatusFuture:
		return true
	default:
		return false
	}
}

// IsAll reports whether s selects every mission when used as a filter.
func (s MissionStatus) IsAll() bool {
	return s == "" || s == StatusAll
}

// ParseMissionStatus normalises user input into a filter value. It never
// fails: unknown input is returned as-is so that filtering yields no matches.
func ParseMissionStatus(raw string) MissionStatus {
	return MissionStatus(strings.ToLower(strings.TrimSpace(raw)))
}

// Mission is a cataloged space program entry.
type Mission struct {
	ID           int           `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Status       MissionStatus `json:"status" yaml:"status"`
	Category     string        `json:"category" yaml:"category"`
	LaunchYear   int           `json:"launch_year" yaml:"launch_year"`
	Progress     int           `json:"progress" yaml:"progress"`
	Cost         float64       `json:"cost" yaml:"cost"`
	Organization string        `json:"organization" yaml:"organization"`
}

// Validate checks the per-record invariants of a mission.
func (m Mission) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("mission %d: name required", m.ID)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("mission %d: unknown status %q", m.ID, m.Status)
	}
	if m.Progress < 0 || m.Progress > 100 {
		return fmt.Errorf("mission %d: progress %d out of range [0,100]", m.ID, m.Progress)
	}
	return nil
}

// ResearchCenter is a cataloged research institution.
type ResearchCenter struct {
	Name     string `json:"name" yaml:"name"`
	Focus    string `json:"focus" yaml:"focus"`
	Region   string `json:"region" yaml:"region"`
	Projects int    `json:"projects" yaml:"projects"`
	Founded  int    `json:"founded" yaml:"founded"`
	Status   string `json:"status" yaml:"status"`
}

// Validate checks the per-record invariants of a research center.
func (c ResearchCenter) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("research center name required")
	}
	if c.Projects < 0 {
		return fmt.Errorf("research center %s: negative project count %d", c.Name, c.Projects)
	}
	return nil
}
