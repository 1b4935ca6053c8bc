package core

import (
	"fmt"

	"astrobrasil/pkg/domain"
)

// CatalogStore holds the mission and research center collections. It is
// populated once at construction and read-only afterwards, so it is safe for
// concurrent readers without locking.
type CatalogStore struct {
	missions []domain.Mission
	centers  []domain.ResearchCenter
}

// NewCatalogStore validates and copies the supplied collections. Insertion
// order is preserved for every accessor.
func NewCatalogStore(missions []domain.Mission, centers []domain.ResearchCenter) (*CatalogStore, error) {
	ids := make(map[int]struct{}, len(missions))
	for _, m := range missions {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := ids[m.ID]; dup {
			return nil, fmt.Errorf("duplicate mission id %d", m.ID)
		}
		ids[m.ID] = struct{}{}
	}
	names := make(map[string]struct{}, len(centers))
	for _, c := range centers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := names[c.Name]; dup {
			return nil, fmt.Errorf("duplicate research center %s", c.Name)
		}
		names[c.Name] = struct{}{}
	}
	return &CatalogStore{
		missions: append([]domain.Mission(nil), missions...),
		centers:  append([]domain.ResearchCenter(nil), centers...),
	}, nil
}

// ListMissions returns every mission when filter is empty or StatusAll,
// otherwise the missions whose status equals filter. Unknown filters yield an
// empty slice.
func (s *CatalogStore) ListMissions(filter domain.MissionStatus) []domain.Mission {
	if filter.IsAll() {
		out := make([]domain.Mission, len(s.missions))
		copy(out, s.missions)
		return out
	}
	out := make([]domain.Mission, 0, len(s.missions))
	for _, m := range s.missions {
		if m.Status == filter {
			out = append(out, m)
		}
	}
	return out
}

// ListCenters returns all research centers in insertion order.
func (s *CatalogStore) ListCenters() []domain.ResearchCenter {
	out := make([]domain.ResearchCenter, len(s.centers))
	copy(out, s.centers)
	return out
}

// TotalCost sums the cost of every mission.
func (s *CatalogStore) TotalCost() float64 {
	var total float64
	for _, m := range s.missions {
		total += m.Cost
	}
	return total
}
