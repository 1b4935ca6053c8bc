package core

import "astrobrasil/pkg/domain"

// DefaultMissions returns the built-in mission catalog.
func DefaultMissions() []domain.Mission {
	return []domain.Mission{
		{ID: 1, Name: "Amazônia-1", Status: domain.StatusOperational, Category: "Earth Observation", LaunchYear: 2021, Progress: 95, Cost: 300, Organization: "INPE"},
		{ID: 2, Name: "CBERS-4A", Status: domain.StatusOperational, Category: "Land Resources", LaunchYear: 2019, Progress: 85, Cost: 250, Organization: "INPE/CASA"},
		{ID: 3, Name: "SCD-1", Status: domain.StatusClosed, Category: "Data Collection", LaunchYear: 1993, Progress: 100, Cost: 80, Organization: "INPE"},
		{ID: 4, Name: "VLM-1", Status: domain.StatusFuture, Category: "Autonomous Launch", LaunchYear: 2026, Progress: 45, Cost: 400, Organization: "AEB/DCTA"},
		{ID: 5, Name: "GEO-BR1", Status: domain.StatusFuture, Category: "Communications", LaunchYear: 2028, Progress: 20, Cost: 800, Organization: "Telebras"},
		{ID: 6, Name: "SAR-BR", Status: domain.StatusFuture, Category: "Radar", LaunchYear: 2029, Progress: 10, Cost: 600, Organization: "AEB/INPE"},
		{ID: 7, Name: "PICASSO-X", Status: domain.StatusClosed, Category: "Atmospheric Research", LaunchYear: 2005, Progress: 100, Cost: 50, Organization: "USP"},
	}
}

// DefaultCenters returns the built-in research center catalog.
func DefaultCenters() []domain.ResearchCenter {
	return []domain.ResearchCenter{
		{Name: "INPE", Focus: "Satellites", Region: "Southeast", Projects: 12, Founded: 1961, Status: "active"},
		{Name: "ON", Focus: "Astrophysics", Region: "Southeast", Projects: 8, Founded: 1827, Status: "active"},
		{Name: "LNA", Focus: "Telescopes", Region: "Southeast", Projects: 5, Founded: 1985, Status: "active"},
		{Name: "ITA", Focus: "Space Engineering", Region: "Southeast", Projects: 6, Founded: 1950, Status: "active"},
		{Name: "UFRGS", Focus: "Cosmology", Region: "South", Projects: 4, Founded: 1934, Status: "active"},
		{Name: "CLA", Focus: "Launches", Region: "Northeast", Projects: 3, Founded: 1990, Status: "active"},
		{Name: "UNESP", Focus: "Radio Astronomy", Region: "Southeast", Projects: 2, Founded: 1976, Status: "active"},
	}
}

// NewDefaultCatalogStore builds a store over the built-in catalog.
func NewDefaultCatalogStore() *CatalogStore {
	store, err := NewCatalogStore(DefaultMissions(), DefaultCenters())
	if err != nil {
		panic(err)
	}
	return store
}
