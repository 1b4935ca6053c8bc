package views

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"astrobrasil/internal/core"
	"astrobrasil/pkg/domain"
)

// MissionCard is one mission as displayed on the missions page.
type MissionCard struct {
	Mission       domain.Mission `json:"mission"`
	Visible       bool           `json:"visible"`
	Order         int            `json:"order,omitempty"`
	ProgressWidth string         `json:"progress_width"`
}

// MissionsView is the missions page model.
type MissionsView struct {
	Filter  domain.MissionStatus `json:"filter"`
	Matched int                  `json:"matched"`
	Cards   []MissionCard        `json:"cards"`
}

// MissionsController renders the filterable mission list.
type MissionsController struct {
	svc *core.Service
}

// OrderWeight ranks statuses for display: operational, then future, then closed.
func OrderWeight(s domain.MissionStatus) int {
	switch s {
	case domain.StatusOperational:
		return 1
	case domain.StatusFuture:
		return 2
	default:
		return 3
	}
}

// Render lays out every mission card and marks those matching filter visible.
func (c *MissionsController) Render(ctx context.Context, filter domain.MissionStatus) MissionsView {
	filter = domain.ParseMissionStatus(string(filter))
	matched := c.svc.Missions(ctx, filter)
	visible := make(map[int]struct{}, len(matched))
	for _, m := range matched {
		visible[m.ID] = struct{}{}
	}
	all := c.svc.Catalog().ListMissions(domain.StatusAll)
	cards := make([]MissionCard, 0, len(all))
	for _, m := range all {
		card := MissionCard{Mission: m, ProgressWidth: fmt.Sprintf("%d%%", m.Progress)}
		if _, ok := visible[m.ID]; ok {
			card.Visible = true
			card.Order = OrderWeight(m.Status)
		}
		cards = append(cards, card)
	}
	c.svc.Logger().Info("mission filter applied",
		zap.String("filter", string(filter)),
		zap.Int("matched", len(matched)))
	return MissionsView{Filter: filter, Matched: len(matched), Cards: cards}
}
