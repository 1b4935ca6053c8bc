package views

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"astrobrasil/internal/core"
	"astrobrasil/pkg/domain"
)

// CenterRow is one research center table row.
type CenterRow struct {
	Center  domain.ResearchCenter `json:"center"`
	Age     int                   `json:"age"`
	Visible bool                  `json:"visible"`
}

// ShareLine is a formatted project share for the statistics sidebar.
type ShareLine struct {
	Name     string `json:"name"`
	Projects int    `json:"projects"`
	Percent  string `json:"percent"`
}

// ResearchView is the research page model.
type ResearchView struct {
	Term          string      `json:"term"`
	Matched       int         `json:"matched"`
	Rows          []CenterRow `json:"rows"`
	TotalProjects int         `json:"total_projects"`
	Shares        []ShareLine `json:"shares"`
}

// ResearchController renders the searchable research center table.
type ResearchController struct {
	svc *core.Service
}

// rowText is the searchable text of a row, in column order.
func rowText(c domain.ResearchCenter) string {
	return strings.Join([]string{
		c.Name,
		c.Focus,
		c.Region,
		strconv.Itoa(c.Projects),
		strconv.Itoa(c.Founded),
		c.Status,
	}, " ")
}

// Search marks rows whose text contains term, ignoring case. The term is
// not trimmed: surrounding spaces must match the space between columns. An
// empty term matches every row.
func (c *ResearchController) Search(ctx context.Context, term string) ResearchView {
	fold := cases.Fold()
	needle := fold.String(term)
	centers := c.svc.Centers(ctx)
	now := c.svc.Now()
	view := ResearchView{
		Term:          term,
		Rows:          make([]CenterRow, 0, len(centers)),
		TotalProjects: core.TotalProjects(centers),
	}
	for _, center := range centers {
		visible := strings.Contains(fold.String(rowText(center)), needle)
		if visible {
			view.Matched++
		}
		view.Rows = append(view.Rows, CenterRow{
			Center:  center,
			Age:     core.CenterAge(center, now),
			Visible: visible,
		})
	}
	for _, s := range core.ProjectShares(centers) {
		view.Shares = append(view.Shares, ShareLine{
			Name:     s.Name,
			Projects: s.Projects,
			Percent:  strconv.FormatFloat(s.Percent, 'f', 2, 64),
		})
	}
	c.svc.Logger().Info("research table searched",
		zap.String("term", needle),
		zap.Int("matched", view.Matched))
	return view
}
