package views

import (
	"context"

	"golang.org/x/text/language"

	"astrobrasil/internal/core"
	"astrobrasil/internal/i18n"
	"astrobrasil/pkg/domain"
)

// costUnit converts catalog costs, recorded in millions of reais, to reais.
const costUnit = 1_000_000

// IndexView is the landing page model.
type IndexView struct {
	Locale          string                       `json:"locale"`
	TotalInvestment string                       `json:"total_investment"`
	Headline        string                       `json:"headline"`
	MissionCounts   map[domain.MissionStatus]int `json:"mission_counts"`
	TotalProjects   int                          `json:"total_projects"`
	DarkMode        bool                         `json:"dark_mode"`
	Theme           string                       `json:"theme"`
	LastPage        string                       `json:"last_page,omitempty"`
}

// IndexController renders the landing page summary.
type IndexController struct {
	svc *core.Service
}

// Render summarizes the catalog for locale. The zero tag selects the default locale.
func (c *IndexController) Render(ctx context.Context, locale language.Tag) (IndexView, error) {
	if locale == language.Und {
		locale = i18n.Default
	}
	sum := c.svc.Summary(ctx)
	dark, err := c.svc.DarkMode(ctx)
	if err != nil {
		return IndexView{}, err
	}
	last, _, err := c.svc.LastPage(ctx)
	if err != nil {
		return IndexView{}, err
	}
	p := i18n.Printer(locale)
	investment := i18n.FormatCurrency(locale, sum.TotalCost*costUnit)
	theme := p.Sprintf(i18n.KeyThemeLight)
	if dark {
		theme = p.Sprintf(i18n.KeyThemeDark)
	}
	return IndexView{
		Locale:          locale.String(),
		TotalInvestment: investment,
		Headline:        p.Sprintf(i18n.KeyInvestment, investment),
		MissionCounts:   sum.MissionCounts,
		TotalProjects:   sum.TotalProjects,
		DarkMode:        dark,
		Theme:           theme,
		LastPage:        last,
	}, nil
}
