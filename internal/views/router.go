// Package views turns catalog state into page view models. Each page has its
// own controller; Router selects one from a request path.
package views

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"astrobrasil/internal/contact"
	"astrobrasil/internal/core"
	"astrobrasil/pkg/domain"
)

// Page names a site page.
type Page string

const (
	PageIndex    Page = "index"
	PageMissions Page = "missions"
	PageResearch Page = "research"
	PageContact  Page = "contact"
)

// Pages lists every page in navigation order.
func Pages() []Page {
	return []Page{PageIndex, PageMissions, PageResearch, PageContact}
}

var aliases = map[string]Page{
	"index":    PageIndex,
	"missions": PageMissions,
	"missoes":  PageMissions,
	"research": PageResearch,
	"pesquisa": PageResearch,
	"contact":  PageContact,
	"contato":  PageContact,
}

// ParsePage resolves a bare page name, accepting the legacy Portuguese file names.
func ParsePage(name string) (Page, bool) {
	p, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Request carries page inputs.
type Request struct {
	Status domain.MissionStatus
	Query  string
	Locale language.Tag
}

// Router owns one controller per page.
type Router struct {
	svc      *core.Service
	Index    *IndexController
	Missions *MissionsController
	Research *ResearchController
	Contact  *ContactController
}

// NewRouter wires controllers over svc. inquiries and board serve the
// contact page.
func NewRouter(svc *core.Service, inquiries *contact.Service, board *NoticeBoard) *Router {
	return &Router{
		svc:      svc,
		Index:    &IndexController{svc: svc},
		Missions: &MissionsController{svc: svc},
		Research: &ResearchController{svc: svc},
		Contact:  &ContactController{svc: svc, inquiries: inquiries, board: board},
	}
}

// Resolve maps a URL path to a page using its last segment with any .html
// suffix removed. An empty segment is the index. Unknown pages fall back to
// the index and report false.
func (r *Router) Resolve(p string) (Page, bool) {
	seg := path.Base("/" + strings.Trim(p, "/"))
	seg = strings.TrimSuffix(seg, ".html")
	if seg == "/" || seg == "" {
		return PageIndex, true
	}
	page, ok := ParsePage(seg)
	if !ok {
		return PageIndex, false
	}
	return page, true
}

// Render builds the view model for page and records it as the last visited page.
func (r *Router) Render(ctx context.Context, page Page, req Request) (any, error) {
	var (
		view any
		err  error
	)
	switch page {
	case PageIndex:
		view, err = r.Index.Render(ctx, req.Locale)
	case PageMissions:
		view = r.Missions.Render(ctx, req.Status)
	case PageResearch:
		view = r.Research.Search(ctx, req.Query)
	case PageContact:
		view = r.Contact.Render(ctx)
	default:
		return nil, fmt.Errorf("unknown page %q", page)
	}
	if err != nil {
		return nil, err
	}
	if err := r.svc.RecordPageView(ctx, string(page)); err != nil {
		r.svc.Logger().Warn("record page view failed", zap.String("page", string(page)), zap.Error(err))
	}
	return view, nil
}
