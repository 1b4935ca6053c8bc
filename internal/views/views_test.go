package views

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"astrobrasil/internal/blob"
	"astrobrasil/internal/contact"
	"astrobrasil/internal/core"
	"astrobrasil/internal/i18n"
	"astrobrasil/internal/infra/persistence/memory"
	"astrobrasil/pkg/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	svc    *core.Service
	board  *NoticeBoard
	router *Router
}

func newFixture(t *testing.T, store blob.Store) fixture {
	t.Helper()
	svc := core.NewService(core.NewDefaultCatalogStore(), memory.NewStore(),
		core.WithClock(func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }))
	board := NewNoticeBoard(nil, time.Hour, nil)
	t.Cleanup(board.Close)
	if store == nil {
		store = blob.NewMemory()
	}
	return fixture{svc: svc, board: board, router: NewRouter(svc, contact.NewService(store, nil), board)}
}

func TestRouterResolve(t *testing.T) {
	r := newFixture(t, nil).router
	cases := []struct {
		path string
		page Page
		ok   bool
	}{
		{"", PageIndex, true},
		{"/", PageIndex, true},
		{"/index.html", PageIndex, true},
		{"/site/missoes.html", PageMissions, true},
		{"/missions", PageMissions, true},
		{"pesquisa.html", PageResearch, true},
		{"/contato.html", PageContact, true},
		{"/Contact/", PageContact, true},
		{"/faq.html", PageIndex, false},
	}
	for _, tc := range cases {
		page, ok := r.Resolve(tc.path)
		require.Equal(t, tc.page, page, tc.path)
		require.Equal(t, tc.ok, ok, tc.path)
	}
}

func TestMissionsRender(t *testing.T) {
	c := newFixture(t, nil).router.Missions
	view := c.Render(context.Background(), "FUTURE")
	require.Equal(t, domain.StatusFuture, view.Filter)
	require.Equal(t, 3, view.Matched)
	require.Len(t, view.Cards, 7)
	for _, card := range view.Cards {
		if card.Mission.Status == domain.StatusFuture {
			require.True(t, card.Visible)
			require.Equal(t, 2, card.Order)
		} else {
			require.False(t, card.Visible)
			require.Zero(t, card.Order)
		}
	}
	require.Equal(t, "95%", view.Cards[0].ProgressWidth)

	all := c.Render(context.Background(), "")
	require.Equal(t, 7, all.Matched)
	require.Equal(t, 1, all.Cards[0].Order)
	require.Equal(t, 3, all.Cards[2].Order)

	none := c.Render(context.Background(), "operacional")
	require.Zero(t, none.Matched)
	require.Equal(t, "100%", all.Cards[2].ProgressWidth)
}

func TestResearchSearch(t *testing.T) {
	c := newFixture(t, nil).router.Research
	view := c.Search(context.Background(), "")
	require.Equal(t, 7, view.Matched)
	require.Equal(t, 40, view.TotalProjects)
	require.Equal(t, "30.00", view.Shares[0].Percent)
	require.Equal(t, 65, view.Rows[0].Age)

	cosmology := c.Search(context.Background(), "COSMOLOGY ")
	require.Equal(t, 1, cosmology.Matched)
	for _, row := range cosmology.Rows {
		require.Equal(t, row.Center.Name == "UFRGS", row.Visible, row.Center.Name)
	}

	require.Equal(t, 6, c.Search(context.Background(), "south").Matched)
	require.Equal(t, 1, c.Search(context.Background(), "south ").Matched)
	require.Zero(t, c.Search(context.Background(), "  cosmology").Matched)

	byYear := c.Search(context.Background(), "1961")
	require.Equal(t, 1, byYear.Matched)

	none := c.Search(context.Background(), "marte")
	require.Zero(t, none.Matched)
	require.Len(t, none.Rows, 7)
}

func TestIndexRender(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	view, err := f.router.Index.Render(ctx, i18n.Default)
	require.NoError(t, err)
	require.Contains(t, view.TotalInvestment, "2.480.000.000,00")
	require.True(t, strings.HasPrefix(view.Headline, "Investimento total"))
	require.True(t, view.DarkMode)
	require.Equal(t, "Escuro", view.Theme)
	require.Equal(t, 3, view.MissionCounts[domain.StatusFuture])
	require.Empty(t, view.LastPage)

	_, err = f.svc.ToggleTheme(ctx)
	require.NoError(t, err)
	require.NoError(t, f.svc.RecordPageView(ctx, "research"))
	en, err := f.router.Index.Render(ctx, i18n.English)
	require.NoError(t, err)
	require.Equal(t, "Light", en.Theme)
	require.Equal(t, "research", en.LastPage)
	require.Equal(t, "en-US", en.Locale)
}

func TestRouterRenderRecordsLastPage(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	view, err := f.router.Render(ctx, PageMissions, Request{Status: domain.StatusClosed})
	require.NoError(t, err)
	require.Equal(t, 2, view.(MissionsView).Matched)
	last, ok, err := f.svc.LastPage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "missions", last)

	idx, err := f.router.Render(ctx, PageIndex, Request{})
	require.NoError(t, err)
	require.Equal(t, "missions", idx.(IndexView).LastPage)

	_, err = f.router.Render(ctx, PageResearch, Request{Query: "ita"})
	require.NoError(t, err)
	_, err = f.router.Render(ctx, PageContact, Request{})
	require.NoError(t, err)
	_, err = f.router.Render(ctx, Page("faq"), Request{})
	require.Error(t, err)
}

func TestContactSubmitPostsNotices(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	c := f.router.Contact

	_, err := c.Submit(ctx, i18n.Default, contact.Inquiry{Name: "Ana"})
	require.Error(t, err)
	n, ok := f.board.Current()
	require.True(t, ok)
	require.True(t, n.IsError)
	require.Equal(t, "Erro de Validação", n.Title)

	_, err = c.Submit(ctx, i18n.English, contact.Inquiry{Name: "Ana", Email: "ana@", Subject: "s", Category: "c"})
	require.Error(t, err)
	n, _ = f.board.Current()
	require.Equal(t, "Email Error", n.Title)

	rec, err := c.Submit(ctx, i18n.Default, contact.Inquiry{Name: "Ana", Email: "ana@inpe.br", Subject: "Visita", Category: "educacao"})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	n, _ = f.board.Current()
	require.False(t, n.IsError)
	require.Equal(t, "Obrigado, Ana. Sua consulta (educacao) foi registrada.", n.Message)

	view := c.Render(ctx)
	require.NotNil(t, view.Notice)
	require.Equal(t, "Sucesso no Envio!", view.Notice.Title)
}

type brokenStore struct{ blob.Store }

func (brokenStore) Put(context.Context, string, io.Reader, blob.PutOptions) (blob.Info, error) {
	return blob.Info{}, errors.New("disk full")
}

func TestContactSubmitArchiveFailure(t *testing.T) {
	f := newFixture(t, brokenStore{Store: blob.NewMemory()})
	_, err := f.router.Contact.Submit(context.Background(), i18n.English, contact.Inquiry{Name: "Ana", Email: "ana@inpe.br", Subject: "s", Category: "c"})
	require.ErrorContains(t, err, "disk full")
	n, ok := f.board.Current()
	require.True(t, ok)
	require.Equal(t, "Submission Failed", n.Title)
}

func TestNoticeBoardDismissAndRepost(t *testing.T) {
	board := NewNoticeBoard(nil, 300*time.Millisecond, nil)
	defer board.Close()
	board.Post("first", "one", false)
	time.Sleep(100 * time.Millisecond)
	board.Post("second", "two", true)
	// The first timer would have fired here had it not been cancelled.
	time.Sleep(250 * time.Millisecond)
	n, ok := board.Current()
	require.True(t, ok)
	require.Equal(t, "second", n.Title)
	require.Eventually(t, func() bool {
		_, ok := board.Current()
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNoticeBoardClose(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	board := NewNoticeBoard(nil, time.Hour, zap.New(obs))
	board.Post("t", "m", false)
	board.Close()
	_, ok := board.Current()
	require.False(t, ok)
	closed := logs.FilterMessage("notice board closed").All()
	require.Len(t, closed, 1)
	require.Equal(t, int64(0), closed[0].ContextMap()["pending_timers"])
	require.Equal(t, DefaultNoticeTimeout, NewNoticeBoard(nil, 0, nil).timeout)
}
