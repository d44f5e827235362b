package http

import (
	"log/slog"
	"net/http"

	"grana/internal/core"
)

type categoryRow struct {
	Name   string
	Kind   string
	Amount string
	Width  int
}

type ownerRow struct {
	Name    string
	Income  string
	Expense string
}

// dashboardView is the fully formatted model behind the dashboard
// partial; it is what the cache stores.
type dashboardView struct {
	Period     string
	Income     string
	Expense    string
	Balance    string
	Negative   bool
	Count      int
	Categories []categoryRow
	Owners     []ownerRow
}

// handleDashboard renders the summary partial for the selected period.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	period := core.ParsePeriod(r.URL.Query().Get("period"))

	if view, found := s.dashboardCache.Get(string(period)); found {
		dashboardRenders.WithLabelValues("hit").Inc()
		s.renderDashboard(w, r, view)
		return
	}
	dashboardRenders.WithLabelValues("miss").Inc()

	records, err := s.lister.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records error", "error", err, "period", period)
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Erro ao carregar o painel</div></section>`))
		return
	}

	view := buildDashboardView(records, period)
	s.dashboardCache.Set(string(period), view)
	s.renderDashboard(w, r, view)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, view dashboardView) {
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Saldo: ` + view.Balance + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "dashboard.html", "period", view.Period)
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Erro ao renderizar o painel</div></section>`))
	}
}

func buildDashboardView(records []core.Record, period core.Period) dashboardView {
	selected := core.FilterByPeriod(records, period)
	summary := core.Summarize(selected)
	byCategory := core.GroupByCategory(selected)
	byOwner := core.GroupByOwner(selected)

	view := dashboardView{
		Period:   string(period),
		Income:   formatReais(summary.Income.Cents),
		Expense:  formatReais(summary.Expense.Cents),
		Balance:  formatReais(summary.Balance.Cents),
		Negative: summary.Balance.Cents < 0,
		Count:    len(selected),
	}

	var maxCents int64
	for _, g := range byCategory {
		if g.Total.Cents > maxCents {
			maxCents = g.Total.Cents
		}
	}
	for _, g := range byCategory {
		width := 0
		if maxCents > 0 && g.Total.Cents > 0 {
			width = int((g.Total.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width > 0 && width < 2 {                              // ensure visibility for very small values
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		view.Categories = append(view.Categories, categoryRow{
			Name:   g.Category,
			Kind:   string(g.Kind),
			Amount: formatReais(g.Total.Cents),
			Width:  width,
		})
	}

	for _, g := range byOwner {
		view.Owners = append(view.Owners, ownerRow{
			Name:    g.Owner,
			Income:  formatReais(g.Income.Cents),
			Expense: formatReais(g.Expense.Cents),
		})
	}

	return view
}
