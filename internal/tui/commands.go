package tui

import (
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HassanOla1/economy/internal/api"
	"github.com/HassanOla1/economy/internal/view"
)

// messages
type healthMsg struct{ err error }

type optionsMsg struct {
	rows []api.Row
	err  error
}

type revenueMsg struct {
	rows []api.AggRow
	err  error
}

type ictOutputMsg struct {
	rows []api.AggRow
	err  error
}

type penetrationMsg struct {
	rows []api.Row
	err  error
}

type summaryMsg struct {
	dataset string
	summary api.Summary
	err     error
}

type profileMsg struct {
	dataset string
	rows    []api.Row
	err     error
}

type comparisonMsg struct{ cmp *view.Comparison }

type explorerMsg struct {
	rows []api.Row
	err  error
}

type aiAnswerMsg struct {
	answer api.AIAnswer
	err    error
}

type downloadMsg struct {
	dataset string
	path    string
	err     error
}

// refreshAll is the full top-to-bottom fetch pass. tea.Sequence keeps
// the calls strictly one after another: no overlap, one attempt each.
func (a *App) refreshAll() tea.Cmd {
	cmds := []tea.Cmd{a.healthCmd(), a.optionsCmd()}
	switch a.view {
	case viewEcommerce:
		cmds = append(cmds, a.revenueCmd())
	case viewICTFintech:
		cmds = append(cmds, a.ictOutputCmd(), a.penetrationCmd())
	case viewExplorer:
		cmds = append(cmds, a.explorerCmd())
	}
	for _, ds := range summaryDatasets {
		cmds = append(cmds, a.summaryCmd(ds))
	}
	cmds = append(cmds,
		a.profileCmd("halal_ecommerce"),
		a.profileCmd("islamic_fintech"),
		a.comparisonCmd(),
	)
	return tea.Sequence(cmds...)
}

func (a *App) healthCmd() tea.Cmd {
	return func() tea.Msg {
		return healthMsg{err: a.client.Health(a.ctx)}
	}
}

func (a *App) optionsCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.client.Query(a.ctx, "halal_ecommerce", nil)
		return optionsMsg{rows: rows, err: err}
	}
}

func (a *App) revenueCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.client.Aggregation(a.ctx, "halal_ecommerce", "revenue_usd", "country")
		return revenueMsg{rows: rows, err: err}
	}
}

func (a *App) ictOutputCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.client.Aggregation(a.ctx, "ict_services", "gross_output", "country")
		return ictOutputMsg{rows: rows, err: err}
	}
}

func (a *App) penetrationCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.client.Query(a.ctx, "internet_penetration", nil)
		return penetrationMsg{rows: rows, err: err}
	}
}

func (a *App) summaryCmd(dataset string) tea.Cmd {
	return func() tea.Msg {
		s, err := a.client.Summary(a.ctx, dataset)
		return summaryMsg{dataset: dataset, summary: s, err: err}
	}
}

func (a *App) profileCmd(dataset string) tea.Cmd {
	country := a.filters.ProfileCountry
	return func() tea.Msg {
		if country == "" {
			return profileMsg{dataset: dataset}
		}
		rows, err := a.client.Query(a.ctx, dataset, []string{country})
		return profileMsg{dataset: dataset, rows: rows, err: err}
	}
}

// comparisonCmd runs the three sector aggregations back to back.
// Individual failures contribute nothing and are swallowed here.
func (a *App) comparisonCmd() tea.Cmd {
	return func() tea.Msg {
		labels := make([]string, len(comparisonSectors))
		for i, s := range comparisonSectors {
			labels[i] = s.Label
		}
		cmp := view.NewComparison(labels...)
		for _, sector := range comparisonSectors {
			rows, err := a.client.Aggregation(a.ctx, sector.Dataset, "count", "country")
			if err != nil {
				continue
			}
			cmp.Add(sector.Label, rows)
		}
		return comparisonMsg{cmp: cmp}
	}
}

func (a *App) explorerCmd() tea.Cmd {
	dataset := datasets[a.filters.ExplorerDataset]
	countries := a.selectedCountries()
	return func() tea.Msg {
		rows, err := a.client.Query(a.ctx, dataset, countries)
		return explorerMsg{rows: rows, err: err}
	}
}

func (a *App) aiCmd(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.client.AIQuery(a.ctx, question)
		return aiAnswerMsg{answer: answer, err: err}
	}
}

func (a *App) downloadCmd(dataset string) tea.Cmd {
	dir := a.cfg.UI.DownloadDir
	return func() tea.Msg {
		data, err := a.client.Download(a.ctx, dataset)
		if err != nil {
			return downloadMsg{dataset: dataset, err: err}
		}
		path := filepath.Join(dir, dataset+".csv")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return downloadMsg{dataset: dataset, err: err}
		}
		return downloadMsg{dataset: dataset, path: path}
	}
}

// handleData applies fetch results. Every failure degrades only the
// widget it belongs to; nothing here aborts the render pass.
func (a *App) handleData(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case healthMsg:
		if m.err != nil {
			a.health = healthDown
		} else {
			a.health = healthOK
		}
	case optionsMsg:
		if m.err != nil {
			a.setOptions(view.DefaultCountries())
		} else {
			a.setOptions(view.CountriesOrDefault(m.rows))
		}
	case revenueMsg:
		a.revenue, a.revenueFailed = m.rows, m.err != nil
	case ictOutputMsg:
		a.ictOutput, a.ictFailed = m.rows, m.err != nil
	case penetrationMsg:
		a.penetration, a.penetrationFailed = m.rows, m.err != nil
	case summaryMsg:
		if m.err != nil {
			a.summaries[m.dataset] = view.FallbackSummary(m.dataset)
		} else {
			a.summaries[m.dataset] = view.ResolveSummary(m.dataset, m.summary)
		}
	case profileMsg:
		rows := m.rows
		if m.err != nil {
			rows = nil
		}
		if m.dataset == "halal_ecommerce" {
			a.profileEcommerce = rows
		} else {
			a.profileFintech = rows
		}
	case comparisonMsg:
		a.comparison = m.cmp
	case explorerMsg:
		a.explorerRows, a.explorerFailed = m.rows, m.err != nil
	case aiAnswerMsg:
		a.aiWaiting = false
		a.status = ""
		if m.err != nil {
			a.aiAnswer = nil
			a.aiError = aiErrorText(m.err)
		} else {
			answer := m.answer
			a.aiAnswer = &answer
			a.aiError = ""
		}
	case downloadMsg:
		switch {
		case m.err == nil:
			a.status = "saved " + m.path
		case isStatusFailure(m.err):
			a.status = "report not available for download"
		default:
			a.status = "error downloading report: " + m.err.Error()
		}
	}
	return a, nil
}

// aiErrorText surfaces the backend's raw response body for non-200
// answers, the transport error text otherwise.
func aiErrorText(err error) string {
	var cerr *api.CallError
	if errors.As(err, &cerr) && !cerr.Transport() && cerr.Body != "" {
		return cerr.Body
	}
	return err.Error()
}

func isStatusFailure(err error) bool {
	var cerr *api.CallError
	return errors.As(err, &cerr) && !cerr.Transport()
}
