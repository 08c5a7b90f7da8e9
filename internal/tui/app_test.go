package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/HassanOla1/economy/internal/api"
	"github.com/HassanOla1/economy/internal/config"
	"github.com/HassanOla1/economy/internal/view"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func f64(v float64) *float64 { return &v }

func newTestApp(t *testing.T, handler http.Handler) (*App, *httptest.Server) {
	t.Helper()
	if handler == nil {
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.Config{}
	cfg.UI.DownloadDir = t.TempDir()
	return New(context.Background(), cfg, api.New(srv.URL, api.Options{})), srv
}

func TestBlankAIQuestionIssuesNoRequest(t *testing.T) {
	var hits atomic.Int64
	a, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	a.setView(viewAIInsights)

	for _, input := range []string{"", "   ", "\t \n"} {
		a.aiInput.SetValue(input)
		_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.Nil(t, cmd, "input %q should not produce a command", input)
	}
	require.Zero(t, hits.Load())
	require.Equal(t, "enter a question first", a.status)
}

func TestNonEmptyAIQuestionHitsBackendOnce(t *testing.T) {
	var hits atomic.Int64
	a, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai_query", r.URL.Path)
		hits.Add(1)
		_, _ = w.Write([]byte(`{"answer":"growth is strongest in Malaysia"}`))
	}))
	a.setView(viewAIInsights)
	a.aiInput.SetValue("  which market grows fastest?  ")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, a.aiWaiting)

	msg := cmd()
	require.Equal(t, int64(1), hits.Load())

	_, _ = a.Update(msg)
	require.False(t, a.aiWaiting)
	require.NotNil(t, a.aiAnswer)
	require.Equal(t, "growth is strongest in Malaysia", a.aiAnswer.Answer)
}

func TestAIErrorShowsRawBody(t *testing.T) {
	a, _ := newTestApp(t, nil)
	_, _ = a.Update(aiAnswerMsg{err: &api.CallError{Op: "ai_query", Status: 502, Body: "model unavailable"}})
	require.Equal(t, "model unavailable", a.aiError)
	require.Nil(t, a.aiAnswer)
}

func TestFailedOptionsFallBackToDefaults(t *testing.T) {
	a, _ := newTestApp(t, nil)
	_, _ = a.Update(optionsMsg{err: &api.CallError{Op: "query halal_ecommerce", Status: 500}})
	require.Equal(t, []string{"Malaysia", "Indonesia", "Saudi Arabia"}, a.options)
	require.Equal(t, []string{"Malaysia", "Indonesia", "Saudi Arabia"}, a.selectedCountries())
}

func TestOptionsReconcileExistingSelection(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.setOptions([]string{"Indonesia", "Malaysia", "Turkey"})
	a.filters.Countries = map[string]bool{"Malaysia": true, "Turkey": true}

	a.setOptions([]string{"Indonesia", "Malaysia", "Pakistan"})
	require.Equal(t, []string{"Malaysia"}, a.selectedCountries())
}

func TestSummaryFailureUsesDocumentedDefault(t *testing.T) {
	a, _ := newTestApp(t, nil)
	_, _ = a.Update(summaryMsg{dataset: "household_ict", err: &api.CallError{Status: 503}})
	require.Equal(t, view.FallbackSummary("household_ict"), a.summaries["household_ict"])

	_, _ = a.Update(summaryMsg{dataset: "halal_ecommerce", err: &api.CallError{Status: 503}})
	require.Zero(t, a.summaries["halal_ecommerce"].Count)
}

func TestSummaryMissingRateStillShowsDefault(t *testing.T) {
	a, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/summary/household_ict", r.URL.Path)
		_, _ = w.Write([]byte(`{"count": 9}`))
	}))
	a.ready, a.width = true, 120

	_, _ = a.Update(a.summaryCmd("household_ict")())
	require.InDelta(t, 75.4, a.summaries["household_ict"].AvgGrowthRate, 0.0001)

	out := a.View()
	require.Contains(t, out, "75.4%")
	require.NotContains(t, out, "0.0%")
}

func TestDownloadStatusMessages(t *testing.T) {
	a, _ := newTestApp(t, nil)

	_, _ = a.Update(downloadMsg{dataset: "ict_services", path: "/tmp/ict_services.csv"})
	require.Equal(t, "saved /tmp/ict_services.csv", a.status)

	_, _ = a.Update(downloadMsg{dataset: "ict_services", err: &api.CallError{Status: 404, Body: "no report"}})
	require.Equal(t, "report not available for download", a.status)

	_, _ = a.Update(downloadMsg{dataset: "ict_services", err: &api.CallError{Err: context.DeadlineExceeded}})
	require.Contains(t, a.status, "error downloading report")
	require.Contains(t, a.status, "deadline")
}

func TestDownloadWritesCSVFile(t *testing.T) {
	csv := "country,count\nMalaysia,2\n"
	a, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/download/halal_ecommerce", r.URL.Path)
		_, _ = w.Write([]byte(csv))
	}))

	msg := a.downloadCmd("halal_ecommerce")()
	done, ok := msg.(downloadMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	require.Contains(t, done.path, "halal_ecommerce.csv")
}

func TestNumberKeysSwitchViews(t *testing.T) {
	a, _ := newTestApp(t, nil)
	require.Equal(t, viewEcommerce, a.view)

	_, cmd := a.Update(keyMsg("2"))
	require.Equal(t, viewICTFintech, a.view)
	require.NotNil(t, cmd, "view switch must trigger a refresh pass")

	_, _ = a.Update(keyMsg("4"))
	require.Equal(t, viewExplorer, a.view)
}

func TestTabCyclesViewsAndFocusesAIInput(t *testing.T) {
	a, _ := newTestApp(t, nil)
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewICTFintech, a.view)
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewAIInsights, a.view)
	require.True(t, a.aiInput.Focused())
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewExplorer, a.view)
	require.False(t, a.aiInput.Focused())
}

func TestYearStaysWithinRange(t *testing.T) {
	a, _ := newTestApp(t, nil)
	require.Equal(t, defaultYear, a.filters.Year)

	for i := 0; i < 20; i++ {
		_, _ = a.Update(keyMsg("y"))
	}
	require.Equal(t, minYear, a.filters.Year)

	for i := 0; i < 20; i++ {
		_, _ = a.Update(keyMsg("Y"))
	}
	require.Equal(t, maxYear, a.filters.Year)
}

func TestPickerFilterAndApply(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.setOptions([]string{"Indonesia", "Malaysia", "Saudi Arabia"})

	_, _ = a.Update(keyMsg("c"))
	require.True(t, a.picker.open)

	_, _ = a.Update(keyMsg("mala"))
	require.Equal(t, "mala", a.picker.query)
	require.Equal(t, "Malaysia", a.pickerOptions()[0])

	// deselect the highlighted country, then apply
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeySpace})
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.picker.open)
	require.NotNil(t, cmd)
	require.Equal(t, []string{"Indonesia", "Saudi Arabia"}, a.selectedCountries())
}

func TestPickerEscCancels(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.setOptions([]string{"Indonesia", "Malaysia"})

	_, _ = a.Update(keyMsg("c"))
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeySpace})
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, a.picker.open)
	require.Nil(t, cmd)
	require.Equal(t, []string{"Indonesia", "Malaysia"}, a.selectedCountries())
}

func TestHealthIsAdvisoryOnly(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.ready, a.width = true, 100

	_, _ = a.Update(healthMsg{err: &api.CallError{Op: "health", Err: context.DeadlineExceeded}})
	require.Equal(t, healthDown, a.health)

	// a down backend still renders the full dashboard
	out := a.View()
	require.Contains(t, out, "Islamic Digital Economy Dashboard")
	require.Contains(t, out, "Key Metrics")
	require.Contains(t, out, "backend: down")
}

func TestViewRendersMetricFallbacks(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.ready, a.width = true, 120

	_, _ = a.Update(summaryMsg{dataset: "halal_ecommerce", summary: api.Summary{Count: f64(3)}})
	out := a.View()
	require.Contains(t, out, "$3,000,000 USD")
	require.Contains(t, out, "75.4%") // household_ict default before any fetch
}

func TestExplorerFailureIsWarningNotError(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.ready, a.width = true, 120
	a.setView(viewExplorer)

	_, _ = a.Update(explorerMsg{err: &api.CallError{Status: 500}})
	out := a.View()
	require.Contains(t, out, "No data available for this selection.")
}

func TestComparisonRenderZeroFills(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.ready, a.width = true, 120

	cmp := view.NewComparison("Halal E-commerce", "Islamic Fintech", "ICT Services")
	cmp.Add("Halal E-commerce", []api.AggRow{{Country: "Malaysia", Total: 2}})
	_, _ = a.Update(comparisonMsg{cmp: cmp})

	out := a.View()
	require.Contains(t, out, "Malaysia")
	require.Contains(t, out, "$2,000,000")
	require.Contains(t, out, "ICT Services") // zero-filled sector still listed
}
