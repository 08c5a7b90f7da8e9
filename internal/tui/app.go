// Package tui is the dashboard client: one Bubble Tea model that
// orchestrates backend calls and renders charts, tables and metrics.
// Every user interaction triggers a fresh fetch pass; each call's
// failure degrades only the widget that depends on it.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HassanOla1/economy/internal/api"
	"github.com/HassanOla1/economy/internal/config"
	"github.com/HassanOla1/economy/internal/view"
)

type viewID int

const (
	viewEcommerce viewID = iota
	viewICTFintech
	viewAIInsights
	viewExplorer
	viewCount
)

var viewTitles = [viewCount]string{"Halal E-commerce", "ICT & Fintech", "AI Insights", "Data Explorer"}

const (
	minYear     = 2015
	maxYear     = 2025
	defaultYear = 2020
)

// datasets selectable in the explorer and the report download picker.
var datasets = []string{"halal_ecommerce", "ict_services", "internet_penetration", "islamic_fintech"}

// sectorPair binds a display label to its aggregation endpoint for the
// cross-sector comparison.
type sectorPair struct {
	Label   string
	Dataset string
}

var comparisonSectors = []sectorPair{
	{"Halal E-commerce", "halal_ecommerce"},
	{"Islamic Fintech", "islamic_fintech"},
	{"ICT Services", "ict_services"},
}

var summaryDatasets = []string{"halal_ecommerce", "islamic_fintech", "ict_services", "household_ict"}

var metricLabels = map[string]string{
	"halal_ecommerce": "Total Halal Revenue",
	"islamic_fintech": "Total Fintech Transactions",
	"ict_services":    "Total ICT Output",
	"household_ict":   "Average Internet Usage",
}

type healthState int

const (
	healthUnknown healthState = iota
	healthOK
	healthDown
)

// Filters is the explicit widget-selection state that seeds every
// fetch pass. Nothing else survives a refresh.
type Filters struct {
	Countries       map[string]bool
	Year            int
	ProfileCountry  string
	ExplorerDataset int
	ReportDataset   int
}

type pickerState struct {
	open    bool
	query   string
	cursor  int
	pending map[string]bool
}

// App ties together the four views, the shared sections below them,
// and the filter state.
type App struct {
	ctx    context.Context
	client *api.Client
	cfg    config.Config

	width  int
	height int
	ready  bool

	view    viewID
	filters Filters
	options []string

	health healthState

	revenue           []api.AggRow
	revenueFailed     bool
	ictOutput         []api.AggRow
	ictFailed         bool
	penetration       []api.Row
	penetrationFailed bool
	summaries         map[string]view.Summary
	profileEcommerce  []api.Row
	profileFintech    []api.Row
	comparison        *view.Comparison
	explorerRows      []api.Row
	explorerFailed    bool

	aiInput   textinput.Model
	aiAnswer  *api.AIAnswer
	aiError   string
	aiWaiting bool

	picker pickerState
	status string
	keys   keyMap
}

func New(ctx context.Context, cfg config.Config, client *api.Client) *App {
	input := textinput.New()
	input.Placeholder = "Ask a question about the data"
	input.CharLimit = 280
	input.Width = 60

	summaries := make(map[string]view.Summary, len(summaryDatasets))
	for _, ds := range summaryDatasets {
		summaries[ds] = view.FallbackSummary(ds)
	}

	return &App{
		ctx:    ctx,
		client: client,
		cfg:    cfg,
		filters: Filters{
			Countries: make(map[string]bool),
			Year:      defaultYear,
		},
		options:   view.DefaultCountries(),
		summaries: summaries,
		aiInput:   input,
		keys:      newKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.refreshAll()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.ready = true
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a.handleData(msg)
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.picker.open {
		return a.handlePickerKey(m)
	}
	if a.view == viewAIInsights && a.aiInput.Focused() {
		return a.handleAIKey(m)
	}

	switch m.String() {
	case "q":
		return a, tea.Quit
	case "tab":
		a.setView((a.view + 1) % viewCount)
		return a, a.refreshAll()
	case "shift+tab":
		a.setView((a.view + viewCount - 1) % viewCount)
		return a, a.refreshAll()
	case "1", "2", "3", "4":
		a.setView(viewID(m.String()[0] - '1'))
		return a, a.refreshAll()
	case "r":
		a.status = "refreshing..."
		return a, a.refreshAll()
	case "c":
		a.openPicker()
		return a, nil
	case "y":
		if a.filters.Year > minYear {
			a.filters.Year--
			return a, a.refreshAll()
		}
	case "Y":
		if a.filters.Year < maxYear {
			a.filters.Year++
			return a, a.refreshAll()
		}
	case "p":
		a.cycleProfileCountry()
		return a, a.refreshAll()
	case "e":
		if a.view == viewExplorer {
			a.filters.ExplorerDataset = (a.filters.ExplorerDataset + 1) % len(datasets)
			return a, a.refreshAll()
		}
	case "[":
		a.filters.ReportDataset = (a.filters.ReportDataset + len(datasets) - 1) % len(datasets)
		return a, nil
	case "]":
		a.filters.ReportDataset = (a.filters.ReportDataset + 1) % len(datasets)
		return a, nil
	case "D":
		a.status = "downloading " + datasets[a.filters.ReportDataset] + "..."
		return a, a.downloadCmd(datasets[a.filters.ReportDataset])
	}
	return a, nil
}

func (a *App) handleAIKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab":
		a.setView((a.view + 1) % viewCount)
		return a, a.refreshAll()
	case "shift+tab":
		a.setView((a.view + viewCount - 1) % viewCount)
		return a, a.refreshAll()
	case "esc":
		a.aiInput.Blur()
		return a, nil
	case "enter":
		return a, a.submitAI()
	}
	var cmd tea.Cmd
	a.aiInput, cmd = a.aiInput.Update(m)
	return a, cmd
}

// submitAI issues the AI query only for a non-empty, trimmed question.
func (a *App) submitAI() tea.Cmd {
	question := strings.TrimSpace(a.aiInput.Value())
	if question == "" {
		a.status = "enter a question first"
		return nil
	}
	a.aiWaiting = true
	a.aiError = ""
	a.status = "asking..."
	return a.aiCmd(question)
}

func (a *App) setView(v viewID) {
	a.view = v
	a.status = ""
	if v == viewAIInsights {
		a.aiInput.Focus()
	} else {
		a.aiInput.Blur()
	}
}

func (a *App) cycleProfileCountry() {
	if len(a.options) == 0 {
		return
	}
	idx := 0
	for i, c := range a.options {
		if c == a.filters.ProfileCountry {
			idx = (i + 1) % len(a.options)
			break
		}
	}
	a.filters.ProfileCountry = a.options[idx]
}

// selectedCountries flattens the selection set in option order.
func (a *App) selectedCountries() []string {
	out := make([]string, 0, len(a.options))
	for _, c := range a.options {
		if a.filters.Countries[c] {
			out = append(out, c)
		}
	}
	return out
}

// setOptions installs a fresh country list, reconciling the previous
// selections: unknown countries drop out, an empty result selects all.
func (a *App) setOptions(options []string) {
	a.options = options
	kept := make(map[string]bool, len(options))
	for _, c := range options {
		if a.filters.Countries[c] {
			kept[c] = true
		}
	}
	if len(kept) == 0 {
		for _, c := range options {
			kept[c] = true
		}
	}
	a.filters.Countries = kept

	found := false
	for _, c := range options {
		if c == a.filters.ProfileCountry {
			found = true
			break
		}
	}
	if !found && len(options) > 0 {
		a.filters.ProfileCountry = options[0]
	}
}

// --- country picker modal ---

func (a *App) openPicker() {
	pending := make(map[string]bool, len(a.filters.Countries))
	for c, on := range a.filters.Countries {
		pending[c] = on
	}
	a.picker = pickerState{open: true, pending: pending}
}

func (a *App) pickerOptions() []string {
	return view.RankCountries(a.options, a.picker.query)
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := a.pickerOptions()
	switch m.String() {
	case "esc":
		a.picker = pickerState{}
		return a, nil
	case "enter":
		a.filters.Countries = a.picker.pending
		a.picker = pickerState{}
		return a, a.refreshAll()
	case "up":
		if a.picker.cursor > 0 {
			a.picker.cursor--
		}
		return a, nil
	case "down":
		if a.picker.cursor < len(options)-1 {
			a.picker.cursor++
		}
		return a, nil
	case " ":
		if a.picker.cursor < len(options) {
			name := options[a.picker.cursor]
			a.picker.pending[name] = !a.picker.pending[name]
		}
		return a, nil
	case "backspace":
		if len(a.picker.query) > 0 {
			a.picker.query = a.picker.query[:len(a.picker.query)-1]
			a.picker.cursor = 0
		}
		return a, nil
	}
	if m.Type == tea.KeyRunes {
		a.picker.query += string(m.Runes)
		a.picker.cursor = 0
	}
	return a, nil
}

// --- key bindings ---

type keyMap struct {
	NextView key.Binding
	Refresh  key.Binding
	Pick     key.Binding
	Year     key.Binding
	Profile  key.Binding
	Report   key.Binding
	Download key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Pick:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "countries")),
		Year:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y/Y", "year -/+")),
		Profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile country")),
		Report:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "report")),
		Download: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "download CSV")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Refresh, k.Pick, k.Year, k.Profile, k.Report, k.Download, k.Quit}
}
