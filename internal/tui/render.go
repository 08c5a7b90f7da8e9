package tui

import (
	"fmt"
	"strings"

	"github.com/HassanOla1/economy/internal/api"
	"github.com/HassanOla1/economy/internal/view"
	"github.com/HassanOla1/economy/widgets"
)

func (a *App) View() string {
	if !a.ready {
		return "loading..."
	}
	width := a.width
	if width <= 0 {
		width = 80
	}

	sections := []string{
		a.renderHeader(),
		a.renderTabs(),
		a.renderFilterLine(),
		a.renderActiveView(width),
		a.renderMetrics(width),
		a.renderProfile(width),
		a.renderComparison(width),
		a.renderFooter(),
	}
	body := strings.Join(sections, "\n\n")
	if a.picker.open {
		body += "\n\n" + a.renderPicker()
	}
	return body
}

func (a *App) renderHeader() string {
	title := titleStyle.Render("Islamic Digital Economy Dashboard")
	subtitle := mutedStyle.Render("Halal e-commerce, fintech and digital economy trends across Muslim-majority countries")
	return title + "\n" + subtitle
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(viewTitles))
	for i, name := range viewTitles {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewID(i) == a.view {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) renderFilterLine() string {
	selected := a.selectedCountries()
	countries := fmt.Sprintf("%d/%d countries", len(selected), len(a.options))
	health := statusWarnStyle.Render("● backend: unknown")
	switch a.health {
	case healthOK:
		health = statusOKStyle.Render("● backend: up")
	case healthDown:
		health = statusErrStyle.Render("● backend: down")
	}
	return mutedStyle.Render(fmt.Sprintf("Filters: %s · year %d · profile %s", countries, a.filters.Year, a.filters.ProfileCountry)) + "  " + health
}

func (a *App) renderActiveView(width int) string {
	switch a.view {
	case viewICTFintech:
		return a.renderICTFintech(width)
	case viewAIInsights:
		return a.renderAIInsights(width)
	case viewExplorer:
		return a.renderExplorer(width)
	default:
		return a.renderEcommerce(width)
	}
}

func (a *App) renderEcommerce(width int) string {
	header := headerStyle.Render("Halal E-commerce Growth")
	if a.revenueFailed || len(a.revenue) == 0 {
		return header + "\n" + mutedStyle.Render("(no revenue data)")
	}
	chart := widgets.BarChart{
		Title:  "Total Revenue by Country",
		Data:   aggPoints(a.revenue),
		Format: currencyLabel,
	}
	return header + "\n" + chart.Render(width)
}

func (a *App) renderICTFintech(width int) string {
	colW := widgets.ColumnWidth(width, 2, 2)

	left := headerStyle.Render("ICT Services Output") + "\n"
	if a.ictFailed || len(a.ictOutput) == 0 {
		left += mutedStyle.Render("(no data)")
	} else {
		left += widgets.AreaChart{
			Title:  "Gross Output by Country",
			Data:   aggPoints(a.ictOutput),
			Format: currencyLabel,
		}.Render(colW)
	}

	right := headerStyle.Render("Internet Penetration Rate") + "\n"
	points := penetrationPoints(a.penetration)
	if a.penetrationFailed || len(points) == 0 {
		right += mutedStyle.Render("(no data)")
	} else {
		right += widgets.BarChart{
			Data:     points,
			MaxValue: 100,
			Format:   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		}.Render(colW)
	}

	return widgets.Columns(width, 2, left, right)
}

func (a *App) renderAIInsights(width int) string {
	out := headerStyle.Render("AI-Powered Analysis") + "\n"
	out += a.aiInput.View() + "\n"
	out += mutedStyle.Render("[enter] ask  [esc] leave input")
	switch {
	case a.aiWaiting:
		out += "\n" + mutedStyle.Render("waiting for analysis...")
	case a.aiError != "":
		out += "\n" + statusErrStyle.Render("AI query failed: "+a.aiError)
	case a.aiAnswer != nil:
		answer := a.aiAnswer.Answer
		if answer == "" {
			answer = "No answer returned."
		}
		out += "\n\n" + headerStyle.Render("AI Analysis") + "\n" + answer
		if len(a.aiAnswer.Result) > 0 {
			out += "\n\n" + headerStyle.Render("Query Results") + "\n" + a.rowsTable(a.aiAnswer.Result, width)
		}
	}
	return out
}

func (a *App) renderExplorer(width int) string {
	dataset := datasets[a.filters.ExplorerDataset]
	out := headerStyle.Render("Explore Raw Data") + "\n"
	out += mutedStyle.Render("dataset: "+dataset+"  [e] next dataset  [c] countries") + "\n"
	if a.explorerFailed {
		return out + statusWarnStyle.Render("No data available for this selection.")
	}
	if len(a.explorerRows) == 0 {
		return out + mutedStyle.Render("(no rows)")
	}
	return out + a.rowsTable(a.explorerRows, width)
}

func (a *App) renderMetrics(width int) string {
	header := headerStyle.Render("Key Metrics")
	colW := widgets.ColumnWidth(width, 2, len(summaryDatasets))
	cards := make([]string, 0, len(summaryDatasets))
	for _, ds := range summaryDatasets {
		s := a.summaries[ds]
		value := view.CurrencyMetric(s.Count)
		if ds == "household_ict" {
			value = view.PercentMetric(s.AvgGrowthRate)
		}
		cards = append(cards, widgets.MetricCard{Label: metricLabels[ds], Value: value}.Render(colW))
	}
	return header + "\n" + widgets.Columns(width, 2, cards...)
}

func (a *App) renderProfile(width int) string {
	country := a.filters.ProfileCountry
	if country == "" {
		return ""
	}
	header := headerStyle.Render("Country Profile: " + country)
	colW := widgets.ColumnWidth(width, 2, 2)

	left := titleStyle.Render(country+" - Halal E-commerce") + "\n" + a.profileTable(a.profileEcommerce, colW)
	right := titleStyle.Render(country+" - Fintech") + "\n" + a.profileTable(a.profileFintech, colW)
	return header + "\n" + widgets.Columns(width, 2, left, right)
}

func (a *App) profileTable(rows []api.Row, width int) string {
	if len(rows) == 0 {
		return mutedStyle.Render("(no rows)")
	}
	headers, cells := view.TableFromRows(rows)
	return widgets.Table{Headers: headers, Rows: cells, MaxRows: a.maxTableRows()}.Render(width)
}

func (a *App) renderComparison(width int) string {
	header := headerStyle.Render("Country-wise Total Comparison Across Sectors")
	if a.comparison == nil || a.comparison.Empty() {
		return header + "\n" + mutedStyle.Render("(no comparison data)")
	}
	chart := widgets.GroupedBarChart{
		Title:  "Total Digital Economy Metrics by Country and Sector",
		Groups: a.comparison.Countries(),
		Series: a.comparison.Sectors(),
		Values: a.comparison.Grid(),
		Format: currencyLabel,
	}
	return header + "\n" + chart.Render(width)
}

func (a *App) renderFooter() string {
	report := mutedStyle.Render("report: ") + keyStyle.Render(datasets[a.filters.ReportDataset])
	parts := []string{report}
	for _, b := range a.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	out := strings.Join(parts, "  ")
	if a.status != "" {
		out = statusLine(a.status) + "\n" + out
	}
	return out
}

func statusLine(status string) string {
	if strings.HasPrefix(status, "error") {
		return statusErrStyle.Render(status)
	}
	return statusOKStyle.Render(status)
}

func (a *App) renderPicker() string {
	var b strings.Builder
	b.WriteString("filter: " + a.picker.query + "\n")
	for i, name := range a.pickerOptions() {
		marker := " "
		if i == a.picker.cursor {
			marker = "▶"
		}
		check := "[ ]"
		if a.picker.pending[name] {
			check = "[x]"
		}
		fmt.Fprintf(&b, "%s %s %s\n", marker, check, name)
	}
	b.WriteString(mutedStyle.Render("[space] toggle  [enter] apply  [esc] cancel"))

	w := a.width
	if w > 48 {
		w = 48
	}
	return widgets.Box{Title: "Select Countries", Content: b.String()}.Render(w)
}

func (a *App) rowsTable(rows []api.Row, width int) string {
	headers, cells := view.TableFromRows(rows)
	return widgets.Table{Headers: headers, Rows: cells, MaxRows: a.maxTableRows()}.Render(width)
}

func (a *App) maxTableRows() int {
	if a.cfg.UI.MaxTableRows > 0 {
		return a.cfg.UI.MaxTableRows
	}
	return 12
}

func aggPoints(rows []api.AggRow) []widgets.BarPoint {
	points := make([]widgets.BarPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, widgets.BarPoint{Label: r.Country, Value: r.Total})
	}
	return points
}

// penetrationPoints converts raw penetration rows, tolerating both
// "45.2%" strings and bare numbers. Rows missing either field are
// dropped rather than failing the chart.
func penetrationPoints(rows []api.Row) []widgets.BarPoint {
	points := make([]widgets.BarPoint, 0, len(rows))
	for _, row := range rows {
		country, ok := row["country"].(string)
		if !ok || country == "" {
			continue
		}
		value, ok := view.PercentValue(row["internet_penetration"])
		if !ok {
			continue
		}
		points = append(points, widgets.BarPoint{Label: country, Value: value})
	}
	return points
}

func currencyLabel(v float64) string {
	return "$" + view.GroupThousands(v)
}
