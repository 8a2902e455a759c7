package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-knapsack/api/v1alpha1"
	"github.com/llm-d/llm-d-knapsack/pkg/config"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	noteStyle  = lipgloss.NewStyle().Italic(true)
)

var tableHeaders = []string{"STRATEGY", "VALUE", "COST", "SELECTED", "GAP", "EVALUATIONS", "DURATION"}

// Render writes report to w in the given format.
func Render(w io.Writer, report *v1alpha1.SolveReport, format string) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	switch format {
	case config.FormatTable, "":
		return renderTable(w, report)
	case config.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

func renderTable(w io.Writer, report *v1alpha1.SolveReport) error {
	var b strings.Builder
	for i := range report.Scenarios {
		if i > 0 {
			b.WriteString("\n")
		}
		writeScenario(&b, &report.Scenarios[i])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeScenario(b *strings.Builder, sc *v1alpha1.ScenarioReport) {
	title := fmt.Sprintf("%s (capacity %d)", sc.Name, sc.Capacity)
	if sc.Description != "" {
		title += ": " + sc.Description
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tableHeaders...).
		Rows(Rows(sc)...)
	b.WriteString(t.String())
	b.WriteString("\n")

	for _, res := range sc.Suboptimal() {
		b.WriteString(noteStyle.Render(fmt.Sprintf("%s reached %d, %d below the optimum %d",
			res.Strategy, res.Value, ptr.Deref(res.Gap, 0), ptr.Deref(sc.Optimum, 0))))
		b.WriteString("\n")
	}
}

// Rows returns the table cells for every strategy result of sc.
func Rows(sc *v1alpha1.ScenarioReport) [][]string {
	rows := make([][]string, 0, len(sc.Results))
	for _, res := range sc.Results {
		if !res.Succeeded() {
			rows = append(rows, []string{res.Strategy, "error: " + res.Error, "-", "-", "-", "-", "-"})
			continue
		}
		gap := "-"
		if res.Gap != nil {
			gap = strconv.Itoa(*res.Gap)
		}
		selected := strings.Join(res.SelectedNames, ", ")
		if selected == "" {
			selected = "none"
		}
		rows = append(rows, []string{
			res.Strategy,
			strconv.Itoa(res.Value),
			strconv.Itoa(res.Cost),
			selected,
			gap,
			strconv.Itoa(res.Evaluations),
			res.Duration.Duration.String(),
		})
	}
	return rows
}
