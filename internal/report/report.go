package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rogerio-castellano/catalog-validator/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultTitle names the Fake Store API catalog in the report header.
const DefaultTitle = "Fake Store API"

const timestampLayout = "2006-01-02 15:04:05"

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Reporter renders a finished run.
type Reporter struct {
	Title   string
	Format  Format
	Summary bool             // append a per-rule table to text output
	Now     func() time.Time // defaults to time.Now
}

func New(title string, format Format) *Reporter {
	return &Reporter{Title: title, Format: format}
}

func (r *Reporter) Render(w io.Writer, result *models.RunResult) error {
	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.document(result)); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.document(result)); err != nil {
			return fmt.Errorf("failed to write YAML report: %w", err)
		}
		return enc.Close()
	default:
		return r.renderText(w, result)
	}
}

func (r *Reporter) renderText(w io.Writer, result *models.RunResult) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n=== %s Test Results ===\n", r.title())
	fmt.Fprintf(&sb, "Timestamp: %s\n", r.now().Format(timestampLayout))
	fmt.Fprintf(&sb, "Total products tested: %d\n", result.TotalProducts)

	if result.Passed() {
		sb.WriteString("\n✅ All products passed validation!\n")
	} else {
		fmt.Fprintf(&sb, "\n❌ Found %d validation errors:\n", len(result.Violations))
		for _, group := range result.Grouped() {
			fmt.Fprintf(&sb, "\nProduct ID: %s\n", group.ProductID)
			for _, v := range group.Violations {
				fmt.Fprintf(&sb, "  - %s: %s\n", v.Type, v.Details)
			}
		}
	}

	if r.Summary {
		sb.WriteString("\n")
		sb.WriteString(summaryTable(result))
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

var ruleOrder = []models.ErrorType{
	models.EmptyTitle,
	models.InvalidPrice,
	models.InvalidRatingStructure,
	models.InvalidRating,
}

func summaryTable(result *models.RunResult) string {
	counts := result.CountByType()

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Rule", "Violations"})
	for _, t := range ruleOrder {
		tw.AppendRow(table.Row{t.String(), counts[t]})
	}
	tw.AppendFooter(table.Row{"Total", len(result.Violations)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}

func (r *Reporter) title() string {
	if r.Title == "" {
		return DefaultTitle
	}
	return r.Title
}

func (r *Reporter) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
