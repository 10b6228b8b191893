package app

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"gomgca/domain/mgca"
)

// RenderReport renders a batch run as a markdown document: the run manifest
// and one row per site with ensemble mean and the default percentiles.
func RenderReport(run *RunResult) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Mg/Ca prediction run %s\n\n", run.Manifest.RunID)
	fmt.Fprintf(&b, "- Species: `%s`\n", run.Manifest.Species)
	fmt.Fprintf(&b, "- Seed: %d\n", run.Manifest.Seed)
	fmt.Fprintf(&b, "- Sites: %d (%d predicted, %d skipped)\n", run.Manifest.Sites, run.Manifest.Predicted, run.Manifest.Skipped)
	fmt.Fprintf(&b, "- Created: %s\n\n", run.Manifest.CreatedAt.Time().Format("2006-01-02 15:04:05 MST"))

	b.WriteString("| Site | Age (Ma) | Mean Mg/Ca | ")
	for _, q := range mgca.DefaultPercentiles {
		fmt.Fprintf(&b, "P%g | ", q)
	}
	b.WriteString("Status |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")

	for _, site := range run.Sites {
		if site.Status != SiteOK {
			fmt.Fprintf(&b, "| %s | %.2f | — | — | — | — | %s (%s) |\n",
				site.Site.Name, site.Site.Age, site.Status, site.Reason)
			continue
		}
		mean, err := stats.Mean(stats.Float64Data(site.Prediction.Row(0)))
		if err != nil {
			return "", fmt.Errorf("site %s: %w", site.Site.Name, err)
		}
		fmt.Fprintf(&b, "| %s | %.2f | %.3f |", site.Site.Name, site.Site.Age, mean)
		for _, v := range site.Percentiles[0] {
			fmt.Fprintf(&b, " %.3f |", v)
		}
		b.WriteString(" ok |\n")
	}

	return b.String(), nil
}

// RenderReportHTML renders the run report as a standalone HTML fragment.
func RenderReportHTML(run *RunResult) ([]byte, error) {
	md, err := RenderReport(run)
	if err != nil {
		return nil, err
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer), nil
}
