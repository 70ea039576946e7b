package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/usecase"
)

var (
	headingColor  = color.New(color.FgCyan, color.Bold)
	okColor       = color.New(color.FgGreen)
	advisoryColor = color.New(color.FgYellow)
)

func severityColor(s types.Severity) *color.Color {
	switch s {
	case types.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case types.SeverityHigh:
		return color.New(color.FgRed)
	case types.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func printHeading(w io.Writer, title string) {
	_, _ = headingColor.Fprintf(w, "\n%s\n", title)
}

func printSteps(w io.Writer, steps []usecase.WalkthroughStep) {
	printHeading(w, "Walkthrough")
	for _, step := range steps {
		if step.Notice.Code != model.NoticeOK {
			_, _ = advisoryColor.Fprintf(w, "  ! %s: %s\n", step.Name, step.Notice.Message)
			continue
		}
		_, _ = okColor.Fprintf(w, "  ✓ %s\n", step.Name)
	}
}

func printRegister(w io.Writer, title string, rows []*model.RegisterRow) {
	printHeading(w, title)
	if len(rows) == 0 {
		_, _ = advisoryColor.Fprintln(w, "  register is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "MODEL\tRISK TYPE\tL\tM\tCOMPOSITE\tCONTROL\tRESPONSE")
	for _, row := range rows {
		composite := "-"
		if row.CompositeRiskScore != nil {
			c := *row.CompositeRiskScore
			composite = severityColor(types.SeverityOf(c)).Sprint(strconv.Itoa(c))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ModelName,
			orDash(row.RiskType),
			scoreText(row.LikelihoodScore),
			scoreText(row.MagnitudeScore),
			composite,
			orDash(row.ControlDescription),
			responseText(row.RiskResponse),
		)
	}
	_ = tw.Flush()
}

func printCategories(w io.Writer, counts []*model.CategoryCount) {
	printHeading(w, "Risks per category")
	if len(counts) == 0 {
		_, _ = advisoryColor.Fprintln(w, "  no categorized risks")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	for _, c := range counts {
		_, _ = fmt.Fprintf(tw, "  %s\t%d\n", c.Category, c.Count)
	}
	_ = tw.Flush()
}

func printTaxonomy(w io.Writer, entry *model.WorkspaceEntry) {
	printHeading(w, fmt.Sprintf("%s (%s)", entry.Workspace.Name, entry.Workspace.ID))
	for _, cat := range entry.Taxonomy.Categories() {
		_, _ = okColor.Fprintf(w, "  %s\n", cat.Name)
		for _, label := range cat.Labels {
			_, _ = fmt.Fprintf(w, "    - %s\n", label)
		}
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func scoreText(s *types.Score) string {
	if s == nil {
		return "-"
	}
	return strconv.Itoa(s.Int())
}

func responseText(r *types.RiskResponse) string {
	if r == nil {
		return "-"
	}
	return r.String()
}
