package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/projects/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders the summary view as a table inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	cols := []Column{
		{Title: "ID", Right: true},
		{Title: "NAME"},
		{Title: "EST", Right: true},
		{Title: "ACTUAL", Right: true},
		{Title: "DIFFICULTY"},
	}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		rows = append(rows, []string{
			Dim(strconv.FormatInt(p.ID, 10)),
			Bold(p.Name),
			FormatHours(p.EstimatedHours),
			FormatHours(p.ActualHours),
			DifficultyPill(p.Difficulty),
		})
	}

	return RenderBox("Projects", RenderTable(cols, rows))
}

// FormatProjectDetail renders one project with its materials, steps and
// categories.
func FormatProjectDetail(p *domain.Project) string {
	sections := []string{
		buildMetadataPanel(p),
		buildMaterialsSection(p),
		buildStepsSection(p.Steps),
		buildCategoriesSection(p.Categories),
	}
	return RenderBox("", lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func buildMetadataPanel(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "  " + Dim(fmt.Sprintf("#%d", p.ID)) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ESTIMATED "), StyleFg.Render(FormatHours(p.EstimatedHours))))
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", StyleDim.Render("ACTUAL    "),
		StyleFg.Render(FormatHours(p.ActualHours)), HoursVariance(p.EstimatedHours, p.ActualHours)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DIFFICULTY"), DifficultyPill(p.Difficulty)))

	if notes := domain.StrFromPtr(p.Notes); notes != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("NOTES     "), StyleFg.Render(notes)))
	}

	return b.String()
}

func buildMaterialsSection(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(Header("Materials") + "\n")

	if len(p.Materials) == 0 {
		b.WriteString(Dim("No materials") + "\n")
		return b.String()
	}

	cols := []Column{
		{Title: "NAME"},
		{Title: "QTY", Right: true},
		{Title: "COST", Right: true},
	}
	rows := make([][]string, 0, len(p.Materials))
	for _, m := range p.Materials {
		rows = append(rows, []string{m.Name, FormatCount(m.NumRequired), FormatCost(m.Cost)})
	}
	b.WriteString(RenderTable(cols, rows))

	total := p.TotalMaterialCost()
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Total"), StyleBold.Render(FormatCost(&total))))
	return b.String()
}

func buildStepsSection(steps []domain.Step) string {
	var b strings.Builder
	b.WriteString("\n" + Header("Steps") + "\n")

	if len(steps) == 0 {
		b.WriteString(Dim("No steps") + "\n")
		return b.String()
	}
	for _, s := range steps {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleBlue.Render(fmt.Sprintf("%2d.", s.Order)), s.Text))
	}
	return b.String()
}

func buildCategoriesSection(categories []domain.Category) string {
	var b strings.Builder
	b.WriteString("\n" + Header("Categories") + "\n")

	if len(categories) == 0 {
		b.WriteString(Dim("Uncategorized"))
		return b.String()
	}
	badges := make([]string, len(categories))
	for i, c := range categories {
		badges[i] = CategoryBadge(c.Name)
	}
	b.WriteString(strings.Join(badges, " "))
	return b.String()
}
