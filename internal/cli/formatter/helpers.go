package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const missing = "--"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders hours at two decimal places, or "--" when unset.
func FormatHours(h *decimal.Decimal) string {
	if h == nil {
		return missing
	}
	return h.StringFixed(2) + "h"
}

// FormatCost renders a currency amount, or "--" when unset.
func FormatCost(c *decimal.Decimal) string {
	if c == nil {
		return missing
	}
	return "$" + c.StringFixed(2)
}

// FormatCount renders an optional quantity, or "--" when unset.
func FormatCount(n *int) string {
	if n == nil {
		return missing
	}
	return strconv.Itoa(*n)
}

// DifficultyPill renders difficulty as filled and empty pips out of five.
func DifficultyPill(difficulty *int) string {
	if difficulty == nil {
		return StyleDim.Render(missing)
	}
	d := *difficulty
	filled := min(max(d, 0), 5)
	pips := strings.Repeat("●", filled) + strings.Repeat("○", 5-filled)
	return DifficultyColor(d).Render(pips + " " + strconv.Itoa(d))
}

// HoursVariance compares actual against estimated hours. Over-runs are red,
// finishing at or under estimate is green.
func HoursVariance(estimated, actual *decimal.Decimal) string {
	if estimated == nil || actual == nil {
		return StyleDim.Render(missing)
	}
	diff := actual.Sub(*estimated)
	text := diff.StringFixed(2) + "h"
	if diff.IsPositive() {
		return StyleRed.Render("+" + text)
	}
	return StyleGreen.Render(text)
}

// CategoryBadge returns a purple category label.
func CategoryBadge(name string) string {
	return StylePurple.Render("#" + name)
}
