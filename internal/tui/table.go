package tui

import (
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/catalog-browser/internal/catalog"
	"github.com/aaravmahajanofficial/catalog-browser/internal/models"
	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows with aligned columns.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table. An empty table renders as "".
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}

	// lipgloss widths include the padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			sb.WriteString(rowStyle.Width(colWidths[i]).Render(cell))
			if i < len(row)-1 && i < len(colWidths)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

var productHeaders = []string{"ID", "Title", "Category", "Price", "Rating", "Stock", "Image"}

// ProductTable lays out one page of products.
func ProductTable(products []models.Product) *SimpleTable {
	t := NewSimpleTable("", productHeaders)
	for _, p := range products {
		t.AddRow(
			fmt.Sprintf("%d", p.ID),
			p.Title,
			p.Category,
			FormatPrice(p.Price),
			FormatRating(p.Rating),
			stockLabel(p),
			imageLabel(p),
		)
	}

	return t
}

// RenderPage renders the count label, the page of products or the no-matches text, and
// the page indicator.
func RenderPage(res catalog.Result, styles Styles) string {
	var sb strings.Builder

	sb.WriteString(styles.Muted.Render(res.CountLabel))
	sb.WriteString("\n\n")

	if res.Empty() {
		sb.WriteString(styles.Body.Render(catalog.NoMatchesText))
		sb.WriteString("\n")
	} else {
		sb.WriteString(ProductTable(res.Items).View(styles))
	}

	sb.WriteString("\n")
	sb.WriteString(pager(res, styles))
	sb.WriteString("\n")

	return sb.String()
}

func pager(res catalog.Result, styles Styles) string {
	prev, next := styles.Muted.Render("< Previous"), styles.Muted.Render("Next >")
	if res.HasPrev() {
		prev = styles.Accent.Render("< Previous")
	}
	if res.HasNext() {
		next = styles.Accent.Render("Next >")
	}

	return prev + "  " + styles.Bold.Render(res.PageLabel()) + "  " + next
}

func FormatPrice(v float64) string { return fmt.Sprintf("$%.2f", v) }

func FormatRating(v float64) string { return fmt.Sprintf("%.1f / 5", v) }

func stockLabel(p models.Product) string {
	if p.InStock || p.Stock > 0 {
		return fmt.Sprintf("%d", p.Stock)
	}

	return "Out of stock"
}

func imageLabel(p models.Product) string {
	if p.Thumbnail == "" {
		return "No Image"
	}

	return "yes"
}
