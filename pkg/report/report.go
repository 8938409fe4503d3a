package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/palette"
	"github.com/ilkoid/paintmix/pkg/s3storage"
)

// Renderer собирает текст отчёта заданной ширины.
type Renderer struct {
	styles    Styles
	width     int
	fallbacks map[string]string
}

// NewRenderer создаёт рендерер. width <= 0 — 80 колонок.
func NewRenderer(styles Styles, width int, fallbacks map[string]string) *Renderer {
	if width <= 0 {
		width = 80
	}
	if fallbacks == nil {
		fallbacks = palette.DefaultCategoryFallbacks
	}
	return &Renderer{styles: styles, width: width, fallbacks: fallbacks}
}

// swatch — цветной блок записи; "  " если цвет не определить.
func (r *Renderer) swatch(rec palette.ColorRecord) string {
	rgb, ok, err := palette.ResolveRGB(rec, r.fallbacks)
	if err != nil || !ok {
		return "  "
	}
	hex, err := colorspace.RGBToHex(rgb)
	if err != nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

func (r *Renderer) recordLine(rec palette.ColorRecord) string {
	name := rec.Name
	if name == "" {
		name = fmt.Sprintf("#%d", rec.ID)
	}
	line := fmt.Sprintf("%s %s %s", r.swatch(rec), name, r.styles.muted().Render(rec.Formula))
	return wrap.String(line, r.width)
}

// Duplicates рендерит группы дубликатов с разбором пропорций.
func (r *Renderer) Duplicates(groups []palette.DuplicateGroup) string {
	if len(groups) == 0 {
		return r.styles.muted().Render("No duplicate formulas found.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(r.styles.title().Render(fmt.Sprintf("Duplicate formulas: %d groups", len(groups))))
	sb.WriteString("\n")

	for i, g := range groups {
		var parts []string
		for _, item := range palette.ParseRatio(g.Signature).Items {
			parts = append(parts, fmt.Sprintf("%s × %s", item.Name, formatRatio(item.Ratio)))
		}
		header := fmt.Sprintf("\n%d. %s", i+1, strings.Join(parts, " : "))
		sb.WriteString(r.styles.accent().Render(wrap.String(header, r.width)))
		sb.WriteString("\n")

		for _, rec := range g.Records {
			sb.WriteString("   ")
			sb.WriteString(r.recordLine(rec))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Matches рендерит кандидатов подбора цвета.
func (r *Renderer) Matches(target colorspace.RGB, results []palette.MatchResult) string {
	var sb strings.Builder

	hex, _ := colorspace.RGBToHex(target)
	sb.WriteString(r.styles.title().Render("Target "))
	sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  "))
	sb.WriteString(" " + hex + "\n")

	if len(results) == 0 {
		sb.WriteString(r.styles.muted().Render("No colors with a resolvable value.") + "\n")
		return sb.String()
	}

	for i, m := range results {
		sb.WriteString(fmt.Sprintf("%2d. ΔE %6.2f  ", i+1, m.DeltaE))
		sb.WriteString(r.recordLine(m.Record))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Renamed — итог каскадного переименования.
func (r *Renderer) Renamed(oldName, newName string, rows int) string {
	if rows == 0 {
		return r.styles.muted().Render(fmt.Sprintf("No formulas reference %q.", oldName)) + "\n"
	}
	return r.styles.accent().Render(fmt.Sprintf("Renamed %q → %q in %d formulas.", oldName, newName, rows)) + "\n"
}

// Snapshots — список снимков палитр в бакете.
func (r *Renderer) Snapshots(objects []s3storage.StoredObject) string {
	if len(objects) == 0 {
		return r.styles.muted().Render("No palette snapshots found.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(r.styles.title().Render(fmt.Sprintf("Palette snapshots: %d", len(objects))))
	sb.WriteString("\n\n")
	for _, obj := range objects {
		size := fmt.Sprintf("%.2f KB", float64(obj.Size)/1024)
		sb.WriteString(fmt.Sprintf("%s  %-10s  %s\n", r.styles.accent().Render("•"), size, obj.Key))
	}
	return sb.String()
}

func formatRatio(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
