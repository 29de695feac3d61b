// Package meter renders a strength result as a colored bar and caption
// for terminal output.
package meter

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/strength"
)

// DefaultWidth is the number of cells in a bar.
const DefaultWidth = 20

const (
	filledCell = "█"
	emptyCell  = "░"
)

// fills is the share of the bar filled per bucket.
var fills = [...]float64{
	strength.VeryWeak:  0.10,
	strength.Weak:      0.25,
	strength.Fair:      0.50,
	strength.Strong:    0.75,
	strength.Excellent: 1.00,
}

// colors is the bar color per bucket, from red to green.
var colors = [...]lipgloss.Color{
	strength.VeryWeak:  "#d9534f",
	strength.Weak:      "#f0ad4e",
	strength.Fair:      "#ffd66b",
	strength.Strong:    "#5cb85c",
	strength.Excellent: "#3fa34d",
}

// Fill returns the filled share of the bar for b, or 0 for an unknown
// bucket.
func Fill(b strength.Bucket) float64 {
	if b < 0 || int(b) >= len(fills) {
		return 0
	}
	return fills[b]
}

// Color returns the bar color for b. Unknown buckets use the very weak
// color.
func Color(b strength.Bucket) lipgloss.Color {
	if b < 0 || int(b) >= len(colors) {
		return colors[strength.VeryWeak]
	}
	return colors[b]
}

// Cells returns the number of filled cells for b in a bar of width cells.
func Cells(b strength.Bucket, width int) int {
	return int(math.Round(Fill(b) * float64(width)))
}

// Meter renders results for one output. Colors are emitted only when the
// output supports them.
type Meter struct {
	renderer *lipgloss.Renderer
	tr       *i18n.Translator
	width    int
}

// New returns a Meter writing styles suited to w and labels from tr.
func New(w io.Writer, tr *i18n.Translator) *Meter {
	return &Meter{
		renderer: lipgloss.NewRenderer(w),
		tr:       tr,
		width:    DefaultWidth,
	}
}

// Bar returns the bar for b: filled cells in the bucket color followed by
// empty cells.
func (m *Meter) Bar(b strength.Bucket) string {
	filled := Cells(b, m.width)
	style := m.renderer.NewStyle().Foreground(Color(b))
	empty := m.renderer.NewStyle().Faint(true)
	return style.Render(strings.Repeat(filledCell, filled)) +
		empty.Render(strings.Repeat(emptyCell, m.width-filled))
}

// Caption returns "Label · ~N bits" for res.
func (m *Meter) Caption(res strength.Result) string {
	label := m.renderer.NewStyle().Bold(true).Foreground(Color(res.Bucket))
	return label.Render(m.tr.Label(res.Bucket)) + " · " + m.tr.Bits(res.RoundedBits())
}

// Render returns the bar and caption on one line.
func (m *Meter) Render(res strength.Result) string {
	return m.Bar(res.Bucket) + "  " + m.Caption(res)
}
