// Package visual renders circuits and measurement histograms as fixed-width
// text, and rasterizes that text to PNG for persistence.
package visual

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/teranos/qntx-braket/circuit"
)

const (
	wire      = "─"
	connector = "│"
	control   = "●"
)

// Box-drawing and marker glyphs are East Asian "ambiguous"; pin them to one
// column regardless of the host locale.
var width = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// column is one gate event: the symbol placed on each participating row and
// the rows crossed by a vertical connector.
type column struct {
	symbols map[int]string
	crossed map[int]bool
}

// RenderCircuit draws c as one line per qubit, labeled q0: ... q{n-1}:, one
// column per gate in application order. It never fails: unknown gates get
// a placeholder symbol and out-of-range qubit indices are ignored.
func RenderCircuit(c circuit.Circuit) string {
	return strings.Join(RenderRows(c), "\n")
}

// RenderRows is RenderCircuit without the final join. All rows have the
// same display width.
func RenderRows(c circuit.Circuit) []string {
	n := c.NumQubits
	if n <= 0 {
		return nil
	}

	labelWidth := len(fmt.Sprintf("q%d:", n-1))
	rows := make([]strings.Builder, n)
	for i := range rows {
		label := fmt.Sprintf("q%d:", i)
		rows[i].WriteString(label)
		rows[i].WriteString(strings.Repeat(" ", labelWidth-len(label)))
	}

	var cols []column
	for _, g := range c.Gates {
		if col, ok := layout(g, n); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return collect(rows)
	}

	for i := range rows {
		rows[i].WriteString(" ")
	}
	for _, col := range cols {
		w := 1
		for _, s := range col.symbols {
			if sw := width.StringWidth(s); sw > w {
				w = sw
			}
		}
		for i := range rows {
			rows[i].WriteString(wire)
			switch {
			case col.symbols[i] != "":
				rows[i].WriteString(center(col.symbols[i], w))
			case col.crossed[i]:
				rows[i].WriteString(center(connector, w))
			default:
				rows[i].WriteString(strings.Repeat(wire, w))
			}
			rows[i].WriteString(wire)
		}
	}
	return collect(rows)
}

func collect(rows []strings.Builder) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}

func center(s string, w int) string {
	pad := w - width.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(wire, left) + s + strings.Repeat(wire, pad-left)
}

// layout places a gate's symbols. The second return is false when the gate
// touches no row on the diagram.
func layout(g circuit.Gate, n int) (column, bool) {
	col := column{symbols: map[int]string{}, crossed: map[int]bool{}}
	spec := g.Spec()

	inRange := func(q int) bool { return q >= 0 && q < n }
	all := func(sym string) {
		for i := 0; i < n; i++ {
			col.symbols[i] = sym
		}
	}
	each := func(sym string) {
		for _, q := range g.Qubits {
			if inRange(q) {
				col.symbols[q] = sym
			}
		}
	}

	switch spec.Kind {
	case circuit.KindOneQubit:
		each(strings.ToUpper(spec.Name))
	case circuit.KindRotation:
		each(rotationSymbol(strings.ToUpper(spec.Name), g))
	case circuit.KindTwoQubit, circuit.KindThreeQubit:
		markers := multiQubitMarkers(spec, g)
		for i, q := range g.Qubits {
			if i < len(markers) && inRange(q) {
				col.symbols[q] = markers[i]
			}
		}
		connect(&col)
	case circuit.KindMeasurement:
		if spec.Name == "measure_all" || len(g.Qubits) == 0 {
			all("M")
		} else {
			each("M")
		}
	case circuit.KindDirective:
		if len(g.Qubits) == 0 {
			all("║")
		} else {
			each("║")
		}
	default:
		each(placeholder(g.Name))
	}
	return col, len(col.symbols) > 0
}

func rotationSymbol(mnemonic string, g circuit.Gate) string {
	if p, ok := g.Param(0); ok {
		return fmt.Sprintf("%s(%.2f)", mnemonic, p)
	}
	return mnemonic
}

func multiQubitMarkers(spec circuit.Spec, g circuit.Gate) []string {
	switch spec.Name {
	case "cx":
		return []string{control, "X"}
	case "cy":
		return []string{control, "Y"}
	case "cz":
		return []string{control, "Z"}
	case "cp":
		return []string{control, rotationSymbol("P", g)}
	case "swap":
		return []string{"x", "x"}
	case "ccx":
		return []string{control, control, "X"}
	case "cswap":
		return []string{control, "x", "x"}
	}
	return nil
}

// connect marks rows strictly between the outermost participants.
func connect(col *column) {
	lo, hi := -1, -1
	for q := range col.symbols {
		if lo == -1 || q < lo {
			lo = q
		}
		if q > hi {
			hi = q
		}
	}
	for q := lo + 1; q < hi; q++ {
		if _, ok := col.symbols[q]; !ok {
			col.crossed[q] = true
		}
	}
}

// placeholder is the upper-cased gate name cut to three runes.
func placeholder(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	if s == "" {
		return "?"
	}
	if utf8.RuneCountInString(s) > 3 {
		s = string([]rune(s)[:3])
	}
	return s
}

// displayWidth is the rendered column width of s.
func displayWidth(s string) int {
	return width.StringWidth(s)
}
