package visual

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHistogram(t *testing.T) {
	out := RenderHistogram(map[string]int{"11": 550, "00": 450})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "Measurement Results Histogram:", lines[0])
	assert.Equal(t, strings.Repeat("=", 50), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "|00⟩: "), "sorted by bitstring")
	assert.True(t, strings.HasPrefix(lines[3], "|11⟩: "+strings.Repeat("█", 40)+"  550 ( 55.0%)"))
	assert.Contains(t, lines[2], strings.Repeat("█", 32)+strings.Repeat(" ", 8)+"  450 ( 45.0%)")
	assert.Equal(t, strings.Repeat("=", 50), lines[4])
	assert.Equal(t, "Total shots: 1000", lines[5])
}

func TestRenderHistogramEmpty(t *testing.T) {
	assert.Equal(t, "No measurement data available", RenderHistogram(nil))
	assert.Equal(t, "No measurement data available", RenderHistogram(map[string]int{"0": 0}))
}

func TestRenderHistogramBarsAlign(t *testing.T) {
	out := RenderHistogram(map[string]int{"000": 1, "111": 999, "010": 0})
	lines := strings.Split(out, "\n")
	for _, l := range lines[2:5] {
		assert.Equal(t, displayWidth(lines[2]), displayWidth(l))
	}
	assert.Contains(t, out, "|010⟩: "+strings.Repeat(" ", 40)+"    0 (  0.0%)")
}
