package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		counts  map[string]int
		pattern string
		shape   string
	}{
		{"empty", nil, PatternEmpty, PatternEmpty},
		{"deterministic", map[string]int{"1": 10}, PatternDeterministic, PatternDeterministic},
		{"uniform binary", map[string]int{"00": 480, "11": 520}, PatternUniformBinary, PatternUniformBinary},
		{"highly biased", map[string]int{"00": 900, "01": 50, "10": 50}, PatternHighlyBiased, "peaked"},
		{"uniform four", map[string]int{"00": 25, "01": 25, "10": 25, "11": 25}, PatternMixed, "uniform"},
		{"mixed", map[string]int{"00": 600, "01": 300, "10": 100}, PatternMixed, PatternMixed},
		{"skewed binary", map[string]int{"0": 850, "1": 150}, PatternHighlyBiased, "peaked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Analyze(tt.counts, 0).Distribution
			assert.Equal(t, tt.pattern, d.Pattern)
			assert.Equal(t, tt.shape, d.Type)
			assert.NotEmpty(t, d.Description)
		})
	}
}
