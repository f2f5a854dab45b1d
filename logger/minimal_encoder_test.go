package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func stripANSI(str string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(str, "")
}

func TestMinimalEncoderKeepsEveryField(t *testing.T) {
	encoder := newMinimalEncoder()
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2026, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "braket.service",
		Message:    "Task submitted",
	}

	fields := []zapcore.Field{
		zap.String(FieldTaskID, "arn:aws:braket:us-east-1:123:quantum-task/abc"),
		zap.Int(FieldShots, 1000),
		zap.Int64(FieldDurationMS, 42),
		zap.Bool("dry_run", false),
		zap.Float64("entropy", 0.5),
		zap.String("random_field_xyz", "important_data"),
		zap.Strings("gates", []string{"h", "cx"}),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.True(t, strings.HasPrefix(out, "13:04:35"))
	assert.Contains(t, out, "b.service")
	assert.Contains(t, out, "Task submitted")
	assert.Contains(t, out, "task_id=arn:aws:braket:us-east-1:123:quantum-task/abc")
	assert.Contains(t, out, "shots=1000")
	assert.Contains(t, out, "duration_ms=42ms")
	assert.Contains(t, out, "dry_run=false")
	assert.Contains(t, out, "entropy=0.5")
	assert.Contains(t, out, "random_field_xyz=important_data")
	assert.Contains(t, out, "gates=")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestMinimalEncoderLevels(t *testing.T) {
	encoder := newMinimalEncoder()
	for _, tt := range []struct {
		level zapcore.Level
		want  string
	}{
		{zapcore.WarnLevel, "WARN"},
		{zapcore.ErrorLevel, "ERROR"},
		{zapcore.DebugLevel, "DEBUG"},
	} {
		buf, err := encoder.EncodeEntry(zapcore.Entry{Level: tt.level, Time: time.Now(), Message: "m"}, nil)
		require.NoError(t, err)
		assert.Contains(t, stripANSI(buf.String()), tt.want)
	}

	buf, err := encoder.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "m"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, stripANSI(buf.String()), "INFO")
}

func TestMinimalEncoderWithContext(t *testing.T) {
	var sb strings.Builder
	InitializeWithWriter(&sb, zapcore.InfoLevel)
	defer func() { Logger = zap.NewNop().Sugar() }()

	ChildLogger(ComponentLogger("server"), FieldComponent, "run_quantum_task").Infow("Tool called", FieldShots, 100)

	out := stripANSI(sb.String())
	assert.Contains(t, out, "server")
	assert.Contains(t, out, "component=run_quantum_task")
	assert.Contains(t, out, "shots=100")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "b.service", abbreviateName("braket.service"))
	assert.Equal(t, "server", abbreviateName("server"))
	assert.Equal(t, ".x", abbreviateName(".x"))
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)
	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme)
}
