package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtrDeref(t *testing.T) {
	p := Ptr(int64(1000))
	assert.Equal(t, int64(1000), *p)
	assert.Equal(t, int64(1000), Deref(p))

	var nilStr *string
	assert.Equal(t, "", Deref(nilStr))
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"circuit", "circuit"},
		{"results_arn:aws:braket:us-east-1:123456789012:quantum-task/abc-def", "results_arn_aws_braket_us-east-1_123456789012_quantum-task_abc-def"},
		{"  bell pair  ", "bell_pair"},
		{"///", "visualization"},
		{"", "visualization"},
		{"../../etc/passwd", "etc_passwd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeFileName(tt.in, "visualization"), tt.in)
	}
}
