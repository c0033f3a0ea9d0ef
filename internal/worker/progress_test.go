package worker

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	p := NewProgress(10, false)

	p.Update(5, 10, 0)

	assert.Equal(t, 5, p.completed)
	assert.Equal(t, 10, p.total)
}

func TestProgress_Print(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(10, true)
	p.output = &buf
	p.startTime = time.Now().Add(-10 * time.Second)

	p.Update(5, 10, 1)

	output := buf.String()
	assert.Contains(t, output, "█")
	assert.Contains(t, output, "5/10 frames")
	assert.Contains(t, output, "(1 failed)")
	assert.Contains(t, output, "frames/sec")
	assert.Contains(t, output, "ETA:")
	assert.NotContains(t, output, "Done in")
}

func TestProgress_PrintZeroTotal(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(0, true)
	p.output = &buf
	p.Print()

	assert.Contains(t, buf.String(), "0/0 frames")
}

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(3, true)
	p.output = &buf
	p.startTime = time.Now().Add(-3 * time.Second)

	p.Update(3, 3, 0)
	buf.Reset()

	p.Done()

	output := buf.String()
	assert.Contains(t, output, "Done in")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestProgress_Summary(t *testing.T) {
	p := NewProgress(10, false)
	p.startTime = time.Now().Add(-10 * time.Second)

	p.Update(10, 10, 2)

	summary := p.Summary()
	assert.Contains(t, summary, "8/10 frames", "summary counts successful frames")
	assert.Contains(t, summary, "2 failed")
}

func TestProgress_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p := NewProgress(4, false)
	p.Update(4, 4, 1)
	p.Log(logger)

	out := buf.String()
	assert.Contains(t, out, "rendered=3")
	assert.Contains(t, out, "failed=1")
	assert.Contains(t, out, "total=4")
}

func TestProgress_Disabled(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(10, false)
	p.output = &buf

	p.Update(5, 10, 0)

	assert.Zero(t, buf.Len(), "no output when disabled")
}

func TestProgress_Callback(t *testing.T) {
	p := NewProgress(10, false)

	callback := p.Callback()
	callback(5, 10, 1)

	assert.Equal(t, 5, p.completed)
	assert.Equal(t, 1, p.failed)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		expected string
		duration time.Duration
	}{
		{duration: 30 * time.Second, expected: "30s"},
		{duration: 90 * time.Second, expected: "1m30s"},
		{duration: 5 * time.Minute, expected: "5m0s"},
		{duration: 65 * time.Minute, expected: "1h5m"},
		{duration: 2*time.Hour + 30*time.Minute, expected: "2h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
