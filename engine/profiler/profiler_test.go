package profiler

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"
)

func TestTickLogsWithStatus(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	p := NewProfiler()
	if p.Tick() {
		t.Fatalf("a fresh profiler should not report before the interval")
	}

	p.SetStatus(func() string { return "frame 3/10 running" })
	p.lastTime = time.Now().Add(-2 * time.Second)
	if !p.Tick() {
		t.Fatalf("expected stats after the interval elapsed")
	}
	out := buf.String()
	if !strings.Contains(out, "[Profiler] FPS:") || !strings.Contains(out, "| frame 3/10 running") {
		t.Fatalf("unexpected log line %q", out)
	}
	if p.frameCount != 0 {
		t.Fatalf("frame count should reset after reporting")
	}
}
