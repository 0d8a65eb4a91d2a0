package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar_Line(t *testing.T) {
	p := NewProgress(4, "Rendering charts")
	var buf bytes.Buffer
	p.SetWriter(&buf)

	if got := p.String(); !strings.HasPrefix(got, "[                    ]   0%") {
		t.Errorf("initial bar = %q", got)
	}

	p.Increment()
	p.Increment()
	if got := p.String(); !strings.Contains(got, "=========>") || !strings.Contains(got, " 50% Rendering charts") {
		t.Errorf("half bar = %q", got)
	}
	if buf.Len() != 0 {
		t.Errorf("non-TTY writer should stay silent until done, got %q", buf.String())
	}
}

func TestProgressBar_FinishPrintsOnce(t *testing.T) {
	p := NewProgress(2, "Rendering charts")
	var buf bytes.Buffer
	p.SetWriter(&buf)

	p.Increment()
	p.Increment()
	p.Finish()

	out := buf.String()
	if strings.Count(out, "100%") != 1 {
		t.Errorf("expected a single completed line, got %q", out)
	}
}

func TestProgressBar_OverLimit(t *testing.T) {
	p := NewProgress(1, "x")
	p.SetWriter(&bytes.Buffer{})
	p.Increment()
	p.Increment()
	if got := p.String(); !strings.Contains(got, "100%") {
		t.Errorf("bar should clamp at 100%%, got %q", got)
	}
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	p := NewProgress(0, "nothing")
	var buf bytes.Buffer
	p.SetWriter(&buf)
	p.Finish()
	if got := p.String(); !strings.Contains(got, "100%") {
		t.Errorf("empty bar should read 100%%, got %q", got)
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	s := NewSpinner("Waiting for changes")
	var buf bytes.Buffer
	s.SetWriter(&buf)

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	if got := buf.String(); got != "Waiting for changes...\n" {
		t.Errorf("spinner output = %q", got)
	}
}

func TestSpinner_Restart(t *testing.T) {
	s := NewSpinner("Waiting")
	var buf bytes.Buffer
	s.SetWriter(&buf)

	s.Start()
	s.Stop()
	s.Start()
	s.Stop()

	if got := strings.Count(buf.String(), "Waiting..."); got != 2 {
		t.Errorf("expected 2 messages after restart, got %d", got)
	}
}
