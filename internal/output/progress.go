package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// writerIsTTY reports whether w is a file descriptor attached to a terminal.
// Plain writers such as *bytes.Buffer are never terminals.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ProgressBar reports progress through a fixed number of steps, e.g.
//
//	[=========>          ] 50% Rendering charts
//
// On a terminal the bar redraws in place. Elsewhere it prints a single line
// once all steps are done.
type ProgressBar struct {
	mu          sync.Mutex
	total       int
	current     int
	width       int
	description string
	writer      io.Writer
}

// NewProgress creates a progress bar writing to stderr, keeping stdout free
// for results.
func NewProgress(total int, description string) *ProgressBar {
	return &ProgressBar{
		total:       total,
		width:       20,
		description: description,
		writer:      os.Stderr,
	}
}

// SetWriter sets the output writer (useful for testing).
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
}

// SetDescription changes the label shown after the bar.
func (p *ProgressBar) SetDescription(description string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.description = description
}

// Increment advances the bar by one step.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total {
		p.current++
	}
	p.render()
}

// Finish marks every step done and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	wasDone := p.current == p.total
	p.current = p.total
	if writerIsTTY(p.writer) {
		p.render()
		fmt.Fprintln(p.writer)
		return
	}
	if !wasDone {
		p.render()
	}
}

// String returns the bar as it would be drawn now.
func (p *ProgressBar) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.line()
}

// line must be called with the lock held.
func (p *ProgressBar) line() string {
	pct, filled := 100, p.width
	if p.total > 0 {
		pct = p.current * 100 / p.total
		filled = p.current * p.width / p.total
	}

	bar := strings.Repeat("=", filled)
	if filled > 0 && filled < p.width {
		bar = bar[:filled-1] + ">"
	}
	return fmt.Sprintf("[%-*s] %3d%% %s", p.width, bar, pct, p.description)
}

// render must be called with the lock held.
func (p *ProgressBar) render() {
	if writerIsTTY(p.writer) {
		fmt.Fprintf(p.writer, "\r%s", p.line())
		return
	}
	if p.current == p.total {
		fmt.Fprintln(p.writer, p.line())
	}
}

// Spinner animates a message while a command waits, e.g. for file changes.
// On a non-terminal writer the message is printed once and nothing animates.
type Spinner struct {
	mu      sync.Mutex
	message string
	writer  io.Writer
	frames  []string
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewSpinner creates a stopped spinner writing to stderr.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		writer:  os.Stderr,
		frames:  []string{"|", "/", "-", "\\"},
	}
}

// SetWriter sets the output writer (useful for testing).
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// Start begins the animation. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	if !writerIsTTY(s.writer) {
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.animate(s.stop, s.done)
}

func (s *Spinner) animate(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(s.frames) {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.writer, "\r%s  %s", s.frames[i], s.message)
			s.mu.Unlock()
		}
	}
}

// Stop halts the animation and clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done

	s.mu.Lock()
	fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	s.mu.Unlock()
}
