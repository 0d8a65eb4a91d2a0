package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is how long the file must stay quiet before the action runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher runs an action after each burst of changes to one file.
type Watcher struct {
	matcher  *Matcher
	debounce time.Duration
	onChange func() error

	fsw      *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Watcher for path. A debounce of zero uses DefaultDebounce.
func New(path string, debounce time.Duration, onChange func() error) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange cannot be nil")
	}
	m, err := NewMatcher(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		matcher:  m,
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.matcher.Dir()); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.matcher.Dir(), err)
	}
	w.fsw = fsw

	log.Debug().Str("dir", w.matcher.Dir()).Dur("debounce", w.debounce).Msg("watching")

	w.wg.Add(1)
	go w.loop()
	return nil
}

// loop reads events until Stop. Each relevant event re-arms the timer; the
// action runs on this goroutine when it fires, so runs never overlap.
func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matcher.Match(ev) {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watch error")
		case <-timer.C:
			if err := w.onChange(); err != nil {
				log.Error().Err(err).Msg("re-run failed")
			}
		case <-w.stopCh:
			return
		}
	}
}

// Stop halts the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		if w.fsw != nil {
			err = w.fsw.Close()
		}
	})
	return err
}

// Run watches path until ctx is done, calling onChange after each burst of
// changes.
func Run(ctx context.Context, path string, debounce time.Duration, onChange func() error) error {
	w, err := New(path, debounce, onChange)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}
