package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// relevantOps are the operations that may leave the target with new content.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Matcher decides whether a directory event concerns the watched file.
type Matcher struct {
	dir  string
	path string
	// resolved is path with symlinks in its directory evaluated, or "" when
	// that fails.
	resolved string
}

// NewMatcher builds a matcher for path. The path need not exist yet.
func NewMatcher(path string) (*Matcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	m := &Matcher{
		dir:  filepath.Dir(abs),
		path: abs,
	}
	if dir, err := filepath.EvalSymlinks(m.dir); err == nil && dir != m.dir {
		m.resolved = filepath.Join(dir, filepath.Base(abs))
	}
	return m, nil
}

// Dir returns the directory to watch.
func (m *Matcher) Dir() string {
	return m.dir
}

// Match reports whether ev names the watched file with a relevant operation.
func (m *Matcher) Match(ev fsnotify.Event) bool {
	if ev.Op&relevantOps == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	if !filepath.IsAbs(name) {
		abs, err := filepath.Abs(name)
		if err != nil {
			return false
		}
		name = abs
	}
	return name == m.path || (m.resolved != "" && name == m.resolved)
}
