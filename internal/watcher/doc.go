// Package watcher re-runs an action whenever a survey file changes.
//
// The file's parent directory is watched with fsnotify rather than the file
// itself, so editors that save by writing a temp file and renaming it over
// the watched file are still seen. Events for other files in the directory are
// ignored. Bursts of events are coalesced: the action runs once the file has
// been quiet for the debounce interval.
//
// Key features:
//   - Directory watch with per-file event filtering
//   - Debounced, serialized callbacks (never two runs at once)
//   - Callback errors are logged and do not stop the watcher
//   - Context-driven shutdown
//
// Example usage:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	err := watcher.Run(ctx, "survey.csv", watcher.DefaultDebounce, func() error {
//		return analyze("survey.csv")
//	})
package watcher
