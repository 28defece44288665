package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/errors"
)

// debounceDelay coalesces the burst of filesystem events a single git
// operation produces into one regeneration.
const debounceDelay = 300 * time.Millisecond

// watchAndGenerate re-runs generation whenever the repository's HEAD or
// branch refs change, until interrupted. Template edits are picked up too,
// since every round reloads the template from disk.
func watchAndGenerate(cmd *cobra.Command) error {
	gitDir := filepath.Join(watchGitPath(), ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return errors.NewRuntimeError(
			fmt.Sprintf("cannot watch repository: %v", err),
			"pass --git-path pointing at the repository root",
		)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// HEAD changes on commit/checkout, refs/heads on branch updates
	for _, path := range []string{gitDir, filepath.Join(gitDir, "refs", "heads")} {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generateOnce(cmd); err != nil {
		return err
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)

		case <-debounce:
			debounce = nil
			if err := generateOnce(cmd); err != nil {
				// keep watching; a half-written ref or a bad commit should
				// not kill the preview loop
				errors.FprintError(cmd.ErrOrStderr(), errors.Classify(err))
			}
		}
	}
}

// watchGitPath resolves the repository path the same way the pipeline does,
// without loading the template (watch needs the path before the first run).
func watchGitPath() string {
	if flagGitPath != "" {
		return flagGitPath
	}
	return "./"
}
