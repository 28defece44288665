package git

import (
	"io"
	"strings"
)

// Source yields the commits a changelog pass consumes, newest first.
type Source interface {
	Commits() ([]Commit, error)
}

// RawLogSource serves commits from a captured `git log` transcript.
// Useful in tests and for piping a stored log through the tool.
type RawLogSource struct {
	Log string
}

func (s RawLogSource) Commits() ([]Commit, error) {
	return SplitLog(s.Log)
}

// ReaderSource reads commits from a stream, typically standard input in a
// commit-msg hook. A bare commit message (no `commit` header, as the hook
// receives it) gets a synthetic header so it parses like a log entry.
type ReaderSource struct {
	R io.Reader
}

func (s ReaderSource) Commits() ([]Commit, error) {
	buf, err := io.ReadAll(s.R)
	if err != nil {
		return nil, err
	}

	log := string(buf)
	if !strings.HasPrefix(log, "commit ") {
		log = "commit FROM STDIN\n\n" + log
	}

	return SplitLog(log)
}
