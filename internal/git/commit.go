// Package git supplies commits to the changelog pass. Commits can come
// from an on-disk repository, a captured `git log` transcript, or standard
// input (commit-msg hooks); all sources normalize into the same textual
// form before parsing.
package git

import (
	"fmt"
	"regexp"
	"strings"
)

// metadataMarker locates the embedded changelog block inside a commit
// message. The marker may be indented (git log indents messages by four
// spaces).
var metadataMarker = regexp.MustCompile(`(?m)^\s*changelog:`)

// Commit is a single parsed entry of a git log.
type Commit struct {
	// ID is the commit hash from the header, without decorations.
	ID string
	// Header is everything before the message: the commit line and the
	// Merge/Author/Date lines.
	Header string
	// Message is the commit message with the changelog block removed.
	Message string
	// Metadata is the raw text of the changelog block, empty when the
	// commit carries none.
	Metadata string
	// Raw is the untouched input, kept for error reporting.
	Raw string
}

// ParseCommit parses the textual form of a single commit as printed by
// `git log`.
func ParseCommit(raw string) (Commit, error) {
	// Windows transcripts may carry \r\n line endings, and chunks split
	// out of a log keep the separating newline
	data := strings.TrimLeft(strings.ReplaceAll(raw, "\r", ""), "\n")

	parts := metadataMarker.Split(data, -1)

	header, message, found := strings.Cut(parts[0], "\n\n")
	if !found {
		return Commit{}, fmt.Errorf("could not extract commit message text in commit:\n>>> %s", raw)
	}

	// The block's first line lost its indentation to the marker while the
	// rest kept it, so the text is only valid YAML re-nested under a
	// `changelog:` key. Keep it verbatim; the parser re-nests it.
	metadata := strings.Join(parts[1:], "")
	if strings.TrimSpace(metadata) == "" {
		metadata = ""
	}

	return Commit{
		ID:       commitID(header),
		Header:   header,
		Message:  strings.TrimSpace(message),
		Metadata: metadata,
		Raw:      raw,
	}, nil
}

// IsMerge reports whether the commit is a merge commit. Merge commits are
// not required to carry changelog metadata.
func (c Commit) IsMerge() bool {
	return strings.Contains(c.Header, "\nMerge: ")
}

// commitID extracts the hash from the first header line, dropping ref
// decorations like "(HEAD -> master)".
func commitID(header string) string {
	line, _, _ := strings.Cut(header, "\n")
	id := strings.TrimPrefix(line, "commit ")
	id, _, _ = strings.Cut(id, " ")
	return id
}

// SplitLog splits a full `git log` transcript into per-commit chunks,
// preserving the log's newest-first order.
func SplitLog(log string) ([]Commit, error) {
	if log == "" {
		return nil, nil
	}

	var commits []Commit
	for pos := 0; ; {
		end := strings.Index(log[pos+1:], "\ncommit ")
		upTo := len(log)
		if end >= 0 {
			upTo = pos + 1 + end
		}

		commit, err := ParseCommit(log[pos:upTo])
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)

		if end < 0 {
			return commits, nil
		}
		pos = upTo
	}
}
