package git

import (
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// gitDateFormat matches the default `git log` date format.
const gitDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

// RepoSource serves commits from an on-disk repository, walking history
// from HEAD. Boundary, when set, names the oldest commit to exclude:
// iteration stops once it is reached, so only newer commits are returned.
type RepoSource struct {
	Path     string
	Boundary string
}

func (s RepoSource) Commits() ([]Commit, error) {
	path := s.Path
	if path == "" {
		path = "."
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open git repository at '%s': %w", path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("could not resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("could not read git log: %w", err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if s.Boundary != "" && c.Hash.String() == s.Boundary {
			return storer.ErrStop
		}

		commit, err := ParseCommit(formatCommit(c))
		if err != nil {
			return err
		}
		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}

// formatCommit renders a commit the way `git log` prints it, so repository
// commits and captured transcripts parse identically.
func formatCommit(c *object.Commit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "commit %s\n", c.Hash)
	if c.NumParents() > 1 {
		b.WriteString("Merge:")
		for _, parent := range c.ParentHashes {
			fmt.Fprintf(&b, " %s", parent.String()[:7])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
	fmt.Fprintf(&b, "Date:   %s\n\n", c.Author.When.Format(gitDateFormat))

	for msg := c.Message; len(msg) > 0; {
		var line string
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			line, msg = msg[:i+1], msg[i+1:]
		} else {
			line, msg = msg, ""
		}
		line = strings.TrimRight(line, "\n")
		if line == "" {
			b.WriteByte('\n')
		} else {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}

	return b.String()
}
