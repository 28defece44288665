package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// paragraphBreak matches the blank line separating the commit message title
// from its body.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// resolveText fills in a missing title and description from the commit's
// free-text message. An explicit title is used verbatim. A derived title is
// the text up to the first blank line; the derived description is the
// remainder with git's hard wrapping and indentation removed, since that
// formatting is cosmetic and must not leak into the output.
func resolveText(e Entry, message string) (title, description string, err error) {
	title = e.Title
	description = e.Description

	if title != "" {
		return title, description, nil
	}

	parts := paragraphBreak.Split(message, 2)

	title = strings.TrimSpace(parts[0])
	if title == "" {
		return "", "", fmt.Errorf("could not extract 'title' from commit message text")
	}

	if description == "" && len(parts) > 1 {
		description = unwrapLines(parts[1])
	}

	return title, description, nil
}

// unwrapLines trims each line and rejoins them with single spaces.
func unwrapLines(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, " ")
}
