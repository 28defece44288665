package template

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// CommitTemplate builds a commit-message skeleton for a prepare-commit-msg
// hook: a pre-filled `changelog:` block for the project(s) owning the staged
// files, followed by a commented reference of the valid sections.
// changedFiles is the staged file list, one path per line.
func (t *Template) CommitTemplate(changedFiles io.Reader) (string, error) {
	projects, err := t.affectedProjects(changedFiles)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("\n\nchangelog:\n")

	switch {
	case len(projects) == 1:
		b.WriteString("  project: ")
		b.WriteString(projects[0])
		b.WriteString("\n  section:\n  inherit: all\n")
	case len(projects) > 1:
		for _, project := range projects {
			b.WriteString(" - project:\n    name: ")
			b.WriteString(project)
			b.WriteString("\n    section:\n    inherit: all\n")
		}
	default:
		b.WriteString("  section:\n  inherit: all\n")
	}

	b.WriteString("#\n# Valid changelog sections:\n#")
	t.writeSectionReference(&b)

	return b.String(), nil
}

// affectedProjects maps the staged file paths onto configured project
// directories. An empty result means the repository is not multi-project.
func (t *Template) affectedProjects(changedFiles io.Reader) ([]string, error) {
	if len(t.Settings.Projects.List) == 0 {
		return nil, nil
	}

	buf, err := io.ReadAll(changedFiles)
	if err != nil {
		return nil, fmt.Errorf("reading changed file list: %v", err)
	}

	var projects []string
	for _, line := range strings.Split(string(buf), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, ok := t.projectForFile(line)
		if !ok {
			return nil, fmt.Errorf(
				"could not determine project for file: '%s'. Is the directory correctly set in the config file?", line)
		}
		if !containsString(projects, name) {
			projects = append(projects, name)
		}
	}

	return projects, nil
}

// projectForFile returns the name of the first configured project whose
// directory owns the path. The special dir "." owns files directly in the
// repository root.
func (t *Template) projectForFile(path string) (string, bool) {
	for _, project := range t.Settings.Projects.List {
		for _, dir := range project.Dirs {
			if dir == "." {
				if filepath.Dir(path) == "." {
					return project.Name, true
				}
				continue
			}
			if path == dir || strings.HasPrefix(path, dir+"/") {
				return project.Name, true
			}
		}
	}
	return "", false
}

// writeSectionReference lists the section keywords with their titles,
// aligned on the longest section/subsection keyword.
func (t *Template) writeSectionReference(b *strings.Builder) {
	longest := 0
	for _, sec := range t.Tree.Sections() {
		length := len(sec.Key)
		for _, sub := range sec.Subsections() {
			length += len(sub.Key) + 1 // keyword plus the '.' separator
		}
		if length > longest {
			longest = length
		}
	}

	const spaces = 2
	for _, sec := range t.Tree.Sections() {
		b.WriteString("\n# * ")
		b.WriteString(sec.Key)

		if len(sec.Subsections()) == 0 {
			b.WriteString(strings.Repeat(" ", longest-len(sec.Key)+spaces))
			b.WriteString(sec.Title)
			continue
		}

		for _, sub := range sec.Subsections() {
			b.WriteString(".")
			b.WriteString(sub.Key)
			b.WriteString(strings.Repeat(" ", longest-len(sec.Key)-len(sub.Key)-1+spaces))
			b.WriteString(sub.Title)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
