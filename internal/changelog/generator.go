package changelog

import (
	"fmt"

	"github.com/raveheart1/chlog/internal/git"
)

// Mode selects what a run produces.
type Mode int

const (
	// ModeGenerate produces the rendered changelog document.
	ModeGenerate Mode = iota
	// ModeCheck runs the full pass for its validation side effects only.
	ModeCheck
)

// Options configure one generation pass.
type Options struct {
	// Projects is the ordered set of configured project names. Empty means
	// the repository is not multi-project and no attribution applies.
	Projects []string
	// DefaultProject, when set, is auto-assigned to commits past the cutover.
	DefaultProject string
	// CutoverCommit is the id of the newest commit that still requires
	// explicit attribution; everything older gets the default project.
	CutoverCommit string
	// Project filters the output to one configured project. Empty disables
	// filtering.
	Project string
	// Mode selects generation or validation-only.
	Mode Mode
}

// Generator runs the changelog assembly pass over a commit source.
type Generator struct {
	tree   *Tree
	source git.Source
}

// New returns a Generator filing changes from source into tree.
func New(tree *Tree, source git.Source) *Generator {
	return &Generator{tree: tree, source: source}
}

// Run processes every commit in the order the source supplies them
// (newest first) and returns the rendered document, or an empty string in
// check mode. The first invalid commit aborts the pass.
func (g *Generator) Run(opts Options) (string, error) {
	filter := opts.Project
	if filter != "" && !contains(opts.Projects, filter) {
		return "", fmt.Errorf("project '%s' not configured in config file", filter)
	}

	if opts.Mode == ModeCheck && len(opts.Projects) > 0 {
		// a check run in a multi-project repository validates attribution
		// of every commit, regardless of project
		filter = ForceCheckAll
	}

	commits, err := g.source.Commits()
	if err != nil {
		return "", err
	}

	r := newRouter(opts.Projects, opts.DefaultProject, opts.CutoverCommit)

	for _, commit := range commits {
		r.advance(commit.ID)

		if commit.IsMerge() {
			continue
		}

		if err := g.process(commit, r, filter); err != nil {
			return "", err
		}
	}

	if opts.Mode == ModeCheck {
		return "", nil
	}

	return Render(g.tree), nil
}

// process parses, routes and aggregates a single commit.
func (g *Generator) process(commit git.Commit, r *router, filter string) error {
	if commit.Metadata == "" {
		return &SchemaError{Reason: "missing 'changelog:' key", Raw: commit.Raw}
	}

	block, err := ParseBlock(commit.Metadata)
	if err != nil {
		return &SchemaError{Reason: err.Error(), Raw: commit.Raw}
	}

	// covers both the scalar shorthand and a map entry with skip set
	if block.Kind != KindProjects && block.Entry.Skip {
		return nil
	}

	ok, err := r.inScope(block, filter, commit.Raw)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for _, entry := range block.Entries() {
		if entry.Skip {
			continue
		}
		if !r.entryInScope(entry, filter) {
			continue
		}
		if err := addChange(g.tree, entry, commit.Message, commit.Raw); err != nil {
			return err
		}
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
