package changelog

import "fmt"

// ForceCheckAll is the requested-project sentinel used by validation-only
// runs against multi-project repositories: attribution is still validated
// for every commit but nothing is filtered out.
const ForceCheckAll = "force_check_all_projects"

// router decides which entries are in scope for the requested project and
// tracks the default-project cutover across the commit iteration.
//
// The state machine has three states. With no default project configured the
// router stays inert and never auto-assigns. Otherwise it starts before the
// cutover: explicit attribution is mandatory. The transition fires on the
// commit after the one matching the cutover id, so the cutover commit itself
// still needs explicit attribution while every older commit is attributed to
// the default project, overriding whatever its metadata block states.
type router struct {
	projects       map[string]bool
	defaultProject string
	cutover        string

	cutoverReached bool
	active         string
}

func newRouter(projects []string, defaultProject, cutover string) *router {
	set := make(map[string]bool, len(projects))
	for _, p := range projects {
		set[p] = true
	}
	return &router{
		projects:       set,
		defaultProject: defaultProject,
		cutover:        cutover,
	}
}

// advance must be called once per commit, in newest-first order, before
// routing that commit's entries.
func (r *router) advance(commitID string) {
	if r.defaultProject == "" {
		return
	}
	if r.cutoverReached {
		r.active = r.defaultProject
	}
	if r.cutover != "" && commitID == r.cutover {
		r.cutoverReached = true
	}
}

// multiProject reports whether the repository has configured projects.
func (r *router) multiProject() bool {
	return len(r.projects) > 0
}

// inScope decides whether the block's entries belong to the changelog being
// built for filter. It validates attribution first, so a check run sees
// every error even for entries that a concrete filter would drop.
//
// A mismatched concrete filter drops the block silently; a block whose
// project cannot be determined at all is a hard error. This asymmetry is
// deliberate: it is what lets a validation run cover all projects at once.
func (r *router) inScope(b Block, filter, raw string) (bool, error) {
	if !r.multiProject() {
		return true, nil
	}

	var names []string
	if r.active != "" {
		names = []string{r.active}
	} else {
		switch b.Kind {
		case KindProjects:
			names = b.ProjectNames()
		default:
			if b.Entry.Project == "" {
				return false, &AttributionError{Reason: "missing 'project' key", Raw: raw}
			}
			names = []string{b.Entry.Project}
		}

		for _, name := range names {
			if !r.projects[name] {
				return false, &AttributionError{
					Reason: fmt.Sprintf("incorrect (not allowed in config file) project name '%s'", name),
					Raw:    raw,
				}
			}
		}
	}

	if filter == "" || filter == ForceCheckAll {
		return true, nil
	}

	for _, name := range names {
		if name == filter {
			return true, nil
		}
	}
	return false, nil
}

// entryInScope filters one expanded entry of a sequence-form block. While
// the default project is forced, override names are ignored entirely.
func (r *router) entryInScope(e Entry, filter string) bool {
	if r.active != "" {
		return true
	}
	if e.Project == "" || filter == "" || filter == ForceCheckAll {
		return true
	}
	return e.Project == filter
}
