package changelog

// ChangeKind classifies a rendered change fragment.
type ChangeKind int

const (
	// TitleOnly is a change rendered as a single bullet line.
	TitleOnly ChangeKind = iota
	// Described is a change rendered as a heading followed by a paragraph.
	Described
)

// Changes collects rendered fragments for one section or subsection.
// Title-only fragments always render before described ones so terse entries
// cluster at the top, regardless of commit order.
type Changes struct {
	titleOnly []string
	described []string
}

// Add appends a rendered fragment to the bucket for its kind.
func (c *Changes) Add(kind ChangeKind, fragment string) {
	switch kind {
	case TitleOnly:
		c.titleOnly = append(c.titleOnly, fragment)
	case Described:
		c.described = append(c.described, fragment)
	}
}

// Empty reports whether no fragments have been added.
func (c *Changes) Empty() bool {
	return len(c.titleOnly) == 0 && len(c.described) == 0
}

// String concatenates all fragments, title-only bucket first.
func (c *Changes) String() string {
	var out string
	for _, f := range c.titleOnly {
		out += f
	}
	for _, f := range c.described {
		out += f
	}
	return out
}

// Section is one node of the configured section tree. Sections may carry
// subsections one level deep; subsections never nest further.
type Section struct {
	Key         string
	Title       string
	Description string
	Changes     Changes

	subs  []*Section
	byKey map[string]*Section
}

// NewSection returns a section with the given key, title and description.
func NewSection(key, title, description string) *Section {
	return &Section{
		Key:         key,
		Title:       title,
		Description: description,
		byKey:       make(map[string]*Section),
	}
}

// AddSubsection appends sub in declared order.
func (s *Section) AddSubsection(sub *Section) {
	s.subs = append(s.subs, sub)
	s.byKey[sub.Key] = sub
}

// Subsection returns the named subsection, or nil.
func (s *Section) Subsection(key string) *Section {
	return s.byKey[key]
}

// Subsections returns the subsections in declared order.
func (s *Section) Subsections() []*Section {
	return s.subs
}

// HasChanges reports whether the section or any of its subsections has
// accumulated at least one change.
func (s *Section) HasChanges() bool {
	if !s.Changes.Empty() {
		return true
	}
	for _, sub := range s.subs {
		if !sub.Changes.Empty() {
			return true
		}
	}
	return false
}

// Tree is the ordered section taxonomy built from configuration. Keys are
// fixed after construction; only the change buckets grow during a run.
type Tree struct {
	sections []*Section
	byKey    map[string]*Section
}

// NewTree returns an empty section tree.
func NewTree() *Tree {
	return &Tree{byKey: make(map[string]*Section)}
}

// Add appends a section in declared order.
func (t *Tree) Add(s *Section) {
	t.sections = append(t.sections, s)
	t.byKey[s.Key] = s
}

// Section returns the named section, or nil.
func (t *Tree) Section(key string) *Section {
	return t.byKey[key]
}

// Sections returns the sections in declared order.
func (t *Tree) Sections() []*Section {
	return t.sections
}
