// Package template loads the .chlog.yml configuration file: the ordered
// section taxonomy changes are filed into, and the repository settings
// (project list, default-project cutover, boundary commit, git path).
package template

import (
	"fmt"
	"io"
	"os"

	"github.com/raveheart1/chlog/internal/changelog"
	"gopkg.in/yaml.v3"
)

// Template is the parsed configuration: a fresh section tree ready to
// receive changes, plus the settings. Load a new Template per run; the tree
// is mutated in place during generation.
type Template struct {
	Tree     *changelog.Tree
	Settings Settings
}

// Settings are the non-section options of the config file.
type Settings struct {
	// SkipCommitsUpTo is a commit id; it and everything older is ignored.
	SkipCommitsUpTo string
	// GitPath is the repository path, overridable from the command line.
	GitPath string
	// Projects holds the multi-project repository settings.
	Projects ProjectSettings
}

// ProjectSettings configure multi-project repositories.
type ProjectSettings struct {
	// List is the ordered set of configured projects.
	List []Project
	// SinceCommit marks the newest commit that still requires explicit
	// project attribution; older commits belong to Default.
	SinceCommit string
	// Default is the project older commits are attributed to.
	Default string
}

// Project is one configured sub-project and the directories it owns.
type Project struct {
	Name string   `yaml:"name"`
	Dirs []string `yaml:"dirs"`
}

// Names returns the configured project names in declared order.
func (p ProjectSettings) Names() []string {
	names := make([]string, 0, len(p.List))
	for _, project := range p.List {
		names = append(names, project.Name)
	}
	return names
}

// Load reads and parses the config file at path.
func Load(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config YAML file '%s': %v", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses the config YAML from r.
func Parse(r io.Reader) (*Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config YAML file: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing config YAML file: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("error parsing config YAML file: empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("error parsing config YAML file: top level must be a mapping")
	}

	tpl := &Template{Tree: changelog.NewTree()}

	var sections *yaml.Node
	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]

		switch key {
		case "skip-commits-up-to":
			if err := stringValue(val, &tpl.Settings.SkipCommitsUpTo); err != nil {
				return nil, fmt.Errorf("'skip-commits-up-to' key in config file must be a string")
			}
		case "git-path":
			if err := stringValue(val, &tpl.Settings.GitPath); err != nil {
				return nil, fmt.Errorf("'git-path' key in config file must be a string")
			}
		case "projects":
			if err := parseProjects(val, &tpl.Settings.Projects); err != nil {
				return nil, err
			}
		case "sections":
			sections = val
		}
	}

	if sections == nil {
		return nil, fmt.Errorf("missing 'sections' key in config file")
	}
	if err := parseSections(sections, tpl.Tree); err != nil {
		return nil, err
	}

	return tpl, nil
}

// parseSections builds the ordered section tree. yaml.Node traversal is used
// instead of map decoding so the declared section order survives.
func parseSections(node *yaml.Node, tree *changelog.Tree) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("malformed 'sections' key in config file")
	}

	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		if val.Kind != yaml.MappingNode {
			return fmt.Errorf("invalid value in section '%s' in config file", key)
		}

		section, subsections, err := parseSection(key, val)
		if err != nil {
			return err
		}

		if subsections != nil {
			if subsections.Kind != yaml.MappingNode {
				return fmt.Errorf("invalid subsections format in section '%s' in config file", key)
			}
			for j := 0; j < len(subsections.Content); j += 2 {
				subKey := subsections.Content[j].Value
				subVal := subsections.Content[j+1]
				if subVal.Kind != yaml.MappingNode {
					return fmt.Errorf("invalid subsection '%s' in section '%s' in config file", subKey, key)
				}

				sub, nested, err := parseSection(subKey, subVal)
				if err != nil {
					return err
				}
				if nested != nil {
					return fmt.Errorf("subsection '%s' in section '%s' must not have subsections", subKey, key)
				}
				section.AddSubsection(sub)
			}
		}

		tree.Add(section)
	}

	return nil
}

// parseSection reads one section mapping: required title, optional
// description, optional subsections node returned for the caller to handle.
func parseSection(key string, node *yaml.Node) (*changelog.Section, *yaml.Node, error) {
	var title, description string
	var hasTitle bool
	var subsections *yaml.Node

	for i := 0; i < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "title":
			hasTitle = true
			if err := stringValue(node.Content[i+1], &title); err != nil || title == "" {
				return nil, nil, fmt.Errorf("invalid 'title' in section '%s' in config file", key)
			}
		case "description":
			// tolerate non-scalar descriptions by leaving them empty
			_ = stringValue(node.Content[i+1], &description)
		case "subsections":
			subsections = node.Content[i+1]
		}
	}

	if !hasTitle {
		return nil, nil, fmt.Errorf("missing 'title' in section '%s' in config file", key)
	}

	return changelog.NewSection(key, title, description), subsections, nil
}

// parseProjects reads the multi-project settings block.
func parseProjects(node *yaml.Node, out *ProjectSettings) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("malformed 'projects' key in config file")
	}

	var list *yaml.Node
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]

		switch key {
		case "list":
			list = val
		case "since-commit":
			if err := stringValue(val, &out.SinceCommit); err != nil {
				return fmt.Errorf("'since-commit' key in config file must be a string")
			}
		case "default":
			if err := stringValue(val, &out.Default); err != nil {
				return fmt.Errorf("'default' key in config file must be a string")
			}
		}
	}

	if list == nil {
		return fmt.Errorf("missing 'list' key in config file")
	}
	if list.Kind != yaml.SequenceNode {
		return fmt.Errorf("'list' in 'projects' in config file must be an array (list of projects)")
	}

	for _, item := range list.Content {
		var wrapper struct {
			Project Project `yaml:"project"`
		}
		if err := item.Decode(&wrapper); err != nil || wrapper.Project.Name == "" {
			return fmt.Errorf("malformed list of projects in config file")
		}
		out.List = append(out.List, wrapper.Project)
	}

	if out.SinceCommit != "" && out.Default == "" {
		return fmt.Errorf("default project name is not set in config file")
	}
	if out.Default != "" && !containsProject(out.List, out.Default) {
		return fmt.Errorf("default project name is not contained in project names list")
	}

	return nil
}

func containsProject(list []Project, name string) bool {
	for _, p := range list {
		if p.Name == name {
			return true
		}
	}
	return false
}

func stringValue(node *yaml.Node, dst *string) error {
	if node.Tag == "!!null" {
		*dst = ""
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected a string")
	}
	return node.Decode(dst)
}
