package changelog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// BlockKind discriminates the three shapes a metadata block can take.
type BlockKind int

const (
	// KindSkip is the scalar `skip` shorthand.
	KindSkip BlockKind = iota
	// KindEntry is a single map-shaped entry.
	KindEntry
	// KindProjects is a sequence of per-project override maps.
	KindProjects
)

// Entry is one parsed changelog entry. For the sequence form, each override
// expands into its own Entry with Project set to the override's name.
type Entry struct {
	Skip          bool
	Project       string
	Section       string
	Title         string
	TitleIsEnough bool
	Description   string
}

// Override is one element of the sequence form: an independent entry for a
// named sub-project affected by the same commit.
type Override struct {
	Name          string
	Skip          bool
	Section       string
	Title         string
	TitleIsEnough bool
	Description   string
}

// Block is the parse result of one metadata block.
type Block struct {
	Kind      BlockKind
	Entry     Entry      // valid for KindSkip and KindEntry
	Overrides []Override // valid for KindProjects
}

// Entries expands the block into the entries it contributes. Skipped
// overrides are kept; the caller decides what skipping means.
func (b Block) Entries() []Entry {
	if b.Kind != KindProjects {
		return []Entry{b.Entry}
	}

	entries := make([]Entry, 0, len(b.Overrides))
	for _, o := range b.Overrides {
		entries = append(entries, Entry{
			Skip:          o.Skip,
			Project:       o.Name,
			Section:       o.Section,
			Title:         o.Title,
			TitleIsEnough: o.TitleIsEnough,
			Description:   o.Description,
		})
	}
	return entries
}

// ProjectNames returns the override names in declared order.
func (b Block) ProjectNames() []string {
	names := make([]string, 0, len(b.Overrides))
	for _, o := range b.Overrides {
		names = append(names, o.Name)
	}
	return names
}

// ParseBlock parses the raw metadata block of one commit. Three shapes are
// accepted: the literal `skip`, a map of entry fields, or a sequence of
// single-key `project:` maps. The schema is fail-closed: any key outside the
// recognized set is an error so typos never get silently dropped.
//
// The text is taken exactly as it follows the `changelog:` marker in the
// commit message: its first line is unindented while the rest kept git's
// indentation, so it only parses re-nested under the marker key.
func ParseBlock(text string) (Block, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte("changelog:"+text), &doc); err != nil {
		return Block{}, fmt.Errorf("invalid YAML: %v", err)
	}

	root := blockValue(&doc)
	if root == nil || root.Tag == "!!null" {
		return Block{}, fmt.Errorf("empty changelog message")
	}

	switch root.Kind {
	case yaml.ScalarNode:
		if strings.TrimSpace(root.Value) != "skip" {
			return Block{}, fmt.Errorf("unexpected value '%s'", strings.TrimSpace(root.Value))
		}
		return Block{Kind: KindSkip, Entry: Entry{Skip: true}}, nil

	case yaml.MappingNode:
		entry, err := parseEntry(root)
		if err != nil {
			return Block{}, err
		}
		return Block{Kind: KindEntry, Entry: entry}, nil

	case yaml.SequenceNode:
		overrides, err := parseOverrides(root)
		if err != nil {
			return Block{}, err
		}
		return Block{Kind: KindProjects, Overrides: overrides}, nil
	}

	return Block{}, fmt.Errorf("expected string, map or sequence")
}

// blockValue digs out the value nested under the synthetic `changelog:` key.
func blockValue(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode || len(root.Content) < 2 {
		return nil
	}
	return root.Content[1]
}

// parseEntry decodes the map form of a metadata block.
func parseEntry(node *yaml.Node) (Entry, error) {
	var e Entry
	var hasSection bool

	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]

		var err error
		switch key {
		case "skip":
			err = decodeBool(val, key, &e.Skip)
		case "project":
			err = decodeString(val, key, &e.Project)
		case "section":
			hasSection = true
			err = decodeString(val, key, &e.Section)
		case "title":
			err = decodeString(val, key, &e.Title)
		case "title-is-enough":
			err = decodeBool(val, key, &e.TitleIsEnough)
		case "description":
			err = decodeString(val, key, &e.Description)
		case "inherit":
			// accepted and ignored, kept for older commit history
		default:
			return Entry{}, fmt.Errorf("unknown key '%s'", key)
		}
		if err != nil {
			return Entry{}, err
		}
	}

	if !hasSection && !e.Skip {
		return Entry{}, fmt.Errorf("missing 'section' key")
	}

	return e, nil
}

// parseOverrides decodes the sequence form: one single-key `project:` map
// per affected sub-project.
func parseOverrides(node *yaml.Node) ([]Override, error) {
	overrides := make([]Override, 0, len(node.Content))

	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 || item.Content[0].Value != "project" {
			return nil, fmt.Errorf("expected a single 'project' key in each list item")
		}

		o, err := parseOverride(item.Content[1])
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}

	return overrides, nil
}

func parseOverride(node *yaml.Node) (Override, error) {
	if node.Kind != yaml.MappingNode {
		return Override{}, fmt.Errorf("malformed 'project' entry")
	}

	var o Override
	var hasSection bool

	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]

		var err error
		switch key {
		case "name":
			err = decodeString(val, key, &o.Name)
		case "skip":
			err = decodeBool(val, key, &o.Skip)
		case "section":
			hasSection = true
			err = decodeString(val, key, &o.Section)
		case "title":
			err = decodeString(val, key, &o.Title)
		case "title-is-enough":
			err = decodeBool(val, key, &o.TitleIsEnough)
		case "description":
			err = decodeString(val, key, &o.Description)
		case "inherit":
			// accepted and ignored
		default:
			return Override{}, fmt.Errorf("unknown key '%s' in project entry", key)
		}
		if err != nil {
			return Override{}, err
		}
	}

	if o.Name == "" {
		return Override{}, fmt.Errorf("missing 'name' key in project entry")
	}
	if !hasSection && !o.Skip {
		return Override{}, fmt.Errorf("missing 'section' key in project entry")
	}

	return o, nil
}

func decodeString(node *yaml.Node, key string, dst *string) error {
	if node.Tag == "!!null" {
		*dst = ""
		return nil
	}
	if err := node.Decode(dst); err != nil {
		return fmt.Errorf("invalid value for key '%s'", key)
	}
	return nil
}

func decodeBool(node *yaml.Node, key string, dst *bool) error {
	if node.Tag == "!!null" {
		*dst = false
		return nil
	}
	if err := node.Decode(dst); err != nil {
		return fmt.Errorf("invalid value for key '%s'", key)
	}
	return nil
}
