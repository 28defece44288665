package changelog

import (
	"fmt"
	"strings"
)

// addChange resolves one in-scope entry, renders its markdown fragment and
// appends it to the correct section (or subsection) bucket of the tree.
//
// The section key splits on the first '.' into section and subsection; no
// dot means the change files directly under the section.
func addChange(tree *Tree, e Entry, message, raw string) error {
	title, description, err := resolveText(e, message)
	if err != nil {
		return &ExtractionError{Reason: err.Error(), Raw: raw}
	}

	secKey, subKey, _ := strings.Cut(e.Section, ".")
	secKey = strings.TrimSpace(secKey)
	subKey = strings.TrimSpace(subKey)

	section := tree.Section(secKey)
	if section == nil {
		return &AttributionError{
			Reason: fmt.Sprintf("unknown section '%s'", secKey),
			Raw:    raw,
		}
	}

	bucket := &section.Changes
	if subKey != "" {
		sub := section.Subsection(subKey)
		if sub == nil {
			return &AttributionError{
				Reason: fmt.Sprintf("unknown subsection '%s' in section '%s'", subKey, secKey),
				Raw:    raw,
			}
		}
		bucket = &sub.Changes
	}

	kind, fragment := renderFragment(title, description, e.TitleIsEnough, subKey != "")
	bucket.Add(kind, fragment)

	return nil
}

// renderFragment classifies the change and renders its markdown snippet.
// Title-only changes become flat bullets; described changes become a
// heading (one level deeper inside a subsection) with the paragraph below.
func renderFragment(title, description string, titleIsEnough, inSubsection bool) (ChangeKind, string) {
	if titleIsEnough || description == "" {
		return TitleOnly, "* " + title + "\n\n"
	}

	heading := "### "
	if inSubsection {
		heading = "#### "
	}
	return Described, heading + title + "\n\n" + description + "\n\n"
}
