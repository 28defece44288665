package changelog

import "strings"

// Delimiter bounds the generated document so downstream consumers can find
// machine-generated content inside a larger file.
const Delimiter = "============================================"

// Render walks the tree in its declared order and serializes the final
// markdown document. Sections without any accumulated change, including in
// their subsections, are omitted entirely.
func Render(tree *Tree) string {
	var b strings.Builder

	b.WriteString(Delimiter)
	b.WriteString("\n\n")

	for _, sec := range tree.Sections() {
		if !sec.HasChanges() {
			continue
		}

		b.WriteString("## ")
		b.WriteString(sec.Title)
		b.WriteString("\n\n")
		if sec.Description != "" {
			b.WriteString(sec.Description)
			b.WriteString("\n\n")
		}

		b.WriteString(sec.Changes.String())

		for _, sub := range sec.Subsections() {
			if sub.Changes.Empty() {
				continue
			}

			b.WriteString("### ")
			b.WriteString(sub.Title)
			b.WriteString("\n\n")
			if sub.Description != "" {
				b.WriteString(sub.Description)
				b.WriteString("\n\n")
			}

			b.WriteString(sub.Changes.String())
		}
	}

	b.WriteString(Delimiter)

	return b.String()
}
