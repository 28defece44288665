// Package changelog assembles a curated markdown changelog from commit
// records. Each commit carries a `changelog:` metadata block that names the
// section the change belongs to and optionally overrides its title and
// description; the package parses those blocks, attributes entries to
// projects in multi-project repositories, files them into the configured
// section tree and renders the final document.
//
// All state is scoped to a single run: the section tree and the routing
// state are owned by the Generator, so independent runs never interfere.
package changelog
