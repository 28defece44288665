package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterCutover(t *testing.T) {
	t.Parallel()

	r := newRouter([]string{"chlog", "chlog-action"}, "chlog", "1111")

	// newest commit, before the cutover: explicit attribution required
	r.advance("3333")
	assert.Empty(t, r.active)

	// the cutover commit itself still needs explicit attribution
	r.advance("1111")
	assert.Empty(t, r.active)

	// everything older belongs to the default project
	r.advance("0000")
	assert.Equal(t, "chlog", r.active)

	r.advance("aaaa")
	assert.Equal(t, "chlog", r.active)
}

func TestRouterNoDefaultProjectStaysInert(t *testing.T) {
	t.Parallel()

	r := newRouter([]string{"chlog"}, "", "1111")

	r.advance("1111")
	r.advance("0000")
	assert.Empty(t, r.active)
}

func TestRouterInScope(t *testing.T) {
	t.Parallel()

	entryBlock := func(project string) Block {
		return Block{Kind: KindEntry, Entry: Entry{Project: project, Section: "features"}}
	}

	tests := map[string]struct {
		projects []string
		active   string
		block    Block
		filter   string
		want     bool
		wantErr  string
	}{
		"single-project repository accepts everything": {
			block: entryBlock(""),
			want:  true,
		},
		"matching filter": {
			projects: []string{"chlog", "chlog-action"},
			block:    entryBlock("chlog"),
			filter:   "chlog",
			want:     true,
		},
		"mismatched filter drops silently": {
			projects: []string{"chlog", "chlog-action"},
			block:    entryBlock("chlog-action"),
			filter:   "chlog",
			want:     false,
		},
		"missing project is a hard error": {
			projects: []string{"chlog"},
			block:    entryBlock(""),
			filter:   "chlog",
			wantErr:  "missing 'project' key",
		},
		"unknown project is a hard error": {
			projects: []string{"chlog"},
			block:    entryBlock("wrong-name"),
			filter:   "chlog",
			wantErr:  "incorrect (not allowed in config file) project name 'wrong-name'",
		},
		"force check all validates but never drops": {
			projects: []string{"chlog", "chlog-action"},
			block:    entryBlock("chlog-action"),
			filter:   ForceCheckAll,
			want:     true,
		},
		"force check all still reports unknown projects": {
			projects: []string{"chlog"},
			block:    entryBlock("wrong-name"),
			filter:   ForceCheckAll,
			wantErr:  "incorrect (not allowed in config file) project name 'wrong-name'",
		},
		"sequence block matches on any override name": {
			projects: []string{"chlog", "chlog-action"},
			block: Block{Kind: KindProjects, Overrides: []Override{
				{Name: "chlog", Section: "dev"},
				{Name: "chlog-action", Section: "features"},
			}},
			filter: "chlog-action",
			want:   true,
		},
		"active default project overrides the metadata": {
			projects: []string{"chlog", "chlog-action"},
			active:   "chlog",
			block:    entryBlock("chlog-action"),
			filter:   "chlog",
			want:     true,
		},
		"active default project drops for other filters": {
			projects: []string{"chlog", "chlog-action"},
			active:   "chlog",
			block:    entryBlock("chlog-action"),
			filter:   "chlog-action",
			want:     false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := newRouter(tt.projects, "", "")
			r.active = tt.active

			ok, err := r.inScope(tt.block, tt.filter, "raw commit text")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestRouterEntryInScope(t *testing.T) {
	t.Parallel()

	r := newRouter([]string{"chlog", "chlog-action"}, "", "")

	assert.True(t, r.entryInScope(Entry{Project: "chlog"}, "chlog"))
	assert.False(t, r.entryInScope(Entry{Project: "chlog-action"}, "chlog"))
	assert.True(t, r.entryInScope(Entry{Project: "chlog-action"}, ForceCheckAll))
	assert.True(t, r.entryInScope(Entry{}, "chlog"))

	// while the default project is forced, override names are ignored
	r.active = "chlog"
	assert.True(t, r.entryInScope(Entry{Project: "chlog-action"}, "chlog"))
}
