package git

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignature() object.Signature {
	when, _ := time.Parse(time.RFC3339, "2023-06-13T16:26:35+02:00")
	return object.Signature{
		Name:  "Cry Wolf",
		Email: "cry.wolf@centrum.cz",
		When:  when,
	}
}

func TestFormatCommit(t *testing.T) {
	t.Parallel()

	c := &object.Commit{
		Hash:   plumbing.NewHash("7c85bee4303d56bededdfacf8fbb7bdc68e2195b"),
		Author: testSignature(),
		Message: "Don't reallocate the buffer when we know its size\n" +
			"\n" +
			"This computes the size and allocates the buffer upfront.\n" +
			"\n" +
			"changelog:\n" +
			"    section: perf\n" +
			"    title-is-enough: true\n",
	}

	raw := formatCommit(c)

	want := "commit 7c85bee4303d56bededdfacf8fbb7bdc68e2195b\n" +
		"Author: Cry Wolf <cry.wolf@centrum.cz>\n" +
		"Date:   Tue Jun 13 16:26:35 2023 +0200\n" +
		"\n" +
		"    Don't reallocate the buffer when we know its size\n" +
		"\n" +
		"    This computes the size and allocates the buffer upfront.\n" +
		"\n" +
		"    changelog:\n" +
		"        section: perf\n" +
		"        title-is-enough: true\n"

	assert.Equal(t, want, raw)

	// the formatted text parses exactly like a git log transcript
	commit, err := ParseCommit(raw)
	require.NoError(t, err)
	assert.Equal(t, "7c85bee4303d56bededdfacf8fbb7bdc68e2195b", commit.ID)
	assert.Equal(t, "Don't reallocate the buffer when we know its size\n\n    This computes the size and allocates the buffer upfront.", commit.Message)
	assert.NotEmpty(t, commit.Metadata)
	assert.False(t, commit.IsMerge())
}

func TestFormatCommitMerge(t *testing.T) {
	t.Parallel()

	c := &object.Commit{
		Hash:   plumbing.NewHash("68b0e70191bf2525f7ee96f54e2dbccc940dcbfd"),
		Author: testSignature(),
		ParentHashes: []plumbing.Hash{
			plumbing.NewHash("624c947820cba6c0665b84bfc139f209277f2a95"),
			plumbing.NewHash("22e27ce785698c4a873eb5e2ad9e0cf9c849be8d"),
		},
		Message: "Merge branch 'feature'\n",
	}

	raw := formatCommit(c)
	assert.Contains(t, raw, "Merge: 624c947 22e27ce\n")

	commit, err := ParseCommit(raw)
	require.NoError(t, err)
	assert.True(t, commit.IsMerge())
}
