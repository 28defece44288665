package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawCommit = `commit 7c85bee4303d56bededdfacf8fbb7bdc68e2195b
Author: Cry Wolf <cry.wolf@centrum.cz>
Date:   Tue Jun 13 16:26:35 2023 +0200

    Don't reallocate the buffer when we know its size

    This computes the size and allocates the buffer upfront.
    Avoiding allocations like this introduces 10% speedup.

    changelog:
        section: perf
        title: Improved processing speed by 10%
        title-is-enough: true

`

func TestParseCommit(t *testing.T) {
	t.Parallel()

	commit, err := ParseCommit(rawCommit)
	require.NoError(t, err)

	assert.Equal(t, "7c85bee4303d56bededdfacf8fbb7bdc68e2195b", commit.ID)
	assert.Equal(t, "commit 7c85bee4303d56bededdfacf8fbb7bdc68e2195b\nAuthor: Cry Wolf <cry.wolf@centrum.cz>\nDate:   Tue Jun 13 16:26:35 2023 +0200", commit.Header)
	assert.Equal(t, "Don't reallocate the buffer when we know its size\n\n    This computes the size and allocates the buffer upfront.\n    Avoiding allocations like this introduces 10% speedup.", commit.Message)
	assert.Equal(t, "\n        section: perf\n        title: Improved processing speed by 10%\n        title-is-enough: true\n\n", commit.Metadata)
	assert.Equal(t, rawCommit, commit.Raw)
	assert.False(t, commit.IsMerge())
}

func TestParseCommitWindowsLineEndings(t *testing.T) {
	t.Parallel()

	raw := strings.ReplaceAll(rawCommit, "\n", "\r\n")

	commit, err := ParseCommit(raw)
	require.NoError(t, err)

	assert.Equal(t, "7c85bee4303d56bededdfacf8fbb7bdc68e2195b", commit.ID)
	assert.NotContains(t, commit.Header, "\r")
	assert.NotContains(t, commit.Message, "\r")
	assert.NotContains(t, commit.Metadata, "\r")
}

func TestParseCommitVariants(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw          string
		wantID       string
		wantMerge    bool
		wantMetadata bool
		wantErr      bool
	}{
		"without changelog block": {
			raw: `commit 7c85bee4303d56bededdfacf8fbb7bdc68e2195b
Author: Cry Wolf <cry.wolf@centrum.cz>
Date:   Tue Jun 13 16:26:35 2023 +0200

    Don't reallocate the buffer when we know its size
`,
			wantID: "7c85bee4303d56bededdfacf8fbb7bdc68e2195b",
		},
		"merge commit": {
			raw: `commit 7c85bee4303d56bededdfacf8fbb7bdc68e2195b
Merge: 624c947 22e27ce
Author: Cry Wolf <cry.wolf@centrum.cz>
Date:   Tue Jun 13 16:26:35 2023 +0200

    Merge branch 'feature'
`,
			wantID:    "7c85bee4303d56bededdfacf8fbb7bdc68e2195b",
			wantMerge: true,
		},
		"decorated head": {
			raw: `commit 68b0e70191bf2525f7ee96f54e2dbccc940dcbfd (HEAD -> master, origin/master)
Author: Cry Wolf <cry.wolf@centrum.cz>
Date:   Tue Dec 5 20:25:07 2023 +0100

    Some change

    changelog: skip
`,
			wantID:       "68b0e70191bf2525f7ee96f54e2dbccc940dcbfd",
			wantMetadata: true,
		},
		"no blank line after header": {
			raw:     "commit 7c85bee4303d56bededdfacf8fbb7bdc68e2195b",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			commit, err := ParseCommit(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "could not extract commit message text")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, commit.ID)
			assert.Equal(t, tt.wantMerge, commit.IsMerge())
			if tt.wantMetadata {
				assert.NotEmpty(t, commit.Metadata)
			} else {
				assert.Empty(t, commit.Metadata)
			}
		})
	}
}

func TestSplitLog(t *testing.T) {
	t.Parallel()

	log := `commit a1a654e256cc96e1c4b5a81845b5e3f3f0aa9ed3
Author: Cry Wolf <cry.wolf@centrum.cz>
Date:   Tue Jun 13 16:25:29 2023 +0200

    Fixed grammar mistakes.

    We found 42 grammar mistakes that are fixed in this commit.

    changelog: skip

commit 62db026b0ead7f0659df10c70e402c70ede5d7dd
Author: Cry Wolf <cry.wolf@centrum.cz>
Date:   Tue Jun 13 16:24:22 2023 +0200

    Added ability to skip commits.

    This allows commits to be skipped by typing 'changelog: skip'
    at the end of the commit. This is mainly useful for typo
    fixes or other things irrelevant to the user of a project.

    changelog:
        section: features`

	commits, err := SplitLog(log)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "a1a654e256cc96e1c4b5a81845b5e3f3f0aa9ed3", commits[0].ID)
	assert.Equal(t, "62db026b0ead7f0659df10c70e402c70ede5d7dd", commits[1].ID)
	assert.Equal(t, "skip", strings.TrimSpace(commits[0].Metadata))
}

func TestSplitLogEmpty(t *testing.T) {
	t.Parallel()

	commits, err := SplitLog("")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestReaderSourceBareMessage(t *testing.T) {
	t.Parallel()

	// a commit-msg hook passes the message text without a commit header
	msg := `Added ability to skip commits.

changelog:
    section: features
`

	commits, err := ReaderSource{R: strings.NewReader(msg)}.Commits()
	require.NoError(t, err)
	require.Len(t, commits, 1)

	assert.Equal(t, "commit FROM STDIN", commits[0].Header)
	assert.Equal(t, "Added ability to skip commits.", commits[0].Message)
	assert.NotEmpty(t, commits[0].Metadata)
}

func TestReaderSourceFullLog(t *testing.T) {
	t.Parallel()

	commits, err := ReaderSource{R: strings.NewReader(rawCommit)}.Commits()
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "7c85bee4303d56bededdfacf8fbb7bdc68e2195b", commits[0].ID)
}
