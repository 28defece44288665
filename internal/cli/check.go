package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/changelog"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the structure of commit messages",
	Long: `Verify the structure of commit messages.

Runs the full changelog pass for its validation side effects: metadata
blocks are parsed strictly, project attribution and section names are
checked against the template. Nothing is printed to stdout on success.

In a multi-project repository no --project is needed; every commit is
validated regardless of the project it belongs to.

Examples:
  chlog check                    # Validate the repository history
  chlog check --from-stdin       # Validate a commit message from stdin (commit-msg hook)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	r, err := newRun(cmd, changelog.ModeCheck)
	if err != nil {
		return err
	}

	if _, err := r.execute(changelog.ModeCheck); err != nil {
		return err
	}

	// stdout stays empty so hook scripts can pipe it; the confirmation is
	// informational only
	fmt.Fprintln(cmd.ErrOrStderr(), "✓ commit messages valid")
	return nil
}
