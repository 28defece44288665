package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/changelog"
)

var genWatchFlag bool

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Process git history and output the changelog in markdown format",
	Long: `Process git history and output the changelog in markdown format.

The document is assembled from the 'changelog:' metadata blocks of the
commits and the section tree of the template file, and printed to stdout
between fixed delimiter lines.

Examples:
  chlog gen                      # Changelog for a single-project repository
  chlog gen -p mylib             # Changelog for one configured project
  chlog gen -c 276aa9e           # Skip the given commit and everything older
  chlog gen --watch              # Re-generate whenever the repository changes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().BoolVar(&genWatchFlag, "watch", false, "Re-generate when the repository changes")
}

func runGen(cmd *cobra.Command) error {
	if genWatchFlag {
		return watchAndGenerate(cmd)
	}
	return generateOnce(cmd)
}

// generateOnce loads everything fresh and prints one document.
func generateOnce(cmd *cobra.Command) error {
	r, err := newRun(cmd, changelog.ModeGenerate)
	if err != nil {
		return err
	}

	out, err := r.execute(changelog.ModeGenerate)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
