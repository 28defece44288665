// Package cli wires the chlog commands: gen, check and template.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/version"
)

var (
	flagFile      string
	flagGitPath   string
	flagCommit    string
	flagProject   string
	flagFromStdin bool
)

var rootCmd = &cobra.Command{
	Use:   "chlog",
	Short: "Generate user-facing changelogs from commit metadata",
	Long: `chlog turns annotated git history into a curated changelog.

Each commit carries a small 'changelog:' YAML block naming the section the
change belongs to, with optional title/description overrides, project
attribution for multi-project repositories, or a 'skip' shorthand. chlog
validates those blocks and assembles the sections defined in .chlog.yml
into the final markdown document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.BuildDate),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Path to the template file (default \".chlog.yml\")")
	rootCmd.PersistentFlags().StringVarP(&flagGitPath, "git-path", "g", "", "Path to the git repository (default \"./\")")
	rootCmd.PersistentFlags().StringVarP(&flagCommit, "commit", "c", "", "Commit id; this one and older commits are skipped")
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "Project to generate the changelog for (multi-project repositories)")
	rootCmd.PersistentFlags().BoolVar(&flagFromStdin, "from-stdin", false, "Read commit(s) from stdin instead of the repository")
}

// Execute runs the CLI. Errors are printed in structured form; the caller
// only decides the exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		errors.PrintError(errors.Classify(err))
	}
	return err
}

// Run executes the CLI with explicit streams and arguments, for tests that
// drive the commands in-process. Flag state is reset first since cobra
// keeps the package-level values across invocations.
func Run(stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	flagFile = ""
	flagGitPath = ""
	flagCommit = ""
	flagProject = ""
	flagFromStdin = false
	genWatchFlag = false

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
