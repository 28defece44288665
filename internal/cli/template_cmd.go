package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/config"
	"github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/template"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a commit-message skeleton for the staged files",
	Long: `Print a commit-message skeleton for the staged files.

Reads the staged file list from stdin (one path per line), determines the
affected project(s) from the directories configured in the template file,
and prints a pre-filled 'changelog:' block plus a commented reference of
the valid sections. Intended for a prepare-commit-msg hook:

  git diff --cached --name-only | chlog template >> "$1"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, errors.Configuration)
	}

	filePath := flagFile
	if filePath == "" {
		filePath = cfg.TemplatePath
	}

	tpl, err := template.Load(filePath)
	if err != nil {
		return errors.Wrap(err, errors.Configuration,
			"check the template file path (--file) and its YAML syntax",
		)
	}

	out, err := tpl.CommitTemplate(cmd.InOrStdin())
	if err != nil {
		return errors.Wrap(err, errors.Configuration,
			"make sure every staged file lives in a directory listed under a project's 'dirs'",
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
