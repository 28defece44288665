package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/raveheart1/chlog/internal/changelog"
	"github.com/raveheart1/chlog/internal/config"
	"github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/git"
	"github.com/raveheart1/chlog/internal/template"
)

// run holds everything one generation or check pass needs: the freshly
// loaded template (its section tree is consumed by the pass) and the commit
// source. A new run is assembled per invocation so watch mode and tests
// never share mutated state.
type run struct {
	tpl     *template.Template
	source  git.Source
	project string
}

// newRun resolves configuration, flags and template settings into a run.
// Flags win over template settings, template settings win over tool config.
func newRun(cmd *cobra.Command, mode changelog.Mode) (*run, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	filePath := flagFile
	if filePath == "" {
		filePath = cfg.TemplatePath
	}

	tpl, err := template.Load(filePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration,
			"check the template file path (--file) and its YAML syntax",
		)
	}

	project := flagProject
	if project == "" {
		project = cfg.Project
	}

	names := tpl.Settings.Projects.Names()
	if project == "" && len(names) > 0 && mode == changelog.ModeGenerate {
		return nil, errors.NewArgumentError(
			"you need to specify a project name for a multi-project repository",
			"pass --project <name> with one of the configured projects",
			"run 'chlog check' instead if you only want to validate commits",
		)
	}
	if project != "" && len(names) == 0 {
		return nil, errors.NewArgumentError(
			"omit the --project option '"+project+"', repository is not configured as multi-project",
		)
	}

	return &run{
		tpl:     tpl,
		source:  commitSource(cmd, cfg, tpl),
		project: project,
	}, nil
}

// commitSource picks where commits come from: stdin for hook usage, the
// repository otherwise.
func commitSource(cmd *cobra.Command, cfg *config.Configuration, tpl *template.Template) git.Source {
	if flagFromStdin {
		return git.ReaderSource{R: cmd.InOrStdin()}
	}

	boundary := flagCommit
	if boundary == "" {
		boundary = tpl.Settings.SkipCommitsUpTo
	}

	gitPath := flagGitPath
	if gitPath == "" {
		gitPath = tpl.Settings.GitPath
	}
	if gitPath == "" {
		gitPath = cfg.GitPath
	}

	return git.RepoSource{Path: gitPath, Boundary: boundary}
}

// execute performs the pass and returns the rendered document.
func (r *run) execute(mode changelog.Mode) (string, error) {
	gen := changelog.New(r.tpl.Tree, r.source)

	return gen.Run(changelog.Options{
		Projects:       r.tpl.Settings.Projects.Names(),
		DefaultProject: r.tpl.Settings.Projects.Default,
		CutoverCommit:  r.tpl.Settings.Projects.SinceCommit,
		Project:        r.project,
		Mode:           mode,
	})
}
