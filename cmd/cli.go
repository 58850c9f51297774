package cmd

import (
	"io/fs"
	"os"

	"github.com/samber/lo"

	"github.com/sagikazarmark/flowx/expand"
	"github.com/sagikazarmark/flowx/internal/config"
)

type Cli struct {
	cfg *config.Config
}

func NewCli() *Cli {
	return &Cli{}
}

func (c *Cli) Init(cfg *config.Config) {
	c.cfg = cfg
}

// expander builds an [expand.Expander] for the source tree fsys.
// Template directories from the config are loaded before the ones given on the command line.
func (c *Cli) expander(fsys fs.FS, opts *commonOptions) (*expand.Expander, error) {
	var (
		templateDirs   []string
		supportPackage string
	)

	if c.cfg != nil {
		templateDirs = append(templateDirs, c.cfg.TemplateDirs...)
		supportPackage = c.cfg.SupportPackage
	}

	templateDirs = append(templateDirs, opts.templateDirs...)

	if opts.supportPackage != "" {
		supportPackage = opts.supportPackage
	}

	return expand.New(expand.Options{
		Fsys: fsys,
		TemplateDirs: lo.Map(templateDirs, func(dir string, _ int) fs.FS {
			return os.DirFS(dir)
		}),
		SupportPackage: supportPackage,
	})
}

// extensions returns the source file extensions to look for.
func (c *Cli) extensions(opts *commonOptions) []string {
	if extensions := config.NormalizeExtensions(opts.extensions); len(extensions) > 0 {
		return extensions
	}

	if c.cfg != nil {
		return c.cfg.Extensions
	}

	return expand.DefaultExtensions
}
