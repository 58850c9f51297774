package expand

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/go-sprout/sprout"
	sproutstrings "github.com/go-sprout/sprout/registry/strings"

	"github.com/sagikazarmark/flowx/pkg/sproutx"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// templatePatterns are the files loaded from every template directory.
var templatePatterns = []string{
	"*.tmpl",
	"templates/*.tmpl",
}

// createTemplate parses the built-in templates, then the templates found in
// templateDirs in order. A template with the same file name as an earlier one
// replaces it.
func createTemplate(fsys fs.FS, templateDirs []fs.FS) (*template.Template, error) {
	funcs := sprout.New(
		sprout.WithRegistries(
			sproutstrings.NewRegistry(),
			sproutx.NewStringsRegistry(),
			sproutx.NewGoRegistry(),
			sproutx.NewFSRegistry(fsys),
		),
	).Build()

	tpl := template.New("flowx").Funcs(funcs).Option("missingkey=error")

	tpl, err := parseTemplatePatterns(tpl, builtinTemplates, []string{"templates/*.tmpl"})
	if err != nil {
		return nil, fmt.Errorf("parse built-in templates: %w", err)
	}

	for i, dir := range templateDirs {
		tpl, err = parseTemplatePatterns(tpl, dir, templatePatterns)
		if err != nil {
			return nil, fmt.Errorf("parse template directory %d: %w", i, err)
		}
	}

	return tpl, nil
}

// parseTemplatePatterns parses every file matching patterns into tpl.
// Patterns matching nothing are skipped.
func parseTemplatePatterns(tpl *template.Template, fsys fs.FS, patterns []string) (*template.Template, error) {
	for _, pattern := range patterns {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}

		if len(matches) == 0 {
			continue
		}

		tpl, err = tpl.ParseFS(fsys, matches...)
		if err != nil {
			return nil, err
		}
	}

	return tpl, nil
}

// render executes the template of c and returns the generated Go code.
func render(tpl *template.Template, c construct) (string, error) {
	var buf strings.Builder

	err := tpl.ExecuteTemplate(&buf, c.template(), c)
	if err != nil {
		return "", err
	}

	// Trailing newlines would end the statement early inside expressions.
	return strings.TrimSpace(buf.String()), nil
}

// headerData is passed to the header template.
type headerData struct {
	Source string
}
