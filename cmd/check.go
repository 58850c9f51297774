package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagikazarmark/flowx/expand"
	"github.com/sagikazarmark/flowx/pkg/fsx"
)

// excerptRadius is the number of lines printed around an error.
const excerptRadius = 1

func NewCheckCommand(cli *Cli) *cobra.Command {
	var opts commonOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report construction errors without writing files",
		Long:  `Check every source file under --path and print each construction error with the surrounding source lines. Fails if any error is found.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cli, &opts)
		},
	}

	addCommonFlags(cmd.Flags(), &opts)

	return cmd
}

func runCheck(cmd *cobra.Command, cli *Cli, opts *commonOptions) error {
	root, err := os.OpenRoot(opts.path)
	if err != nil {
		return err
	}
	defer root.Close()

	fsys := root.FS()

	expander, err := cli.expander(fsys, opts)
	if err != nil {
		return err
	}

	sources, err := expand.FindSources(fsys, cli.extensions(opts))
	if err != nil {
		return err
	}

	failed := 0

	for _, source := range sources {
		src, err := fs.ReadFile(fsys, source)
		if err != nil {
			return fmt.Errorf("read %s: %w", source, err)
		}

		err = expander.Check(source, src)
		if err == nil {
			continue
		}

		failed++

		shapeErrs := expand.ShapeErrors(err)
		if len(shapeErrs) == 0 {
			cmd.PrintErrf("%s: %s\n", source, err)

			continue
		}

		for _, shapeErr := range shapeErrs {
			cmd.PrintErrln(shapeErr.Error())
			cmd.PrintErr(excerpt(fsys, shapeErr.Pos))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) have errors", failed, len(sources))
	}

	cmd.Printf("Checked %d file(s)\n", len(sources))

	return nil
}

// excerpt renders the source lines around pos with a marker under the column.
func excerpt(fsys fs.FS, pos expand.Position) string {
	lines, err := fsx.ReadFileAround(fsys, pos.Filename, pos.Line, excerptRadius)
	if err != nil {
		return ""
	}

	width := len(fmt.Sprint(pos.Line + excerptRadius))

	var b strings.Builder

	for _, line := range lines {
		fmt.Fprintf(&b, "  %*d | %s\n", width, line.Number, line.Text)

		if line.Number == pos.Line {
			// Keep tabs so the marker lines up with the source.
			prefix := line.Text[:min(pos.Column-1, len(line.Text))]
			padding := strings.Map(func(r rune) rune {
				if r == '\t' {
					return r
				}

				return ' '
			}, prefix)

			fmt.Fprintf(&b, "  %*s | %s^\n", width, "", padding)
		}
	}

	return b.String()
}
