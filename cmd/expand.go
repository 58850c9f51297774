package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sagikazarmark/flowx/expand"
)

type expandOptions struct {
	commonOptions

	output  string
	clear   bool
	verbose bool
}

func NewExpandCommand(cli *Cli) *cobra.Command {
	var opts expandOptions

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand construct invocations into Go source",
		Long: `Expand every source file under --path into a Go file with the same name.
Files are written next to their sources unless --output is given.
Files with construction errors are not written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, cli, &opts)
		},
	}

	flags := cmd.Flags()

	addCommonFlags(flags, &opts.commonOptions)
	addExpandFlags(flags, &opts)

	return cmd
}

func addExpandFlags(flags *pflag.FlagSet, opts *expandOptions) {
	flags.StringVar(
		&opts.output,
		"output",
		"",
		`Output directory (defaults to writing next to the sources)`,
	)

	flags.BoolVar(
		&opts.clear,
		"clear",
		false,
		`Clear output directory before generating files`,
	)

	flags.BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		`Print every generated file`,
	)
}

func runExpand(cmd *cobra.Command, cli *Cli, opts *expandOptions) error {
	root, outputRoot, err := setupFsys(opts.path, opts.output, opts.clear)
	if err != nil {
		return err
	}
	defer root.Close()
	defer outputRoot.Close()

	expander, err := cli.expander(root.FS(), &opts.commonOptions)
	if err != nil {
		return err
	}

	count := 0

	err = expand.Generate(expand.GenerateOpts{
		Root:       root,
		Output:     outputRoot,
		Expander:   expander,
		Extensions: cli.extensions(&opts.commonOptions),
		Written: func(path string) {
			count++

			if opts.verbose {
				cmd.Printf("wrote %s\n", path)
			}
		},
	})
	if err != nil {
		return err
	}

	cmd.Printf("Expanded %d file(s)\n", count)

	return nil
}
