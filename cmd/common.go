package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

// commonOptions contains options that are shared between commands
type commonOptions struct {
	path           string
	extensions     []string
	templateDirs   []string
	supportPackage string
}

// addCommonFlags adds the common flags to a command
func addCommonFlags(flags *pflag.FlagSet, opts *commonOptions) {
	flags.StringVar(
		&opts.path,
		"path",
		".",
		`Path to load sources from`,
	)

	flags.StringSliceVar(
		&opts.extensions,
		"extension",
		[]string{},
		`Source file extensions (defaults to the configured extensions)`,
	)

	addTemplateFlags(flags, opts)
}

// addTemplateFlags adds the flags configuring code generation to a command
func addTemplateFlags(flags *pflag.FlagSet, opts *commonOptions) {
	flags.StringSliceVar(
		&opts.templateDirs,
		"template-dir",
		[]string{},
		`Template directories overriding built-in construct templates (can be specified multiple times)`,
	)

	flags.StringVar(
		&opts.supportPackage,
		"support-package",
		"",
		`Import path of the package providing tuple and pointer helpers`,
	)
}

// setupFsys opens the source tree and the output directory.
// Without an output directory files are generated next to their sources.
func setupFsys(path string, output string, clear bool) (*os.Root, *os.Root, error) {
	root, err := os.OpenRoot(path)
	if err != nil {
		return nil, nil, err
	}

	if output == "" {
		if clear {
			return nil, nil, fmt.Errorf("--clear requires an output directory")
		}

		return root, root, nil
	}

	same, err := samePath(path, output)
	if err != nil {
		return nil, nil, err
	}

	if same {
		return root, root, nil
	}

	// If clear is true, always remove the directory first
	if clear {
		err = os.RemoveAll(output)
		if err != nil && !os.IsNotExist(err) {
			return nil, nil, err
		}
	}

	// Create the output directory
	err = os.MkdirAll(output, 0o755)
	if err != nil {
		return nil, nil, err
	}

	// If clear is false, check if directory is empty
	if !clear {
		if empty, err := isDirEmptyPath(output); err != nil {
			return nil, nil, err
		} else if !empty {
			return nil, nil, fmt.Errorf("output directory '%s' is not empty. Use --clear to remove it first", output)
		}
	}

	outputRoot, err := os.OpenRoot(output)
	if err != nil {
		return nil, nil, err
	}

	return root, outputRoot, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}

	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}

	return absA == absB, nil
}

// isDirEmptyPath checks if a directory path is empty
func isDirEmptyPath(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
