package expand

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/samber/lo"
)

// DefaultExtensions are the source file extensions expanded by [Generate].
var DefaultExtensions = []string{".gox"}

// GenerateOpts contains options for the Generate function
type GenerateOpts struct {
	Root     *os.Root
	Output   *os.Root
	Expander *Expander

	// Extensions of source files; defaults to [DefaultExtensions].
	Extensions []string

	// Written, when set, is called with the path of every generated file.
	Written func(path string)
}

// Generate expands every source file under Root and writes the result to
// the same relative path under Output, with the extension replaced by ".go".
//
// Files with errors produce no output; their errors are joined and returned
// after every file has been processed.
func Generate(opts GenerateOpts) error {
	sources, err := FindSources(opts.Root.FS(), opts.Extensions)
	if err != nil {
		return err
	}

	var errs []error

	for _, source := range sources {
		err := generateFile(opts, source)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// FindSources returns the paths of all source files in fsys.
// Hidden directories, "testdata", "vendor" and directories starting with an
// underscore are skipped.
func FindSources(fsys fs.FS, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	var sources []string

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != "." && skipDir(d.Name()) {
				return fs.SkipDir
			}

			return nil
		}

		if lo.Contains(extensions, strings.ToLower(path.Ext(p))) {
			sources = append(sources, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk source directory: %w", err)
	}

	return sources, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "_") ||
		name == "testdata" ||
		name == "vendor"
}

// OutputPath returns the path of the file generated from source.
func OutputPath(source string) string {
	return strings.TrimSuffix(source, path.Ext(source)) + ".go"
}

func generateFile(opts GenerateOpts, source string) error {
	src, err := fs.ReadFile(opts.Root.FS(), source)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	code, err := opts.Expander.ExpandSource(source, src)
	if err != nil {
		return fmt.Errorf("expand %s: %w", source, err)
	}

	output := OutputPath(source)

	err = mkdirAll(opts.Output, path.Dir(output))
	if err != nil {
		return fmt.Errorf("create directory for %s: %w", output, err)
	}

	err = writeFile(opts.Output, output, code)
	if err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	if opts.Written != nil {
		opts.Written(output)
	}

	return nil
}

func writeFile(root *os.Root, name string, data []byte) error {
	file, err := root.Create(name)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()

		return err
	}

	return file.Close()
}

// mkdirAll creates dir and its parents inside root.
func mkdirAll(root *os.Root, dir string) error {
	if dir == "." || dir == "" {
		return nil
	}

	current := ""

	for _, segment := range strings.Split(dir, "/") {
		current = path.Join(current, segment)

		err := root.Mkdir(current, 0o755)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}

	return nil
}
