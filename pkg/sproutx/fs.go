package sproutx

import (
	"errors"
	"io/fs"

	"github.com/go-sprout/sprout"
	"github.com/sagikazarmark/flowx/pkg/fsx"
)

// FSRegistry struct implements the [sprout.Registry] interface, embedding the Handler to access shared functionalities.
type FSRegistry struct {
	fsys fs.FS

	handler sprout.Handler
}

// NewFSRegistry initializes and returns a new [sprout.Registry].
func NewFSRegistry(fsys fs.FS) *FSRegistry {
	return &FSRegistry{
		fsys: fsys,
	}
}

// Implements [sprout.Registry].
func (r *FSRegistry) UID() string {
	return "sagikazarmark/flowx.fs"
}

// Implements [sprout.Registry].
func (r *FSRegistry) LinkHandler(fh sprout.Handler) error {
	r.handler = fh

	return nil
}

// Implements [sprout.Registry].
func (r *FSRegistry) RegisterFunctions(funcsMap sprout.FunctionMap) error {
	sprout.AddFunction(funcsMap, "readFileRange", r.ReadFileRange)

	return nil
}

// ReadFileRange returns lines from..to (1-based, inclusive) of a file in the source tree.
func (r *FSRegistry) ReadFileRange(name string, from int, to int) (string, error) {
	if r.fsys == nil {
		return "", errors.New("no file system available")
	}

	return fsx.ReadFileRange(r.fsys, name, from, to)
}
