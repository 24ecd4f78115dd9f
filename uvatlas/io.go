package uvatlas

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Load opens a file and decodes it with a reader function, such as
// ReadAtlas or model3d.ReadSTL.
func Load[T any](path string, f func(r io.Reader) (T, error)) (T, error) {
	var zero T
	file, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrap(err, "load")
	}
	defer file.Close()
	res, err := f(bufio.NewReader(file))
	if err != nil {
		return zero, errors.Wrapf(err, "load %s", path)
	}
	return res, nil
}

// Save creates a file and encodes obj into it with a writer function.
func Save[T any](path string, obj T, f func(w io.Writer, obj T) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := f(w, obj); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return file.Close()
}
