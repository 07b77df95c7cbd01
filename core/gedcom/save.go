package gedcom

import (
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/internal/logging"
	"github.com/FocuswithJustin/gedcom/internal/validation"
)

// Injectable functions for testing
var (
	osOpenFileSave = os.OpenFile
	osRemoveSave   = os.Remove
	xzNewWriter    = func(w io.Writer) (io.WriteCloser, error) { return xz.NewWriter(w) }
)

// Save writes the file to a new file at path. An existing path is never
// overwritten: it yields a DestinationExistsError. Paths ending in ".xz"
// are written xz-compressed. On any failure after creation the partial
// file is removed. Paths rejected by validation.ValidateOutputPath are
// never opened.
func (f *File) Save(path string) (err error) {
	if err := validation.ValidateOutputPath(path); err != nil {
		return errors.Wrapf(err, "save %q", path)
	}
	out, err := osOpenFileSave(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &errors.DestinationExistsError{Path: path}
		}
		return errors.NewIO("create", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.NewIO("close", path, cerr)
		}
		if err != nil {
			_ = osRemoveSave(path)
		}
	}()

	var w io.Writer = out
	var zw io.WriteCloser
	if isXZ(path) {
		zw, err = xzNewWriter(out)
		if err != nil {
			return errors.NewIO("compress", path, err)
		}
		w = zw
	}

	n, err := f.WriteTo(w)
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			return errors.NewIO("compress", path, err)
		}
	}

	logging.FileWritten(f.logger, path, n, "compressed", zw != nil)
	return nil
}

func isXZ(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xz")
}
