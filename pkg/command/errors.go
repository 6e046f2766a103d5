package command

import (
	"errors"

	"github.com/macropower/fileformat/pkg/filename"
	"github.com/macropower/fileformat/pkg/ruledoc"
	"github.com/macropower/fileformat/pkg/writer"
)

// Error is returned by every [Commands] method. It names the failed
// operation, carries a short hint for the user, and wraps the cause.
type Error struct {
	Err  error
	Op   string
	Hint string
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

var hints = []struct {
	err  error
	hint string
}{
	{ruledoc.ErrInvalidExtension, "Rule documents must be .json files."},
	{ruledoc.ErrFileNotFound, "Check the path of the rule document."},
	{ruledoc.ErrMalformedConfig, "The rule document needs a string \"rule\" and an optional \"selection\" object."},
	{ruledoc.ErrRead, "The rule document could not be read."},
	{filename.ErrMissingSelectionValue, "Provide a value for every token in the rule."},
	{filename.ErrMissingExtension, "Provide a file extension."},
	{writer.ErrDesktopDirUnavailable, "Load a rule document first, or configure a desktop directory."},
	{writer.ErrFileAlreadyExists, "Choose different values, or move the existing file away."},
	{writer.ErrWrite, "Check that the destination directory exists and is writable."},
	{writer.ErrRename, "Check that the file still exists and the directory is writable."},
}

func newError(op string, err error) *Error {
	e := &Error{Op: op, Err: err}

	for _, h := range hints {
		if errors.Is(err, h.err) {
			e.Hint = h.hint

			break
		}
	}

	return e
}
