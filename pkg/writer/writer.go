// Package writer places files named by a rule on disk.
//
// New files are never written over existing ones: [Writer.PersistNewFile]
// writes to a temporary file first and hard-links it into place, so the
// destination either appears complete or not at all.
//
// Renames keep the historical behavior of not checking for an existing
// destination unless [WithStrictRename] is set.
package writer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/fileformat/pkg/filename"
	"github.com/macropower/fileformat/pkg/log"
	"github.com/macropower/fileformat/pkg/session"
)

var (
	ErrDesktopDirUnavailable = errors.New("desktop directory unavailable")
	ErrFileAlreadyExists     = errors.New("file already exists")
	ErrWrite                 = errors.New("write file")
	ErrRename                = errors.New("rename file")
)

// FileAlreadyExistsError reports a destination that is already taken.
type FileAlreadyExistsError struct {
	Name string
}

func (e *FileAlreadyExistsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrFileAlreadyExists, e.Name)
}

func (e *FileAlreadyExistsError) Unwrap() error {
	return ErrFileAlreadyExists
}

const filePerm fs.FileMode = 0o644

// State is a step of a save or rename, logged as the operation advances.
type State string

const (
	StateIdle                State = "idle"
	StateTokensResolved      State = "tokens_resolved"
	StateNameComposed        State = "name_composed"
	StateDestinationResolved State = "destination_resolved"
	StateCollisionChecked    State = "collision_checked"
	StateWritten             State = "written"
	StateFailed              State = "failed"
)

// Writer resolves destinations and writes or renames files.
// Create instances with [New].
type Writer struct {
	session      *session.State
	tracer       trace.Tracer
	desktopDir   func() (string, error)
	strictRename bool
}

// Option configures a [Writer].
type Option func(*Writer)

// WithStrictRename makes [Writer.RenameExistingFile] refuse to replace an
// existing file, like [Writer.PersistNewFile] does.
func WithStrictRename(strict bool) Option {
	return func(w *Writer) {
		w.strictRename = strict
	}
}

// WithTracer sets the tracer used for spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(w *Writer) {
		w.tracer = tracer
	}
}

// WithDesktopDir overrides how the desktop directory is found.
func WithDesktopDir(fn func() (string, error)) Option {
	return func(w *Writer) {
		w.desktopDir = fn
	}
}

// New creates a new [Writer] reading the last loaded document from s.
func New(s *session.State, opts ...Option) *Writer {
	w := &Writer{
		session:    s,
		tracer:     otel.Tracer("writer"),
		desktopDir: xdgDesktopDir,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

func xdgDesktopDir() (string, error) {
	if xdg.UserDirs.Desktop == "" {
		return "", ErrDesktopDirUnavailable
	}

	return xdg.UserDirs.Desktop, nil
}

// ResolveDestinationDirectory returns the desktop directory when
// saveToDesktop is set. Otherwise it returns the directory of the last
// loaded rule document, falling back to the desktop when nothing was loaded.
func (w *Writer) ResolveDestinationDirectory(ctx context.Context, saveToDesktop bool) (string, error) {
	if !saveToDesktop {
		dir, ok := w.session.LastLoadedDir()
		if ok {
			return dir, nil
		}

		log.WithContext(ctx).DebugContext(ctx, "no rule document loaded, using desktop directory")
	}

	dir, err := w.desktopDir()
	if err != nil {
		if errors.Is(err, ErrDesktopDirUnavailable) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", ErrDesktopDirUnavailable, err)
	}

	if dir == "" {
		return "", ErrDesktopDirUnavailable
	}

	return dir, nil
}

// Save composes a file name from sel and writes data under it, in the
// directory chosen by [Writer.ResolveDestinationDirectory]. It returns the
// path of the new file.
func (w *Writer) Save(ctx context.Context, sel filename.Selection, data []byte, saveToDesktop bool) (string, error) {
	logger := log.WithContext(ctx)
	advance := func(state State, attrs ...any) {
		logger.DebugContext(ctx, "save", append([]any{slog.String("state", string(state))}, attrs...)...)
	}

	advance(StateIdle, slog.String("rule", sel.Rule()))

	name, err := filename.Resolve(sel.Rule(), sel)
	if err != nil {
		advance(StateFailed, slog.Any("err", err))

		return "", fmt.Errorf("resolve file name: %w", err)
	}

	advance(StateTokensResolved)
	advance(StateNameComposed, slog.String("name", name))

	dir, err := w.ResolveDestinationDirectory(ctx, saveToDesktop)
	if err != nil {
		advance(StateFailed, slog.Any("err", err))

		return "", err
	}

	advance(StateDestinationResolved, slog.String("dir", dir))

	err = w.PersistNewFile(ctx, dir, name, data)
	if err != nil {
		advance(StateFailed, slog.Any("err", err))

		return "", err
	}

	return filepath.Join(dir, name), nil
}

// PersistNewFile writes data to dir/name. It fails with
// [FileAlreadyExistsError] if the destination exists, leaving it untouched.
// On any other failure no destination file is left behind.
func (w *Writer) PersistNewFile(ctx context.Context, dir, name string, data []byte) error {
	ctx, span := w.tracer.Start(ctx, "persist", trace.WithAttributes(
		attribute.String("dir", dir),
		attribute.String("name", name),
		attribute.Int("size", len(data)),
	))
	defer span.End()

	logger := log.WithContext(ctx).With(slog.String("dir", dir), slog.String("name", name))

	err := persist(dir, name, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist file")
		logger.DebugContext(ctx, "save", slog.String("state", string(StateFailed)), slog.Any("err", err))

		return err
	}

	logger.DebugContext(ctx, "save",
		slog.String("state", string(StateWritten)),
		log.Size("size", len(data)),
	)

	return nil
}

func persist(dir, name string, data []byte) error {
	if !isFileName(name) {
		return fmt.Errorf("%w: %q is not a file name", ErrWrite, name)
	}

	dest := filepath.Join(dir, name)

	err := checkFree(dest, name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".fileformat-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // The link is the result.

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(filePerm)
	}

	if err == nil {
		err = tmp.Sync()
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	err = os.Link(tmpPath, dest)
	if errors.Is(err, fs.ErrExist) {
		return &FileAlreadyExistsError{Name: name}
	}

	if err != nil {
		// Some file systems have no hard links.
		return writeExclusive(dest, name, data)
	}

	return nil
}

// writeExclusive creates dest with O_EXCL and writes data to it, removing
// dest again if the write does not complete.
func writeExclusive(dest, name string, data []byte) error {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return &FileAlreadyExistsError{Name: name}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}

	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(dest)

		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}

func isFileName(name string) bool {
	return name != "" && name != "." && name != ".." && name == filepath.Base(name)
}

// checkFree returns [FileAlreadyExistsError] if dest exists.
func checkFree(dest, name string) error {
	_, err := os.Lstat(dest)
	if err == nil {
		return &FileAlreadyExistsError{Name: name}
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}

// RenameExistingFile renames existingPath, in place, to the name composed
// from sel's rule. It returns the new path.
func (w *Writer) RenameExistingFile(ctx context.Context, existingPath string, sel filename.Selection) (string, error) {
	ctx, span := w.tracer.Start(ctx, "rename", trace.WithAttributes(
		attribute.String("path", existingPath),
		attribute.Bool("strict", w.strictRename),
	))
	defer span.End()

	logger := log.WithContext(ctx).With(slog.String("path", existingPath))

	dest, err := w.rename(existingPath, sel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rename file")
		logger.DebugContext(ctx, "rename", slog.String("state", string(StateFailed)), slog.Any("err", err))

		return "", err
	}

	span.SetAttributes(attribute.String("dest", dest))
	logger.DebugContext(ctx, "rename",
		slog.String("state", string(StateWritten)),
		slog.String("dest", dest),
	)

	return dest, nil
}

func (w *Writer) rename(existingPath string, sel filename.Selection) (string, error) {
	name, err := filename.Resolve(sel.Rule(), sel)
	if err != nil {
		return "", fmt.Errorf("resolve file name: %w", err)
	}

	if !isFileName(name) {
		return "", fmt.Errorf("%w: %q is not a file name", ErrRename, name)
	}

	dest := filepath.Join(filepath.Dir(existingPath), name)

	if w.strictRename && dest != filepath.Clean(existingPath) {
		_, err := os.Lstat(dest)
		if err == nil {
			return "", &FileAlreadyExistsError{Name: name}
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrRename, err)
		}
	}

	err = os.Rename(existingPath, dest)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRename, err)
	}

	return dest, nil
}
