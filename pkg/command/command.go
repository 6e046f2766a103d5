// Package command exposes the operations a front end needs: load a rule
// document, save new files and rename existing ones under names built from
// the rule, and preview names while values are entered.
//
// All methods return errors as [*Error].
package command

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/macropower/fileformat/pkg/filename"
	"github.com/macropower/fileformat/pkg/log"
	"github.com/macropower/fileformat/pkg/ruledoc"
	"github.com/macropower/fileformat/pkg/session"
	"github.com/macropower/fileformat/pkg/writer"
)

// FileFormat is a loaded rule document as presented to a front end.
type FileFormat struct {
	// Document is the decoded rule document.
	Document *ruledoc.RuleDocument `json:"-"`
	// Format is the rule document as it was read.
	Format json.RawMessage `json:"format"`
	Rule   string          `json:"rule"`
	// Keys are the tokens of Rule, in order.
	Keys []string `json:"keys"`
}

// SaveRequest describes a new file to write.
type SaveRequest struct {
	Selection     filename.Selection
	Data          []byte
	SaveToDesktop bool
}

// RenameRequest describes an existing file to rename in place.
type RenameRequest struct {
	Selection    filename.Selection
	ExistingPath string
}

// Commands binds the operations to one session.
type Commands struct {
	session *session.State
	writer  *writer.Writer
	now     func() time.Time
}

// Opt configures [Commands].
type Opt func(*Commands)

// WithWriterOptions sets options for the underlying [writer.Writer].
func WithWriterOptions(opts ...writer.Option) Opt {
	return func(c *Commands) {
		c.writer = writer.New(c.session, opts...)
	}
}

// WithClock sets the time used for default token values.
func WithClock(now func() time.Time) Opt {
	return func(c *Commands) {
		c.now = now
	}
}

// New creates [Commands] for s.
func New(s *session.State, opts ...Opt) *Commands {
	c := &Commands{
		session: s,
		writer:  writer.New(s),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetFileFormat loads the rule document at path and records it in the
// session.
func (c *Commands) GetFileFormat(ctx context.Context, path string) (*FileFormat, error) {
	doc, err := ruledoc.Load(ctx, c.session, path)
	if err != nil {
		return nil, newError("load rule document", err)
	}

	return &FileFormat{
		Document: doc,
		Format:   doc.Raw(),
		Rule:     doc.Rule,
		Keys:     doc.Keys(),
	}, nil
}

// DefaultValues returns the initial token values for doc.
func (c *Commands) DefaultValues(doc *ruledoc.RuleDocument) map[string]string {
	return doc.DefaultValues(c.now())
}

// SaveFile writes req.Data under the name composed from req.Selection and
// returns the new path. Every token needs a non-empty value. Existing files
// are never replaced.
func (c *Commands) SaveFile(ctx context.Context, req SaveRequest) (string, error) {
	err := filename.RequireValues(req.Selection.Rule(), req.Selection)
	if err != nil {
		return "", newError("save file", err)
	}

	path, err := c.writer.Save(ctx, req.Selection, req.Data, req.SaveToDesktop)
	if err != nil {
		return "", newError("save file", err)
	}

	log.WithContext(ctx).InfoContext(ctx, "saved file",
		slog.String("path", path),
		log.Size("size", len(req.Data)),
	)

	return path, nil
}

// RenameFile renames req.ExistingPath in place and returns the new path.
// Every token needs a non-empty value.
func (c *Commands) RenameFile(ctx context.Context, req RenameRequest) (string, error) {
	err := filename.RequireValues(req.Selection.Rule(), req.Selection)
	if err != nil {
		return "", newError("rename file", err)
	}

	path, err := c.writer.RenameExistingFile(ctx, req.ExistingPath, req.Selection)
	if err != nil {
		return "", newError("rename file", err)
	}

	log.WithContext(ctx).InfoContext(ctx, "renamed file",
		slog.String("from", req.ExistingPath),
		slog.String("to", path),
	)

	return path, nil
}

// PreviewFileName renders rule for display, see [filename.Preview].
func (c *Commands) PreviewFileName(rule string, values map[string]string, extension string) string {
	return filename.Preview(rule, values, extension)
}
