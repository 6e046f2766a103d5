package ruledoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/macropower/fileformat/api"
	"github.com/macropower/fileformat/pkg/datefmt"
	"github.com/macropower/fileformat/pkg/log"
	"github.com/macropower/fileformat/pkg/session"
)

// Extension is the only accepted file extension for rule documents.
const Extension = ".json"

var (
	ErrInvalidExtension = errors.New("invalid extension")
	ErrFileNotFound     = errors.New("file not found")
	ErrRead             = errors.New("read rule document")
	ErrMalformedConfig  = errors.New("malformed rule document")
)

// RuleDocument is a naming rule together with how each token is offered.
type RuleDocument struct {
	// Selection describes how tokens are offered to the user.
	Selection map[string]TokenValue `json:"selection,omitempty" jsonschema:"title=Selection"`
	// Rule is the file name template, e.g. "{date}_{title}".
	Rule string `json:"rule" jsonschema:"title=Rule"`

	raw json.RawMessage
}

// Keys returns the tokens referenced by the rule, see [ExtractTokens].
func (d *RuleDocument) Keys() []string {
	return ExtractTokens(d.Rule)
}

// Raw returns the document as it was read, including keys that are not part
// of [RuleDocument]. Documents built in code are re-encoded.
func (d *RuleDocument) Raw() json.RawMessage {
	if len(d.raw) > 0 {
		return d.raw
	}

	b, err := json.Marshal(d)
	if err != nil {
		return nil
	}

	return b
}

// Choices returns the choices offered for token, if it has any.
func (d *RuleDocument) Choices(token string) []string {
	v, ok := d.Selection[token]
	if !ok {
		return nil
	}

	choices, _ := v.Multiple()

	return choices
}

// DatePattern returns the date pattern used to pre-fill token, if it has one.
func (d *RuleDocument) DatePattern(token string) (string, bool) {
	v, ok := d.Selection[token]
	if !ok {
		return "", false
	}

	return v.Single()
}

// DefaultValues returns the initial values of the rule's tokens. Only tokens
// with a date pattern have a default, formatted with now. Other tokens are
// left out so that an unfilled token stays missing.
func (d *RuleDocument) DefaultValues(now time.Time) map[string]string {
	values := map[string]string{}

	for _, key := range d.Keys() {
		pattern, ok := d.DatePattern(key)
		if ok {
			values[key] = datefmt.Format(pattern, now)
		}
	}

	return values
}

// Label returns a display label for token, with its first letter in upper
// case.
func Label(token string) string {
	if token == "" {
		return ""
	}

	r := []rune(token)

	return cases.Upper(language.Und).String(string(r[0])) + string(r[1:])
}

// Parse validates and decodes a rule document.
func Parse(data []byte) (*RuleDocument, error) {
	err := DefaultValidator.Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}

	doc := &RuleDocument{}

	err = json.Unmarshal(data, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}

	doc.raw = bytes.TrimSpace(data)

	return doc, nil
}

// Load reads the rule document at path. On success, path is recorded as the
// last loaded document in s.
func Load(ctx context.Context, s *session.State, path string) (*RuleDocument, error) {
	ctx, span := otel.Tracer("ruledoc").Start(ctx, "load")
	defer span.End()

	span.SetAttributes(attribute.String("path", path))

	logger := log.WithContext(ctx).With(slog.String("path", path))

	doc, err := load(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load rule document")
		logger.DebugContext(ctx, "rule document rejected", slog.Any("err", err))

		return nil, err
	}

	s.SetLastLoaded(path)

	logger.DebugContext(ctx, "loaded rule document",
		slog.String("rule", doc.Rule),
		slog.Any("keys", doc.Keys()),
	)

	return doc, nil
}

func load(path string) (*RuleDocument, error) {
	ext := filepath.Ext(path)
	if ext != Extension {
		return nil, fmt.Errorf("%w: %q, want %q", ErrInvalidExtension, ext, Extension)
	}

	data, err := api.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}
