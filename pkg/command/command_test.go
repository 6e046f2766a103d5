package command_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/fileformat/pkg/command"
	"github.com/macropower/fileformat/pkg/filename"
	"github.com/macropower/fileformat/pkg/ruledoc"
	"github.com/macropower/fileformat/pkg/session"
	"github.com/macropower/fileformat/pkg/writer"
)

const ruleJSON = `{
	"date": "2024-01-01",
	"rule": "{date}_{kind}_{title}",
	"selection": {
		"date": "yyyyMMdd",
		"kind": ["invoice", "receipt"]
	}
}`

func writeRule(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "rule.json")
	require.NoError(t, os.WriteFile(path, []byte(ruleJSON), 0o600))

	return path
}

func newCommands(t *testing.T, desktopDir string, opts ...writer.Option) (*command.Commands, *session.State) {
	t.Helper()

	s := session.New()
	opts = append(opts, writer.WithDesktopDir(func() (string, error) { return desktopDir, nil }))

	return command.New(s,
		command.WithWriterOptions(opts...),
		command.WithClock(func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }),
	), s
}

func TestGetFileFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeRule(t, dir)
	c, s := newCommands(t, t.TempDir())

	ff, err := c.GetFileFormat(t.Context(), path)
	require.NoError(t, err)

	assert.Equal(t, "{date}_{kind}_{title}", ff.Rule)
	assert.Equal(t, []string{"date", "kind", "title"}, ff.Keys)
	assert.JSONEq(t, ruleJSON, string(ff.Format))

	out, err := json.Marshal(ff)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"keys":["date","kind","title"]`)

	got, ok := s.LastLoaded()
	require.True(t, ok)
	assert.Equal(t, path, got)

	assert.Equal(t, map[string]string{
		"date": "20240305",
	}, c.DefaultValues(ff.Document))
}

func TestGetFileFormat_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := filepath.Join(dir, "rule.txt")
	require.NoError(t, os.WriteFile(txt, []byte(ruleJSON), 0o600))

	tcs := map[string]struct {
		path string
		err  error
	}{
		"extension": {path: txt, err: ruledoc.ErrInvalidExtension},
		"missing":   {path: filepath.Join(dir, "nope.json"), err: ruledoc.ErrFileNotFound},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, s := newCommands(t, t.TempDir())

			_, err := c.GetFileFormat(t.Context(), tc.path)
			require.ErrorIs(t, err, tc.err)

			var cmdErr *command.Error
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, "load rule document", cmdErr.Op)
			assert.NotEmpty(t, cmdErr.Hint)

			_, ok := s.LastLoaded()
			assert.False(t, ok)
		})
	}
}

func TestSaveFile(t *testing.T) {
	t.Parallel()

	rulesDir := t.TempDir()
	desktopDir := t.TempDir()
	c, _ := newCommands(t, desktopDir)

	_, err := c.GetFileFormat(t.Context(), writeRule(t, rulesDir))
	require.NoError(t, err)

	req := command.SaveRequest{
		Selection: filename.Selection{
			"rule":      "{date}_{kind}_{title}",
			"date":      "20240305",
			"kind":      "invoice",
			"title":     "acme",
			"extension": "pdf",
		},
		Data: []byte("%PDF-1.7"),
	}

	path, err := c.SaveFile(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rulesDir, "20240305_invoice_acme.pdf"), path)

	_, err = c.SaveFile(t.Context(), req)
	require.ErrorIs(t, err, writer.ErrFileAlreadyExists)

	var cmdErr *command.Error
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "save file", cmdErr.Op)
	assert.Contains(t, cmdErr.Error(), "save file: ")

	req.SaveToDesktop = true
	path, err = c.SaveFile(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(desktopDir, "20240305_invoice_acme.pdf"), path)
}

func TestSaveFile_MissingValue(t *testing.T) {
	t.Parallel()

	c, _ := newCommands(t, t.TempDir())

	_, err := c.SaveFile(t.Context(), command.SaveRequest{
		Selection: filename.Selection{"rule": "{a}", "extension": "txt"},
		Data:      []byte("x"),
	})
	require.ErrorIs(t, err, filename.ErrMissingSelectionValue)

	var cmdErr *command.Error
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "Provide a value for every token in the rule.", cmdErr.Hint)
}

func TestSaveAndRename_EmptyValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "scan.pdf")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

	c, _ := newCommands(t, dir)
	sel := filename.Selection{"rule": "{year}-{title}", "year": "2024", "title": "", "extension": "pdf"}

	_, err := c.SaveFile(t.Context(), command.SaveRequest{
		Selection:     sel,
		Data:          []byte("x"),
		SaveToDesktop: true,
	})
	require.ErrorIs(t, err, filename.ErrMissingSelectionValue)

	var missing *filename.MissingSelectionValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "title", missing.Token)

	_, err = c.RenameFile(t.Context(), command.RenameRequest{
		ExistingPath: src,
		Selection:    sel,
	})
	require.ErrorIs(t, err, filename.ErrMissingSelectionValue)

	assert.NoFileExists(t, filepath.Join(dir, "2024-.pdf"))
	assert.FileExists(t, src)
}

func TestRenameFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "scan.pdf")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("y"), 0o600))

	c, _ := newCommands(t, t.TempDir(), writer.WithStrictRename(true))

	_, err := c.RenameFile(t.Context(), command.RenameRequest{
		ExistingPath: src,
		Selection:    filename.Selection{"rule": "{n}", "n": "b", "extends": "pdf"},
	})
	require.ErrorIs(t, err, writer.ErrFileAlreadyExists)

	path, err := c.RenameFile(t.Context(), command.RenameRequest{
		ExistingPath: src,
		Selection:    filename.Selection{"rule": "{n}", "n": "a", "extends": "pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), path)
	assert.FileExists(t, path)
	assert.NoFileExists(t, src)
}

func TestPreviewFileName(t *testing.T) {
	t.Parallel()

	c, _ := newCommands(t, t.TempDir())

	assert.Equal(t, "20240305_{kind}.etc",
		c.PreviewFileName("{date}_{kind}", map[string]string{"date": "20240305"}, ""))
}
