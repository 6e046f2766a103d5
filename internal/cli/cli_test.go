package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/fileformat/internal/cli"
	"github.com/macropower/fileformat/pkg/command"
	"github.com/macropower/fileformat/pkg/filename"
	"github.com/macropower/fileformat/pkg/ruledoc"
	"github.com/macropower/fileformat/pkg/writer"
)

const ruleJSON = `{
  "rule": "{year}-{title}",
  "selection": {"year": "yyyy"}
}`

// setup creates a directory holding a rule document and returns the
// directory and the args selecting a private config file.
func setup(t *testing.T) (string, []string) {
	t.Helper()

	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "rule.json"), []byte(ruleJSON), 0o600)
	require.NoError(t, err)

	return dir, []string{"--config", filepath.Join(t.TempDir(), "config.yaml")}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return stdout.String(), err
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir, cfgArgs := setup(t)

	out, err := run(t, append([]string{"load", filepath.Join(dir, "rule.json")}, cfgArgs...)...)
	require.NoError(t, err)

	var got struct {
		Format map[string]any `json:"format"`
		Rule   string         `json:"rule"`
		Keys   []string       `json:"keys"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "{year}-{title}", got.Rule)
	assert.Equal(t, []string{"year", "title"}, got.Keys)
	assert.Equal(t, map[string]any{"year": "yyyy"}, got.Format["selection"])
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		file string
		want error
	}{
		"wrong extension": {
			file: "rule.yaml",
			want: ruledoc.ErrInvalidExtension,
		},
		"missing file": {
			file: "missing.json",
			want: ruledoc.ErrFileNotFound,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir, cfgArgs := setup(t)

			_, err := run(t, append([]string{"load", filepath.Join(dir, tc.file)}, cfgArgs...)...)
			require.ErrorIs(t, err, tc.want)

			var cmdErr *command.Error
			require.ErrorAs(t, err, &cmdErr)
			assert.NotEmpty(t, cmdErr.Hint)
		})
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	dir, cfgArgs := setup(t)
	src := filepath.Join(t.TempDir(), "scan.pdf")
	require.NoError(t, os.WriteFile(src, []byte("first"), 0o600))

	args := append([]string{
		"save", src,
		"--format", filepath.Join(dir, "rule.json"),
		"--set", "year=2024",
		"--set", "title=report",
		"--desktop=false",
	}, cfgArgs...)

	out, err := run(t, args...)
	require.NoError(t, err)

	want := filepath.Join(dir, "2024-report.pdf")
	assert.Equal(t, want, strings.TrimSpace(out))

	got, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	require.NoError(t, os.WriteFile(src, []byte("second"), 0o600))

	_, err = run(t, args...)
	require.ErrorIs(t, err, writer.ErrFileAlreadyExists)

	got, err = os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func TestSaveErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want error
		set  []string
	}{
		"missing token value": {
			set:  []string{"--set", "year=2024"},
			want: filename.ErrMissingSelectionValue,
		},
		"empty token value": {
			set:  []string{"--set", "year=2024", "--set", "title="},
			want: filename.ErrMissingSelectionValue,
		},
		"malformed set": {
			set:  []string{"--set", "title"},
			want: cli.ErrInvalidSet,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir, cfgArgs := setup(t)
			src := filepath.Join(t.TempDir(), "scan.pdf")
			require.NoError(t, os.WriteFile(src, []byte("data"), 0o600))

			args := []string{"save", src, "--format", filepath.Join(dir, "rule.json"), "--desktop=false"}
			args = append(args, tc.set...)

			_, err := run(t, append(args, cfgArgs...)...)
			require.ErrorIs(t, err, tc.want)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestRename(t *testing.T) {
	t.Parallel()

	dir, cfgArgs := setup(t)
	work := t.TempDir()
	src := filepath.Join(work, "scan.PDF")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o600))

	out, err := run(t, append([]string{
		"rename", src,
		"--format", filepath.Join(dir, "rule.json"),
		"--set", "year=2023",
		"--set", "title=tax",
	}, cfgArgs...)...)
	require.NoError(t, err)

	want := filepath.Join(work, "2023-tax.PDF")
	assert.Equal(t, want, strings.TrimSpace(out))
	assert.FileExists(t, want)
	assert.NoFileExists(t, src)
}

func TestRenameStrict(t *testing.T) {
	t.Parallel()

	dir, cfgArgs := setup(t)
	work := t.TempDir()
	src := filepath.Join(work, "scan.pdf")
	taken := filepath.Join(work, "2023-tax.pdf")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o600))
	require.NoError(t, os.WriteFile(taken, []byte("old"), 0o600))

	_, err := run(t, append([]string{
		"rename", src,
		"--format", filepath.Join(dir, "rule.json"),
		"--set", "year=2023",
		"--set", "title=tax",
		"--strict",
	}, cfgArgs...)...)
	require.ErrorIs(t, err, writer.ErrFileAlreadyExists)

	got, err := os.ReadFile(taken)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
	assert.FileExists(t, src)
}

func TestPreview(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want string
		args []string
	}{
		"all values": {
			args: []string{"--set", "year=2024", "--set", "title=report", "--extension", "txt"},
			want: "2024-report.txt",
		},
		"missing value and extension": {
			args: []string{"--set", "year=2024"},
			want: "2024-{title}.etc",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir, cfgArgs := setup(t)

			args := append([]string{"preview", "--format", filepath.Join(dir, "rule.json")}, tc.args...)

			out, err := run(t, append(args, cfgArgs...)...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, strings.TrimSpace(out))
		})
	}
}

func TestConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
	assert.NoFileExists(t, path)

	_, err = run(t, "config", "--write", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	out, err = run(t, "config", "--show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "toDesktop: true")
	assert.Contains(t, out, "theme: charm")
}

func TestConfigInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "apiVersion: fileformat.jacobcolvin.com/v1beta1\nkind: Configuration\nprompt:\n  theme: neon\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err := run(t, "config", "--show", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme")
}

func TestConfigDiff(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, "config", "--write", "--config", path)
	require.NoError(t, err)

	out, err := run(t, "config", "--diff", "--config", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(data), "strict: false", "strict: true", 1)), 0o600))

	out, err = run(t, "config", "--diff", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "+  strict: true")
}
