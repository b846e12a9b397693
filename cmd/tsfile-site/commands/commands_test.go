package commands

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/history"
	"github.com/apache/tsfile-website/internal/navbar"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	cli := CLI{logOutput: io.Discard}
	parser, err := kong.New(&cli,
		kong.Name("tsfile-site"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return result{err: err}
	}
	var stdout, stderr bytes.Buffer
	err = kctx.Run(&Global{Stdout: &stdout, Stderr: &stderr}, &cli)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeProject writes a config deploying dir/dist to remote without auth.
func writeProject(t *testing.T, remote string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Example()
	cfg.Deploy.Auth = nil
	cfg.Deploy.Repo = remote
	cfg.Deploy.SourceDir = "dist"
	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	for name, nav := range navbar.Defaults() {
		require.NoError(t, navbar.Save(filepath.Join(dir, config.DefaultNavbarDir), name, nav))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "index.html"), []byte("<h1>TsFile</h1>"), 0o644))
	return path
}

func newBareRemote(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "site.git")
	_, err := git.PlainInit(dir, true)
	require.NoError(t, err)
	return dir
}

func TestInitThenValidate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GITHUB_TOKEN", "")
	require.NoError(t, os.Unsetenv("GITHUB_TOKEN"))

	res := run(t, "init", "-o", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Initialized tsfile-site")

	res = run(t, "-c", filepath.Join(dir, config.DefaultFileName), "validate")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Configuration OK: 2 locales")

	res = run(t, "-c", filepath.Join(dir, config.DefaultFileName), "render")
	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(config.DefaultOutputDir), "site.config.json"))

	res = run(t, "init", "-o", dir)
	require.Error(t, res.err, "init refuses to overwrite")
}

func TestValidateMissingConfig(t *testing.T) {
	res := run(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "validate")
	require.Error(t, res.err)
	assert.Equal(t, errors.CategoryConfig, errors.GetCategory(res.err))
	assert.Equal(t, 7, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(res.err))
}

func TestRenderCommandFormats(t *testing.T) {
	path := writeProject(t, newBareRemote(t))
	out := filepath.Join(t.TempDir(), "generated")

	res := run(t, "-c", path, "render", "-o", out, "-f", "yml")
	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(out, "site.config.yaml"))
	assert.FileExists(t, filepath.Join(out, "head.html"))

	res = run(t, "-c", path, "render", "-f", "toml")
	require.Error(t, res.err)
	assert.Equal(t, errors.CategoryValidation, errors.GetCategory(res.err))
}

func TestDeployCommandPublishesAndRecords(t *testing.T) {
	remote := newBareRemote(t)
	path := writeProject(t, remote)

	res := run(t, "-c", path, "deploy")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "-c", path, "deploy")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "-c", path, "history", "--json")
	require.NoError(t, res.err)
	var records []history.Record
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &records))
	require.Len(t, records, 2)
	assert.Equal(t, history.StatusUnchanged, records[0].Status)
	assert.Equal(t, history.StatusPublished, records[1].Status)
	assert.Equal(t, config.DefaultBranch, records[1].Branch)

	res = run(t, "-c", path, "history")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "STATUS")
	assert.Contains(t, res.stdout, "published")
}

func TestDeployFailureExitsOne(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "does-not-exist.git"))

	res := run(t, "-c", path, "deploy")
	require.Error(t, res.err)
	var code ExitCode
	require.True(t, stderrors.As(res.err, &code))
	assert.Equal(t, ExitCode(1), code)
	assert.NotEmpty(t, res.stderr)
}

func TestDeployRevalidatesOverrides(t *testing.T) {
	remote := newBareRemote(t)
	path := writeProject(t, remote)

	res := run(t, "-c", path, "deploy", "--branch", "bad name")
	require.Error(t, res.err)
	assert.Equal(t, errors.CategoryValidation, errors.GetCategory(res.err))
	assert.Contains(t, res.err.Error(), "invalid branch name")

	repo, err := git.PlainOpen(remote)
	require.NoError(t, err)
	_, err = repo.Reference(plumbing.NewBranchReferenceName(config.DefaultBranch), false)
	assert.ErrorIs(t, err, plumbing.ErrReferenceNotFound, "nothing was pushed")
}

func TestLinksCommand(t *testing.T) {
	path := writeProject(t, newBareRemote(t))

	res := run(t, "-c", path, "links")
	require.Error(t, res.err, "no markdown sources exist, so internal links are broken")
	assert.Equal(t, errors.CategoryValidation, errors.GetCategory(res.err))
	assert.Contains(t, res.stdout, "BROKEN")

	docs := filepath.Join(filepath.Dir(path), config.DefaultDocsDir)
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "Download"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "Download", "README.md"), []byte("# Download\n"), 0o644))

	res = run(t, "-c", path, "links", "--no-fail", "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"title": "Download"`)
}

func TestDaemonRequiresSchedule(t *testing.T) {
	path := writeProject(t, newBareRemote(t))
	res := run(t, "-c", path, "daemon")
	require.Error(t, res.err)
	assert.Equal(t, errors.CategoryConfig, errors.GetCategory(res.err))
}

func TestHistoryDisabled(t *testing.T) {
	remote := newBareRemote(t)
	path := writeProject(t, remote)

	raw := config.Example()
	raw.Deploy.Auth = nil
	raw.Deploy.Repo = remote
	raw.Deploy.SourceDir = "dist"
	raw.History.Database = ""
	data, err := yaml.Marshal(&raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res := run(t, "-c", path, "history")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "history.database")
}
