package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdoutline/pkg/config"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/runner"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// newVault creates a small vault with two notes sharing a title.
func newVault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "proj.md", "---\ntitle: Project\n---\n# Project\n\nSee [[proj.tasks]].\n")
	writeFile(t, dir, "proj.tasks.md", "---\ntitle: Tasks\n---\n- one\n- two\n")
	writeFile(t, dir, "archive.proj.md", "---\ntitle: Project\n---\nold\n")
	writeFile(t, dir, "dendron.yml", "version: 5\n")
	writeFile(t, dir, "assets/images/a.png", "png")
	return dir
}

func TestRun(t *testing.T) {
	t.Parallel()

	vaultDir := newVault(t)
	out := filepath.Join(t.TempDir(), "graph")

	cfg := config.NewConfig()
	cfg.RemoveFrontmatter = true

	res, err := runner.New(runner.NewPipeline()).Run(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: out,
		Jobs:      2,
		Config:    cfg,
	})
	require.NoError(t, err)
	require.False(t, res.HasFailures())

	assert.Equal(t, 3, res.Stats.NotesDiscovered)
	assert.Equal(t, 1, res.Stats.NotesSkipped)
	assert.Equal(t, 3, res.Stats.PagesWritten)
	assert.Equal(t, 1, res.Stats.AssetsCopied)

	names := make([]string, 0, len(res.Pages))
	for _, page := range res.Pages {
		names = append(names, page.Name)
	}
	assert.Equal(t, []string{"archive.proj.md", "proj.md", "proj.tasks.md"}, names)

	assert.Equal(t, "- # Project\n\t- See [[proj/tasks]].\n", readFile(t, filepath.Join(out, "proj.md")))
	assert.Equal(t, "- one\n- two\n", readFile(t, filepath.Join(out, "proj___tasks.md")))
	assert.Equal(t, "png", readFile(t, filepath.Join(out, "assets", "images", "a.png")))

	// A second run leaves identical pages alone.
	again, err := runner.New(runner.NewPipeline()).Run(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: out,
		Config:    cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, again.Stats.PagesUnchanged)
	assert.Zero(t, again.Stats.PagesWritten)
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	vaultDir := newVault(t)
	out := t.TempDir()
	writeFile(t, out, "existing.md", "- x\n")

	plan, err := runner.Prepare(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: out,
		Config:    config.NewConfig(),
	})
	require.NoError(t, err)
	assert.True(t, plan.OutputExists)
	assert.Equal(t, vault.Duplicates{"Project": {"archive.proj.md", "proj.md"}}, plan.Duplicates)

	cfg := config.NewConfig()
	cfg.Title = config.TitleProperty
	plan, err = runner.Prepare(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: filepath.Join(out, "new"),
		Config:    cfg,
	})
	require.ErrorIs(t, err, vault.ErrDuplicateTitles)
	require.NotNil(t, plan)
	assert.False(t, plan.OutputExists)
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	vaultDir := newVault(t)
	out := t.TempDir()
	writeFile(t, out, "proj___tasks.md", "- one\n")

	cfg := config.NewConfig()
	cfg.RemoveFrontmatter = true
	cfg.DryRun = true

	res, err := runner.New(runner.NewPipeline()).Run(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: out,
		Config:    cfg,
	})
	require.NoError(t, err)

	assert.Zero(t, res.Stats.PagesWritten)
	assert.Equal(t, 3, res.Stats.PagesPending)
	assert.Zero(t, res.Stats.AssetsCopied)

	var tasks *runner.PageResult
	for _, page := range res.Pages {
		if page.Name == "proj.tasks.md" {
			tasks = page.Result
		}
	}
	require.NotNil(t, tasks)
	assert.Contains(t, string(tasks.Diff), "+- two")
	assert.Equal(t, "changes pending", tasks.Summary())

	// Nothing was written.
	assert.Equal(t, "- one\n", readFile(t, filepath.Join(out, "proj___tasks.md")))
	_, err = os.Stat(filepath.Join(out, "proj.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Backups(t *testing.T) {
	t.Parallel()

	vaultDir := newVault(t)
	out := t.TempDir()
	writeFile(t, out, "proj___tasks.md", "- stale\n")

	cfg := config.NewConfig()
	cfg.RemoveFrontmatter = true
	cfg.Backups.Enabled = true

	res, err := runner.New(runner.NewPipeline()).Run(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: out,
		Config:    cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.BackupsCreated)
	assert.Equal(t, "- stale\n", readFile(t, filepath.Join(out, "proj___tasks.md"+fsutil.BackupSuffix)))
}

func TestRun_VerifyAndWarnings(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	writeFile(t, vaultDir, "open.md", "```\nnever closed\n")
	writeFile(t, vaultDir, "sub.md", "## Only a subheading\n")

	cfg := config.NewConfig()
	cfg.Verify = true

	res, err := runner.New(runner.NewPipeline()).Run(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: t.TempDir(),
		Config:    cfg,
	})
	require.NoError(t, err)
	assert.True(t, res.HasWarnings())
	assert.Equal(t, 1, res.Stats.PagesWithWarnings)
	assert.Positive(t, res.Stats.IssuesTotal, "a tab indented first bullet parses as code")
}

func TestRun_PerNoteFailure(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	writeFile(t, vaultDir, "ok.md", "text\n")
	writeFile(t, vaultDir, "blocked.md", "text\n")

	out := t.TempDir()
	// A directory where the page should go makes that write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(out, "blocked.md"), 0o750))

	res, err := runner.New(runner.NewPipeline()).Run(context.Background(), runner.Options{
		VaultDir:  vaultDir,
		OutputDir: out,
		Config:    config.NewConfig(),
	})
	require.NoError(t, err)
	assert.True(t, res.HasFailures())
	assert.Equal(t, 1, res.Stats.PagesErrored)
	assert.Equal(t, 1, res.Stats.PagesWritten)

	for _, page := range res.Pages {
		if page.Name == "blocked.md" {
			assert.True(t, runner.IsPipelineError(page.Error), "error: %v", page.Error)
		}
	}
}

func TestProcessContent(t *testing.T) {
	t.Parallel()

	res, err := runner.NewPipeline().ProcessContent(context.Background(), "a.md", []byte("# A\n"), runner.DefaultPipelineOptions())
	require.NoError(t, err)
	assert.Equal(t, "- # A\n", string(res.Content))
	assert.Equal(t, 1, res.Blocks)
	assert.Empty(t, res.Issues)
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Separator = ""
	cfg.Backups = config.BackupsConfig{Enabled: true, Mode: "bogus"}
	cfg.NoBackups = true

	opts := runner.PipelineOptionsFromConfig(cfg)
	assert.Equal(t, config.DefaultSeparator, opts.Separator)
	assert.False(t, opts.Backup.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, opts.Backup.Mode)

	assert.Equal(t, runner.DefaultPipelineOptions(), runner.PipelineOptionsFromConfig(nil))
}
