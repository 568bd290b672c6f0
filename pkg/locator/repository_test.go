package locator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hooksPathRunner answers git config --get core.hooksPath
type hooksPathRunner struct {
	value string
}

func (h hooksPathRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	if strings.Join(args, " ") != "config --get core.hooksPath" {
		return "", errors.Newf(errors.ErrCommandFailed, "unexpected git %v", args)
	}
	if h.value == "" {
		return "", errors.New(errors.ErrCommandFailed, "git config failed").WithDetail("exit_code", 1)
	}
	return h.value, nil
}

func TestFindRepository(t *testing.T) {
	ctx := context.Background()
	fsys := filesystem.NewOS()

	t.Run("plain repository from a subdirectory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "hooks"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "symbols", "deep"), 0755))

		repo, err := FindRepository(ctx, fsys, hooksPathRunner{}, filepath.Join(root, "symbols", "deep"))
		require.NoError(t, err)
		assert.Equal(t, root, repo.Root)
		assert.False(t, repo.IsWorktree())
		assert.Equal(t, filepath.Join(root, ".git", "hooks"), repo.HooksDir)
		assert.Equal(t, "default", repo.HooksSource)
		assert.Equal(t, filepath.Join(root, ".git", "hooks", "post-merge"), repo.HookPath(""))
		assert.Equal(t, filepath.Join(root, ".git", "hooks", "post-checkout"), repo.HookPath("post-checkout"))
	})

	t.Run("custom hooks path relative to the root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".githooks"), 0755))

		repo, err := FindRepository(ctx, fsys, hooksPathRunner{value: ".githooks"}, root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ".githooks"), repo.HooksDir)
		assert.Equal(t, "core.hooksPath", repo.HooksSource)
	})

	t.Run("missing custom hooks path falls back", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))

		repo, err := FindRepository(ctx, fsys, hooksPathRunner{value: "/does/not/exist"}, root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ".git", "hooks"), repo.HooksDir)
	})

	t.Run("linked worktree uses the primary repository hooks", func(t *testing.T) {
		base := t.TempDir()
		main := filepath.Join(base, "main")
		wtMeta := filepath.Join(main, ".git", "worktrees", "feature")
		require.NoError(t, os.MkdirAll(wtMeta, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(wtMeta, "commondir"), []byte("../..\n"), 0644))

		wt := filepath.Join(base, "feature")
		require.NoError(t, os.MkdirAll(wt, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(wt, ".git"), []byte("gitdir: "+wtMeta+"\n"), 0644))

		repo, err := FindRepository(ctx, fsys, nil, wt)
		require.NoError(t, err)
		assert.Equal(t, wt, repo.Root)
		assert.True(t, repo.IsWorktree())
		assert.Equal(t, wtMeta, repo.GitDir)
		assert.Equal(t, filepath.Join(main, ".git"), repo.CommonDir)
		assert.Equal(t, filepath.Join(main, ".git", "hooks"), repo.HooksDir)
		assert.Equal(t, "worktree", repo.HooksSource)
	})

	t.Run("relative gitdir without commondir", func(t *testing.T) {
		base := t.TempDir()
		meta := filepath.Join(base, "meta")
		require.NoError(t, os.MkdirAll(meta, 0755))
		wt := filepath.Join(base, "wt")
		require.NoError(t, os.MkdirAll(wt, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(wt, ".git"), []byte("gitdir: ../meta"), 0644))

		repo, err := FindRepository(ctx, fsys, nil, wt)
		require.NoError(t, err)
		assert.Equal(t, meta, repo.GitDir)
		assert.Equal(t, filepath.Join(meta, "hooks"), repo.HooksDir)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := FindRepository(ctx, filesystem.NewMemory(), nil, "/srv/libs")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotAGitRepository))
		assert.Equal(t, 3, errors.ExitCode(err))
	})

	t.Run("broken git file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("nonsense"), 0644))

		_, err := FindRepository(ctx, fsys, nil, root)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotAGitRepository))
	})
}
