package locator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/vcs"
)

// DefaultHookName is the hook kilm manages unless configured otherwise
const DefaultHookName = "post-merge"

// Repository is a located git working tree
type Repository struct {
	// Root is the working tree root
	Root string
	// GitDir is the repository metadata directory of this working tree
	GitDir string
	// CommonDir is the primary repository's metadata directory; it equals
	// GitDir except in linked worktrees
	CommonDir string
	// HooksDir is where git looks for hooks
	HooksDir string
	// HooksSource names how HooksDir was resolved
	HooksSource string
}

// IsWorktree reports whether this is a linked worktree
func (r Repository) IsWorktree() bool {
	return r.GitDir != r.CommonDir
}

// HookPath returns the path of the named hook
func (r Repository) HookPath(name string) string {
	if name == "" {
		name = DefaultHookName
	}
	return filepath.Join(r.HooksDir, name)
}

// FindRepository walks up from start to the first .git entry and resolves
// the hooks directory. git may be nil, in which case core.hooksPath is not
// consulted.
func FindRepository(ctx context.Context, fsys types.FS, git vcs.Runner, start string) (*Repository, error) {
	logger := logging.GetLogger("locator")

	abs, err := paths.Normalize(start)
	if err != nil {
		return nil, err
	}

	root, dotGit, ok := findDotGit(fsys, abs)
	if !ok {
		return nil, errors.Newf(errors.ErrNotAGitRepository, "%s is not inside a git repository", abs).
			WithDetail("path", abs)
	}

	repo := &Repository{Root: root, GitDir: dotGit, CommonDir: dotGit}
	if info, err := fsys.Stat(dotGit); err == nil && !info.IsDir() {
		gitDir, err := readGitFile(fsys, dotGit)
		if err != nil {
			return nil, err
		}
		repo.GitDir = gitDir
		repo.CommonDir = gitDir
		if common, ok := readCommonDir(fsys, gitDir); ok {
			repo.CommonDir = common
		}
	}

	if dir, ok := configuredHooksPath(ctx, fsys, git, root); ok {
		repo.HooksDir = dir
		repo.HooksSource = "core.hooksPath"
	} else if repo.IsWorktree() {
		repo.HooksDir = filepath.Join(repo.CommonDir, "hooks")
		repo.HooksSource = "worktree"
	} else {
		repo.HooksDir = filepath.Join(repo.GitDir, "hooks")
		repo.HooksSource = "default"
	}

	logger.Debug().
		Str("root", repo.Root).
		Str("git_dir", repo.GitDir).
		Str("hooks_dir", repo.HooksDir).
		Str("source", repo.HooksSource).
		Msg("Located repository")
	return repo, nil
}

func findDotGit(fsys types.FS, dir string) (string, string, bool) {
	for {
		candidate := filepath.Join(dir, ".git")
		if _, err := fsys.Stat(candidate); err == nil {
			return dir, candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", false
		}
		dir = parent
	}
}

// readGitFile follows the "gitdir: <path>" indirection of a worktree or
// submodule .git file
func readGitFile(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).WithDetail("path", path)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "gitdir:"); ok {
			gitDir := strings.TrimSpace(rest)
			if !filepath.IsAbs(gitDir) {
				gitDir = filepath.Join(filepath.Dir(path), gitDir)
			}
			return filepath.Clean(gitDir), nil
		}
	}
	return "", errors.Newf(errors.ErrNotAGitRepository, "%s has no gitdir: line", path).WithDetail("path", path)
}

// readCommonDir reads the commondir file git writes into a linked
// worktree's metadata directory
func readCommonDir(fsys types.FS, gitDir string) (string, bool) {
	data, err := fsys.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return "", false
	}
	common := strings.TrimSpace(string(data))
	if common == "" {
		return "", false
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common), true
}

func configuredHooksPath(ctx context.Context, fsys types.FS, git vcs.Runner, root string) (string, bool) {
	if git == nil {
		return "", false
	}
	logger := logging.GetLogger("locator")

	value, ok, err := vcs.ConfigGet(ctx, git, root, "core.hooksPath")
	if err != nil {
		logger.Warn().Err(err).Msg("Could not read core.hooksPath, using the default hooks directory")
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}

	dir := paths.ExpandHome(value)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	if info, err := fsys.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn().Str("hooks_path", dir).Msg("core.hooksPath does not exist, using the default hooks directory")
		return "", false
	}
	return filepath.Clean(dir), true
}
