package git

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/apache/tsfile-website/internal/auth"
	"github.com/apache/tsfile-website/internal/deploy"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/workspace"
)

// Publisher implements deploy.Publisher with go-git.
type Publisher struct {
	auth *auth.Manager
	now  func() time.Time
}

var _ deploy.Publisher = (*Publisher)(nil)

// NewPublisher returns a publisher using the standard auth providers.
func NewPublisher() *Publisher {
	return &Publisher{auth: auth.NewManager(), now: time.Now}
}

// Publish replaces the content of the target branch with opts.SourceDir.
// An unchanged tree is not an error: the result has Changed=false and nothing is pushed.
func (p *Publisher) Publish(ctx context.Context, opts deploy.Options) (deploy.Result, error) {
	if err := opts.Validate(); err != nil {
		return deploy.Result{}, err
	}
	if info, err := os.Stat(opts.SourceDir); err != nil || !info.IsDir() {
		return deploy.Result{}, errors.PublishError("source directory does not exist").
			WithCause(err).WithContext("path", opts.SourceDir).UserAction().Build()
	}
	if opts.Remote == "" {
		opts.Remote = "origin"
	}

	method, err := p.auth.CreateAuth(opts.Auth)
	if err != nil {
		return deploy.Result{}, err
	}

	ws := newWorkspace(opts.WorkspaceDir)
	if err := ws.Create(); err != nil {
		return deploy.Result{}, err
	}
	defer func() {
		if cerr := ws.Cleanup(); cerr != nil {
			slog.Warn("Failed to clean up deploy workspace", logfields.Error(cerr))
		}
	}()
	dir, err := ws.Checkout("site")
	if err != nil {
		return deploy.Result{}, err
	}

	repo, created, err := p.checkout(ctx, dir, opts, method)
	if err != nil {
		return deploy.Result{}, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return deploy.Result{}, GitError("failed to open worktree").WithCause(err).Build()
	}

	if err := clearWorktree(dir); err != nil {
		return deploy.Result{}, err
	}
	files, err := copyTree(opts.SourceDir, dir, opts.Dotfiles)
	if err != nil {
		return deploy.Result{}, err
	}
	slog.Debug("Copied site into workspace", logfields.Path(opts.SourceDir), slog.Int("files", files))

	if err := stageAll(wt); err != nil {
		return deploy.Result{}, err
	}
	status, err := wt.Status()
	if err != nil {
		return deploy.Result{}, GitError("failed to read worktree status").WithCause(err).Build()
	}
	if status.IsClean() && !created {
		head, _ := repo.Head()
		res := deploy.Result{Changed: false, Files: files}
		if head != nil {
			res.Commit = head.Hash().String()
		}
		slog.Info("Nothing to publish, branch already up to date", logfields.Branch(opts.Branch), logfields.Commit(res.Commit))
		return res, nil
	}

	hash, err := wt.Commit(opts.Message, &git.CommitOptions{
		Author:            &object.Signature{Name: opts.Author.Name, Email: opts.Author.Email, When: p.now()},
		All:               true,
		AllowEmptyCommits: created,
	})
	if err != nil {
		return deploy.Result{}, GitError("failed to commit").WithCause(err).Build()
	}

	branchRef := plumbing.NewBranchReferenceName(opts.Branch)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: opts.Remote,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(branchRef + ":" + branchRef)},
		Auth:       method,
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return deploy.Result{}, ClassifyGitError(err, "push", opts.Repo)
	}

	slog.Info("Published site",
		logfields.Branch(opts.Branch),
		logfields.Remote(opts.Repo),
		logfields.Commit(hash.String()),
		slog.Int("files", files))
	return deploy.Result{Commit: hash.String(), Changed: true, Files: files, Created: created}, nil
}

func newWorkspace(dir string) *workspace.Manager {
	if dir != "" {
		return workspace.NewPersistentManager(dir, "")
	}
	return workspace.NewManager("")
}

// checkout clones the target branch into dir. When the remote is empty or lacks the
// branch, it initializes a fresh repository with the branch orphaned.
func (p *Publisher) checkout(ctx context.Context, dir string, opts deploy.Options, method transport.AuthMethod) (*git.Repository, bool, error) {
	branchRef := plumbing.NewBranchReferenceName(opts.Branch)
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           opts.Repo,
		RemoteName:    opts.Remote,
		ReferenceName: branchRef,
		SingleBranch:  true,
		Depth:         cloneDepth(opts),
		Auth:          method,
		Tags:          git.NoTags,
	})
	if err == nil {
		slog.Debug("Cloned publish branch", logfields.Branch(opts.Branch), logfields.Remote(opts.Repo))
		return repo, false, nil
	}
	if !isMissingBranch(err) {
		return nil, false, ClassifyGitError(err, "clone", opts.Repo)
	}

	slog.Info("Branch not found on remote, creating orphan branch", logfields.Branch(opts.Branch), logfields.Remote(opts.Repo))
	if rerr := os.RemoveAll(dir); rerr != nil {
		return nil, false, errors.FileSystemError("failed to reset workspace").WithCause(rerr).WithContext("path", dir).Build()
	}
	repo, err = git.PlainInit(dir, false)
	if err != nil {
		return nil, false, GitError("failed to init repository").WithCause(err).Build()
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, branchRef)); err != nil {
		return nil, false, GitError("failed to point HEAD at branch").WithCause(err).Build()
	}
	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: opts.Remote, URLs: []string{opts.Repo}}); err != nil {
		return nil, false, GitError("failed to add remote").WithCause(err).Build()
	}
	return repo, true, nil
}

// cloneDepth mirrors git, which ignores --depth for plain local paths.
func cloneDepth(opts deploy.Options) int {
	if isLocalPath(opts.Repo) {
		return 0
	}
	return opts.Depth
}

func isLocalPath(repo string) bool {
	if strings.Contains(repo, "://") {
		return false
	}
	// scp-like syntax: user@host:path
	if i := strings.Index(repo, ":"); i > 0 && !filepath.IsAbs(repo) && !strings.ContainsAny(repo[:i], `/\`) && len(repo[:i]) > 1 {
		return false
	}
	return true
}

func isMissingBranch(err error) bool {
	return stderrors.Is(err, transport.ErrEmptyRemoteRepository) ||
		stderrors.Is(err, plumbing.ErrReferenceNotFound) ||
		stderrors.Is(err, git.NoMatchingRefSpecError{}) ||
		strings.Contains(err.Error(), "couldn't find remote ref")
}

// stageAll is `git add -A`: new and modified files are added, removed files dropped.
func stageAll(wt *git.Worktree) error {
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return GitError("failed to stage files").WithCause(err).Build()
	}
	status, err := wt.Status()
	if err != nil {
		return GitError("failed to read worktree status").WithCause(err).Build()
	}
	for path, st := range status {
		if st.Worktree == git.Deleted {
			if _, err := wt.Remove(path); err != nil {
				return GitError("failed to stage removal").WithCause(err).WithContext("path", path).Build()
			}
		}
	}
	return nil
}
