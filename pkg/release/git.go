package release

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/stratum-research/autoreadme/pkg/errors"
)

// DefaultRemote is the remote tags are pushed to.
const DefaultRemote = "origin"

// Repo is the slice of a git repository that releases and the automation
// handlers need.
type Repo struct {
	repo *git.Repository
	root string
}

// Open opens the repository containing dir, searching parent directories.
// It fails with GIT_ERROR when dir is not inside a repository.
func Open(dir string) (*Repo, error) {
	if dir == "" {
		dir = "."
	}
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGit, err, "open repository at %s", dir)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGit, err, "bare repositories are not supported")
	}
	return &Repo{repo: r, root: wt.Filesystem.Root()}, nil
}

// Root returns the worktree root.
func (r *Repo) Root() string { return r.root }

// TagExists reports whether a tag named name exists.
func (r *Repo) TagExists(name string) (bool, error) {
	_, err := r.repo.Tag(name)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, git.ErrTagNotFound):
		return false, nil
	default:
		return false, errors.Wrap(errors.ErrCodeGit, err, "look up tag %s", name)
	}
}

// CreateTag creates a lightweight tag at HEAD.
func (r *Repo) CreateTag(name string) (plumbing.Hash, error) {
	head, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, errors.Wrap(errors.ErrCodeGit, err, "resolve HEAD")
	}
	if _, err := r.repo.CreateTag(name, head.Hash(), nil); err != nil {
		return plumbing.ZeroHash, errors.Wrap(errors.ErrCodeGit, err, "create tag %s", name)
	}
	return head.Hash(), nil
}

// IsClean reports whether path has no staged, unstaged or untracked
// changes. Paths outside the worktree are an error.
func (r *Repo) IsClean(path string) (bool, error) {
	rel, err := r.relative(path)
	if err != nil {
		return false, err
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeGit, err, "open worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeGit, err, "read status")
	}
	fs, ok := status[rel]
	if !ok {
		return true, nil
	}
	return fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified, nil
}

// OriginURL returns the first URL of the origin remote, or "" when the
// repository has no origin.
func (r *Repo) OriginURL() (string, error) {
	remote, err := r.repo.Remote(DefaultRemote)
	if stderrors.Is(err, git.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeGit, err, "read remote %s", DefaultRemote)
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		return urls[0], nil
	}
	return "", nil
}

// PushTag pushes a tag to origin. A non-empty token authenticates HTTPS
// remotes; other transports use their default credentials.
func (r *Repo) PushTag(ctx context.Context, name, token string) error {
	url, err := r.OriginURL()
	if err != nil {
		return err
	}
	if url == "" {
		return errors.New(errors.ErrCodeGit, "repository has no %s remote", DefaultRemote)
	}

	ref := plumbing.NewTagReferenceName(name)
	opts := &git.PushOptions{
		RemoteName: DefaultRemote,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(ref + ":" + ref)},
		Auth:       tokenAuth(url, token),
	}
	if err := r.repo.PushContext(ctx, opts); err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrap(errors.ErrCodeGit, err, "push tag %s", name)
	}
	return nil
}

func tokenAuth(url, token string) transport.AuthMethod {
	if token == "" || !strings.HasPrefix(url, "https://") {
		return nil
	}
	// GitHub accepts any non-empty user name with a token as password.
	return &githttp.BasicAuth{Username: "x-access-token", Password: token}
}

func (r *Repo) relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", path)
	}
	root := r.root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s is outside the repository", path)
	}
	return filepath.ToSlash(rel), nil
}
