// Package git reads document text out of git history using go-git, so a
// file tracked in a repository can be opened at any revision.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/kezou/pacer/internal/ports"
)

// Source implements the ports.GitSource interface using go-git.
type Source struct{}

// NewSource creates a new git source.
func NewSource() *Source {
	return &Source{}
}

// Ensure Source implements ports.GitSource.
var _ ports.GitSource = (*Source)(nil)

// Fetch resolves revision inside the repository containing dir and returns
// the contents of the file at path as of that commit. An empty revision
// means HEAD.
func (s *Source) Fetch(ctx context.Context, dir, revision, path string) (*ports.BlobInfo, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	if revision == "" {
		revision = "HEAD"
	}

	// Find the git repository by traversing up the directory tree
	repoPath, err := findGitRepo(dir)
	if err != nil {
		return nil, fmt.Errorf("git repository not found: %w", err)
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	// ResolveRevision handles branch names, tags, short hashes and
	// relative forms like HEAD~2.
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit: %w", err)
	}

	var file *object.File
	for _, candidate := range blobCandidates(repoPath, dir, path) {
		file, err = commit.File(candidate)
		if err == nil {
			break
		}
		if !errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("failed to read %s: %w", candidate, err)
		}
	}
	if file == nil {
		return nil, fmt.Errorf("%s not found at %s", path, GetShortCommit(hash.String()))
	}

	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}

	// Get repository name from remote URL
	repoName := ""
	remotes, err := repo.Remotes()
	if err == nil && len(remotes) > 0 {
		urls := remotes[0].Config().URLs
		if len(urls) > 0 {
			repoName = extractRepoName(urls[0])
		}
	}

	return &ports.BlobInfo{
		Repository: repoName,
		Revision:   hash.String(),
		Path:       file.Name,
		Content:    content,
	}, nil
}

// IsRepository checks whether dir is inside a git work tree.
func (s *Source) IsRepository(dir string) bool {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return false
		}
	}

	_, err := findGitRepo(dir)
	return err == nil
}

// blobCandidates lists the repo-relative paths to try for the given input.
// The path may be relative to dir or already relative to the repository
// root; the tree lookup wants the latter with forward slashes.
func blobCandidates(repoPath, dir, path string) []string {
	asGiven := filepath.ToSlash(filepath.Clean(path))

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(dir, path)
	}

	fromDir := ""
	if rel, err := filepath.Rel(repoPath, abs); err == nil && !strings.HasPrefix(rel, "..") {
		fromDir = filepath.ToSlash(rel)
	}

	if fromDir == "" || fromDir == asGiven {
		return []string{asGiven}
	}
	return []string{fromDir, asGiven}
}

// findGitRepo traverses up the directory tree to find a .git directory.
func findGitRepo(startPath string) (string, error) {
	currentPath := startPath

	for {
		gitPath := filepath.Join(currentPath, ".git")
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return currentPath, nil
		}

		// Check if this is a git worktree (file containing gitdir reference)
		if err == nil && !info.IsDir() {
			content, err := os.ReadFile(gitPath)
			if err == nil && strings.HasPrefix(string(content), "gitdir: ") {
				return currentPath, nil
			}
		}

		// Move up to parent directory
		parent := filepath.Dir(currentPath)
		if parent == currentPath {
			// We've reached the root
			break
		}
		currentPath = parent
	}

	return "", fmt.Errorf("no .git directory found")
}

// extractRepoName extracts the repository name from a git URL.
func extractRepoName(url string) string {
	// Handle SSH URLs like git@github.com:user/repo.git
	if strings.HasPrefix(url, "git@") {
		parts := strings.Split(url, ":")
		if len(parts) >= 2 {
			path := parts[len(parts)-1]
			path = strings.TrimSuffix(path, ".git")
			return path
		}
	}

	// Handle HTTPS URLs like https://github.com/user/repo.git
	if strings.HasPrefix(url, "http") {
		parts := strings.Split(url, "/")
		if len(parts) >= 2 {
			repo := parts[len(parts)-1]
			repo = strings.TrimSuffix(repo, ".git")
			return parts[len(parts)-2] + "/" + repo
		}
	}

	return url
}

// GetShortCommit returns a shortened commit hash.
func GetShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
