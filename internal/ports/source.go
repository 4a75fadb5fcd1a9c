package ports

import (
	"context"
)

// BlobInfo holds the resolved contents of a file in git history.
type BlobInfo struct {
	Repository string
	Revision   string
	Path       string
	Content    string
}

// GitSource defines the interface for reading file contents out of
// git history. This is a driven port (implemented by adapters).
type GitSource interface {
	// Fetch resolves revision inside the repository containing dir and
	// returns the contents of the file at path as of that commit.
	Fetch(ctx context.Context, dir, revision, path string) (*BlobInfo, error)

	// IsRepository checks whether dir is inside a git work tree.
	IsRepository(dir string) bool
}
