package ports

import "context"

// PackageFeedPort lists the published versions of a package, including
// pre-releases, in the order the feed returns them. An unknown package
// yields an empty list, not an error.
type PackageFeedPort interface {
	ListVersions(ctx context.Context, name string) ([]string, error)
}
