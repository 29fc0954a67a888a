package ports

import "context"

// SDKReleasePort fetches the latest published SDK productVersion for a
// release channel.
type SDKReleasePort interface {
	LatestVersion(ctx context.Context, channel string) (string, error)
}
