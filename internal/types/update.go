package types

// FeedKind selects which NuGet feed the package resolution queries.
type FeedKind string

const (
	FeedKindNuGetOrg FeedKind = "nuget.org"
	FeedKindInternal FeedKind = "internal"
	FeedKindRTM      FeedKind = "rtm"
)

// SDKUpdate is the outcome of SDK version resolution for a channel.
type SDKUpdate struct {
	Channel          string
	CurrentVersion   string
	CandidateVersion string
	ShouldUpdate     bool
}

// PackageReference is a single pinned dependency occurrence in a
// project file. The same package name can appear in many files, each
// occurrence carries its own source file and pinned version.
type PackageReference struct {
	Name       string
	Version    string
	SourceFile string
}

// Resolution pairs an occurrence with the version it should move to.
type Resolution struct {
	Reference  PackageReference
	NewVersion string
}
