package app

import "dotnet-bump/internal/types"

type UpdateRequest struct {
	RepoRoot       string
	MetadataPath   string
	GlobalJSONPath string
	RulesPath      string

	// SDKVersion skips channel resolution and pins this exact version;
	// the manifest guard still rejects a no-op write.
	SDKVersion string

	Feed           types.FeedKind
	FeedURL        string
	FeedUser       string
	FeedKey        string
	FeedTimeoutSec int

	PackageMSI           bool
	InteractiveAuth      bool
	RuntimeSourceFeed    string
	RuntimeSourceFeedKey string
}

type UpdateResult struct {
	SDK              types.SDKUpdate
	ResolvedPackages int
	RewrittenFiles   []string
	PackagingRan     bool
}

type CheckRequest struct {
	RepoRoot       string
	MetadataPath   string
	GlobalJSONPath string
	RulesPath      string

	Feed           types.FeedKind
	FeedURL        string
	FeedUser       string
	FeedKey        string
	FeedTimeoutSec int
}

type CheckResult struct {
	SDK     types.SDKUpdate
	Pending []types.Resolution
}

type PackageRequest struct {
	RepoRoot             string
	InteractiveAuth      bool
	RuntimeSourceFeed    string
	RuntimeSourceFeedKey string
}

type PackageResult struct {
	// Recovered is set when the file-list mismatch remediation kicked
	// in and the retry succeeded.
	Recovered bool
}
