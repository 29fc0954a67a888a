package app

import (
	"context"

	"dotnet-bump/internal/core"
	"dotnet-bump/internal/types"
)

// Check performs the same resolution pass as Update but writes nothing:
// it reports the SDK candidate and every package bump the feed would
// produce. Unlike Update, the package scan is not gated on an SDK
// update being found, so the report is complete either way.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	repoRoot := defaultRepoRoot(req.RepoRoot)
	metadataPath := resolvePath(repoRoot, req.MetadataPath, defaultMetadataFile)
	globalPath := resolvePath(repoRoot, req.GlobalJSONPath, defaultGlobalJSONFile)

	metadata, err := s.Metadata.Load(metadataPath)
	if err != nil {
		return CheckResult{}, err
	}
	if err := core.ValidateMetadata(ctx, metadata); err != nil {
		return CheckResult{}, err
	}
	rules, err := s.Rules.Load(req.RulesPath)
	if err != nil {
		return CheckResult{}, err
	}

	sdk, err := s.resolveSDK(ctx, "", metadata, globalPath)
	if err != nil {
		return CheckResult{}, err
	}

	refs, err := s.scanReferences(repoRoot, rules)
	if err != nil {
		return CheckResult{}, err
	}
	endpoint, err := feedEndpoint(req.FeedURL, req.Feed, metadata)
	if err != nil {
		return CheckResult{}, err
	}
	feed := s.NewFeed(endpoint, req.FeedUser, req.FeedKey, req.FeedTimeoutSec)
	feedVersions, err := listFeedVersions(ctx, feed, refs)
	if err != nil {
		return CheckResult{}, err
	}
	plan, err := core.ResolvePlan(refs, feedVersions, metadata.Sdk.PackageVersionPattern, req.Feed == types.FeedKindRTM)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{SDK: sdk, Pending: plan}, nil
}
