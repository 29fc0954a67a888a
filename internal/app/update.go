package app

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"dotnet-bump/internal/core"
	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/types"
)

const (
	defaultMetadataFile   = "DotnetRuntimeMetadata.json"
	defaultGlobalJSONFile = "global.json"
)

// Update runs the full maintenance pipeline: resolve the SDK version,
// rewrite the global.json pin, bump package references from the feed,
// pin the dev container image, and optionally package. Every step after
// SDK resolution is gated on an update having been found.
func (s Service) Update(ctx context.Context, req UpdateRequest) (UpdateResult, error) {
	repoRoot := defaultRepoRoot(req.RepoRoot)
	metadataPath := resolvePath(repoRoot, req.MetadataPath, defaultMetadataFile)
	globalPath := resolvePath(repoRoot, req.GlobalJSONPath, defaultGlobalJSONFile)

	metadata, err := s.Metadata.Load(metadataPath)
	if err != nil {
		return UpdateResult{}, err
	}
	if err := core.ValidateMetadata(ctx, metadata); err != nil {
		return UpdateResult{}, err
	}
	rules, err := s.Rules.Load(req.RulesPath)
	if err != nil {
		return UpdateResult{}, err
	}

	sdk, err := s.resolveSDK(ctx, req.SDKVersion, metadata, globalPath)
	if err != nil {
		return UpdateResult{}, err
	}
	if !sdk.ShouldUpdate {
		log.Info().
			Str("channel", sdk.Channel).
			Str("current", sdk.CurrentVersion).
			Msg("no sdk update available")
		return UpdateResult{SDK: sdk}, nil
	}

	if err := s.Manifest.WriteSDKVersion(globalPath, sdk.CandidateVersion); err != nil {
		return UpdateResult{SDK: sdk}, err
	}
	log.Info().
		Str("from", sdk.CurrentVersion).
		Str("to", sdk.CandidateVersion).
		Msg("updated pinned sdk version")

	refs, err := s.scanReferences(repoRoot, rules)
	if err != nil {
		return UpdateResult{SDK: sdk}, err
	}
	endpoint, err := feedEndpoint(req.FeedURL, req.Feed, metadata)
	if err != nil {
		return UpdateResult{SDK: sdk}, err
	}
	feed := s.NewFeed(endpoint, req.FeedUser, req.FeedKey, req.FeedTimeoutSec)
	feedVersions, err := listFeedVersions(ctx, feed, refs)
	if err != nil {
		return UpdateResult{SDK: sdk}, err
	}
	plan, err := core.ResolvePlan(refs, feedVersions, metadata.Sdk.PackageVersionPattern, req.Feed == types.FeedKindRTM)
	if err != nil {
		return UpdateResult{SDK: sdk}, err
	}
	rewritten, err := s.applyPlan(plan)
	if err != nil {
		return UpdateResult{SDK: sdk}, err
	}
	for _, resolution := range plan {
		log.Info().
			Str("package", resolution.Reference.Name).
			Str("from", resolution.Reference.Version).
			Str("to", resolution.NewVersion).
			Str("file", resolution.Reference.SourceFile).
			Msg("bumped package reference")
	}

	devContainerPath := filepath.Join(repoRoot, rules.DevContainerFile)
	if err := s.DevContainer.PinImage(devContainerPath, metadata.Sdk.SdkImageVersion); err != nil {
		return UpdateResult{SDK: sdk}, err
	}
	log.Info().
		Str("tag", metadata.Sdk.SdkImageVersion).
		Msg("pinned dev container sdk image")

	result := UpdateResult{
		SDK:              sdk,
		ResolvedPackages: len(plan),
		RewrittenFiles:   rewritten,
	}
	if req.PackageMSI {
		if _, err := s.Package(ctx, PackageRequest{
			RepoRoot:             repoRoot,
			InteractiveAuth:      req.InteractiveAuth,
			RuntimeSourceFeed:    req.RuntimeSourceFeed,
			RuntimeSourceFeedKey: req.RuntimeSourceFeedKey,
		}); err != nil {
			return result, err
		}
		result.PackagingRan = true
	}
	return result, nil
}

// resolveSDK builds the SDK update record. A fetch failure is reported
// and swallowed: an unreachable release feed must not turn a routine
// maintenance run into a hard failure, it just means nothing to do.
func (s Service) resolveSDK(ctx context.Context, override string, metadata types.RuntimeMetadata, globalPath string) (types.SDKUpdate, error) {
	current, err := s.Manifest.ReadSDKVersion(globalPath)
	if err != nil {
		return types.SDKUpdate{}, err
	}
	channel := core.ResolveChannel(metadata)
	if pinned := strings.TrimSpace(override); pinned != "" {
		return types.SDKUpdate{
			Channel:          channel,
			CurrentVersion:   current,
			CandidateVersion: pinned,
			ShouldUpdate:     true,
		}, nil
	}
	candidate, err := s.SDKRelease.LatestVersion(ctx, channel)
	if err != nil {
		log.Warn().
			Err(err).
			Str("channel", channel).
			Msg("sdk release feed unavailable; skipping update")
		return types.SDKUpdate{Channel: channel, CurrentVersion: current}, nil
	}
	newer, err := core.CompareVersions(candidate, current)
	if err != nil {
		return types.SDKUpdate{}, err
	}
	return types.SDKUpdate{
		Channel:          channel,
		CurrentVersion:   current,
		CandidateVersion: candidate,
		ShouldUpdate:     newer > 0,
	}, nil
}

func (s Service) scanReferences(repoRoot string, rules types.UpdateRules) ([]types.PackageReference, error) {
	paths, err := s.Projects.FindProjectFiles(repoRoot, rules)
	if err != nil {
		return nil, err
	}
	var refs []types.PackageReference
	for _, path := range paths {
		parsed, err := s.Projects.ParsePackageReferences(path)
		if err != nil {
			return nil, err
		}
		for _, ref := range parsed {
			if rules.IsExcludedPackage(ref.Name) {
				continue
			}
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (s Service) applyPlan(plan []types.Resolution) ([]string, error) {
	grouped := core.GroupByFile(plan)
	files := make([]string, 0, len(grouped))
	for file := range grouped {
		files = append(files, file)
	}
	sort.Strings(files)
	var rewritten []string
	for _, file := range files {
		changed, err := s.Projects.ApplyResolutions(file, grouped[file])
		if err != nil {
			return nil, err
		}
		if changed {
			rewritten = append(rewritten, file)
		}
	}
	return rewritten, nil
}

func listFeedVersions(ctx context.Context, feed ports.PackageFeedPort, refs []types.PackageReference) (map[string][]string, error) {
	versions := map[string][]string{}
	for _, name := range core.DistinctNames(refs) {
		available, err := feed.ListVersions(ctx, name)
		if err != nil {
			return nil, err
		}
		versions[name] = available
	}
	return versions, nil
}

// feedEndpoint picks the feed base URL for the selected kind. Selecting
// the internal or RTM feed without a configured URL is an error: falling
// through to the public endpoint would query the wrong feed and leak the
// supplied credential to it.
func feedEndpoint(override string, kind types.FeedKind, metadata types.RuntimeMetadata) (string, error) {
	if url := strings.TrimSpace(override); url != "" {
		return url, nil
	}
	switch kind {
	case types.FeedKindInternal:
		if strings.TrimSpace(metadata.InternalFeed.URL) == "" {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("metadata has no internalfeed.url")
		}
		return metadata.InternalFeed.URL, nil
	case types.FeedKindRTM:
		if strings.TrimSpace(metadata.RTMFeed.URL) == "" {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("metadata has no rtmfeed.url")
		}
		return metadata.RTMFeed.URL, nil
	default:
		return "", nil
	}
}

func defaultRepoRoot(root string) string {
	if strings.TrimSpace(root) == "" {
		return "."
	}
	return root
}

func resolvePath(repoRoot string, path string, defaultName string) string {
	if strings.TrimSpace(path) != "" {
		return path
	}
	return filepath.Join(repoRoot, defaultName)
}
