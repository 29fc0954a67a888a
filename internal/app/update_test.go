package app

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/types"
)

func testMetadata() types.RuntimeMetadata {
	return types.RuntimeMetadata{
		Sdk: types.SdkMetadata{
			Channel:               "8.0.1xx",
			PackageVersionPattern: "6.0.1",
			SdkImageVersion:       "8.0",
		},
	}
}

func testService(manifest *fakeManifest, projects *fakeProjects, release fakeSDKRelease, feed fakeFeed, devContainer *fakeDevContainer) Service {
	return Service{
		Metadata:     fakeMetadata{metadata: testMetadata()},
		Rules:        fakeRules{},
		Manifest:     manifest,
		Projects:     projects,
		SDKRelease:   release,
		DevContainer: devContainer,
		NewFeed: func(string, string, string, int) ports.PackageFeedPort {
			return feed
		},
		GOOS: "linux",
	}
}

func TestUpdateHappyPath(t *testing.T) {
	manifest := &fakeManifest{current: "8.0.100"}
	projects := &fakeProjects{
		files: []string{"src/app.csproj"},
		refs: map[string][]types.PackageReference{
			"src/app.csproj": {
				{Name: "System.Text.Json", Version: "6.0.0", SourceFile: "src/app.csproj"},
				{Name: "Microsoft.PowerShell.Native", Version: "7.0.0", SourceFile: "src/app.csproj"},
			},
		},
	}
	feed := fakeFeed{versions: map[string][]string{
		"System.Text.Json": {"6.0.1-preview1", "6.0.1", "6.0.2"},
	}}
	devContainer := &fakeDevContainer{}
	service := testService(manifest, projects, fakeSDKRelease{version: "8.0.204"}, feed, devContainer)

	result, err := service.Update(t.Context(), UpdateRequest{})
	require.NoError(t, err)

	// ---------- SDK ----------
	assert.True(t, result.SDK.ShouldUpdate)
	assert.Equal(t, "8.0.204", result.SDK.CandidateVersion)
	assert.Equal(t, []string{"8.0.204"}, manifest.written)

	// ---------- Packages ----------
	assert.Equal(t, 1, result.ResolvedPackages)
	require.Len(t, projects.applied["src/app.csproj"], 1)
	resolution := projects.applied["src/app.csproj"][0]
	assert.Equal(t, "System.Text.Json", resolution.Reference.Name)
	assert.Equal(t, "6.0.1-preview1", resolution.NewVersion)

	// ---------- Dev container ----------
	assert.Equal(t, []string{"8.0"}, devContainer.pinned)
	assert.False(t, result.PackagingRan)
}

func TestUpdateSkipsWhenReleaseFeedUnavailable(t *testing.T) {
	manifest := &fakeManifest{current: "8.0.100"}
	projects := &fakeProjects{}
	devContainer := &fakeDevContainer{}
	service := testService(manifest, projects, fakeSDKRelease{err: errors.New("dns failure")}, fakeFeed{}, devContainer)

	result, err := service.Update(t.Context(), UpdateRequest{})
	require.NoError(t, err)
	assert.False(t, result.SDK.ShouldUpdate)
	assert.Empty(t, manifest.written)
	assert.Empty(t, devContainer.pinned)
	assert.Empty(t, projects.applied)
}

func TestUpdateSkipsWhenNoNewerVersion(t *testing.T) {
	manifest := &fakeManifest{current: "8.0.204"}
	service := testService(manifest, &fakeProjects{}, fakeSDKRelease{version: "8.0.204"}, fakeFeed{}, &fakeDevContainer{})

	result, err := service.Update(t.Context(), UpdateRequest{})
	require.NoError(t, err)
	assert.False(t, result.SDK.ShouldUpdate)
	assert.Empty(t, manifest.written)
}

func TestUpdateOverrideHitsManifestGuard(t *testing.T) {
	manifest := &fakeManifest{
		current: "8.0.100",
		writeErr: errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg("sdk version is unchanged"),
	}
	service := testService(manifest, &fakeProjects{}, fakeSDKRelease{}, fakeFeed{}, &fakeDevContainer{})

	_, err := service.Update(t.Context(), UpdateRequest{SDKVersion: "8.0.100"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
}

func TestUpdateRejectsUnconfiguredFeed(t *testing.T) {
	manifest := &fakeManifest{current: "8.0.100"}
	projects := &fakeProjects{}
	// The metadata carries no internalfeed.url or rtmfeed.url, so
	// selecting either feed must fail instead of silently querying
	// nuget.org with the supplied credential.
	service := testService(manifest, projects, fakeSDKRelease{version: "8.0.204"}, fakeFeed{}, &fakeDevContainer{})

	_, err := service.Update(t.Context(), UpdateRequest{Feed: types.FeedKindRTM, FeedKey: "secret"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Update(t.Context(), UpdateRequest{Feed: types.FeedKindInternal})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Check(t.Context(), CheckRequest{Feed: types.FeedKindRTM})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestFeedEndpointSelection(t *testing.T) {
	metadata := testMetadata()
	metadata.InternalFeed.URL = "https://pkgs.example.com/internal/v3-flat2"
	metadata.RTMFeed.URL = "https://pkgs.example.com/rtm/v3-flat2"

	endpoint, err := feedEndpoint("", types.FeedKindInternal, metadata)
	require.NoError(t, err)
	assert.Equal(t, "https://pkgs.example.com/internal/v3-flat2", endpoint)

	endpoint, err = feedEndpoint("", types.FeedKindRTM, metadata)
	require.NoError(t, err)
	assert.Equal(t, "https://pkgs.example.com/rtm/v3-flat2", endpoint)

	// An explicit override wins regardless of kind.
	endpoint, err = feedEndpoint("https://override.example.com", types.FeedKindRTM, types.RuntimeMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", endpoint)

	// The public feed needs no configured URL; the adapter defaults it.
	endpoint, err = feedEndpoint("", types.FeedKindNuGetOrg, types.RuntimeMetadata{})
	require.NoError(t, err)
	assert.Empty(t, endpoint)
}

func TestCheckReportsWithoutWriting(t *testing.T) {
	manifest := &fakeManifest{current: "8.0.100"}
	projects := &fakeProjects{
		files: []string{"src/app.csproj"},
		refs: map[string][]types.PackageReference{
			"src/app.csproj": {
				{Name: "System.Text.Json", Version: "6.0.0", SourceFile: "src/app.csproj"},
			},
		},
	}
	feed := fakeFeed{versions: map[string][]string{
		"System.Text.Json": {"6.0.1"},
	}}
	devContainer := &fakeDevContainer{}
	// The SDK release feed failing must not hide the package report.
	service := testService(manifest, projects, fakeSDKRelease{err: errors.New("offline")}, feed, devContainer)

	result, err := service.Check(t.Context(), CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.SDK.ShouldUpdate)
	require.Len(t, result.Pending, 1)
	assert.Equal(t, "6.0.1", result.Pending[0].NewVersion)

	assert.Empty(t, manifest.written)
	assert.Empty(t, devContainer.pinned)
	assert.Empty(t, projects.applied)
}
