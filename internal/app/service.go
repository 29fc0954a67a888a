package app

import (
	"runtime"

	"dotnet-bump/internal/adapters"
	"dotnet-bump/internal/ports"
)

type Service struct {
	Metadata     ports.RuntimeMetadataPort
	Rules        ports.UpdateRulesPort
	Manifest     ports.GlobalManifestPort
	Projects     ports.ProjectFilesPort
	SDKRelease   ports.SDKReleasePort
	DevContainer ports.DevContainerPort

	// NewFeed and NewPackaging build per-request adapters, since feed
	// endpoint and packaging credentials come from the request.
	NewFeed      func(endpoint string, username string, apiKey string, timeoutSec int) ports.PackageFeedPort
	NewPackaging func(repoRoot string, runtimeSourceFeed string, runtimeSourceFeedKey string, interactiveAuth bool) ports.PackagingPort

	// GOOS gates the packaging driver; overridden in tests.
	GOOS string
}

func NewService() Service {
	return Service{
		Metadata:     adapters.NewMetadataFileAdapter(),
		Rules:        adapters.NewRulesFileAdapter(),
		Manifest:     adapters.NewGlobalJSONAdapter(),
		Projects:     adapters.NewProjectFilesAdapter(),
		SDKRelease:   adapters.NewSDKReleaseAdapter("", 0),
		DevContainer: adapters.NewDevContainerAdapter(),
		NewFeed: func(endpoint string, username string, apiKey string, timeoutSec int) ports.PackageFeedPort {
			return adapters.NewNuGetFeedAdapter(endpoint, username, apiKey, timeoutSec)
		},
		NewPackaging: func(repoRoot string, runtimeSourceFeed string, runtimeSourceFeedKey string, interactiveAuth bool) ports.PackagingPort {
			return adapters.NewPackagingBuildAdapter(repoRoot, runtimeSourceFeed, runtimeSourceFeedKey, interactiveAuth)
		},
		GOOS: runtime.GOOS,
	}
}
