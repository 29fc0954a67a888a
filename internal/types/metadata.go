package types

// RuntimeMetadata mirrors the repository's DotnetRuntimeMetadata.json
// document: the pinned SDK coordinates plus the optional private feed
// endpoints referenced by the internal and RTM build flows.
type RuntimeMetadata struct {
	Sdk          SdkMetadata  `json:"sdk"`
	InternalFeed FeedMetadata `json:"internalfeed"`
	RTMFeed      FeedMetadata `json:"rtmfeed"`
}

type SdkMetadata struct {
	// Channel is the release channel the SDK is tracked on, for
	// example "8.0.1xx".
	Channel string `json:"channel"`

	// NextChannel, when set, takes precedence over Channel so the
	// repository can move to a new release train ahead of time.
	NextChannel string `json:"nextChannel,omitempty"`

	// PackageVersionPattern filters candidate package versions; an
	// exact match is required when resolving against the RTM feed,
	// a prefix match otherwise.
	PackageVersionPattern string `json:"packageVersionPattern"`

	// SdkImageVersion is the container tag to pin the dev container
	// nightly SDK image to.
	SdkImageVersion string `json:"sdkImageVersion"`
}

type FeedMetadata struct {
	URL string `json:"url"`
}
