package core

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"dotnet-bump/internal/types"
)

// ValidateMetadata checks the loaded runtime metadata for the fields
// the pipeline depends on, failing fast on shape mismatch instead of
// carrying empty values downstream.
func ValidateMetadata(ctx context.Context, metadata types.RuntimeMetadata) error {
	assert.NotEmpty(ctx, metadata.Sdk.SdkImageVersion, "sdk.sdkImageVersion must be set")
	if strings.TrimSpace(metadata.Sdk.Channel) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk.channel must be set")
	}
	if strings.TrimSpace(metadata.Sdk.PackageVersionPattern) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk.packageVersionPattern must be set")
	}
	return nil
}

// ResolveChannel returns the channel the SDK resolver should query:
// nextChannel when the repository is moving trains, else the current
// channel.
func ResolveChannel(metadata types.RuntimeMetadata) string {
	if next := strings.TrimSpace(metadata.Sdk.NextChannel); next != "" {
		return next
	}
	return strings.TrimSpace(metadata.Sdk.Channel)
}
