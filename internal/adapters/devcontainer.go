package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dotnet-bump/internal/ports"
)

const baseImagePrefix = "FROM mcr.microsoft.com/dotnet"

const nightlyImageFormat = "FROM mcr.microsoft.com/dotnet/nightly/sdk:%s"

type DevContainerAdapter struct{}

func NewDevContainerAdapter() DevContainerAdapter {
	return DevContainerAdapter{}
}

// PinImage replaces every line referencing the dotnet base image with
// the nightly SDK image at the given tag, and writes the file back
// unconditionally.
func (a DevContainerAdapter) PinImage(path string, imageTag string) error {
	if strings.TrimSpace(imageTag) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk image tag is empty")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("dev container file not found").
			WithCause(err)
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, baseImagePrefix) {
			lines[i] = fmt.Sprintf(nightlyImageFormat, imageTag)
		}
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write dev container file").
			WithCause(err)
	}
	return nil
}

var _ ports.DevContainerPort = DevContainerAdapter{}
