package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/shared"
)

const defaultReleaseEndpoint = "https://aka.ms/dotnet"

const defaultReleaseTimeout = 30 * time.Second

// SDKReleaseAdapter fetches the latest published SDK productVersion for
// a channel as a plaintext document.
type SDKReleaseAdapter struct {
	Endpoint string
	Timeout  time.Duration
}

func NewSDKReleaseAdapter(endpoint string, timeoutSec int) SDKReleaseAdapter {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultReleaseEndpoint
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultReleaseTimeout
	}
	return SDKReleaseAdapter{Endpoint: endpoint, Timeout: timeout}
}

func (a SDKReleaseAdapter) LatestVersion(ctx context.Context, channel string) (string, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(a.Endpoint), "/")
	url := fmt.Sprintf("%s/%s/productVersion.txt", endpoint, channel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create sdk release request").
			WithCause(err)
	}
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("sdk release feed unavailable").
			WithCause(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("sdk release feed unavailable").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, url, strings.TrimSpace(string(body))))
	}
	version := strings.TrimSpace(string(body))
	if version == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk release feed returned an empty version")
	}
	return version, nil
}

var _ ports.SDKReleasePort = SDKReleaseAdapter{}
