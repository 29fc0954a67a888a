package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/shared"
)

// NuGetOrgEndpoint is the public flat-container base used when no feed
// flag or override selects another source.
const NuGetOrgEndpoint = "https://api.nuget.org/v3-flat2"

const defaultFeedTimeout = 30 * time.Second

// NuGetFeedAdapter queries a NuGet v3 flat-container feed for the
// published versions of a package. The order of the returned list is
// whatever the feed sent; the resolver depends on that order.
type NuGetFeedAdapter struct {
	Endpoint string
	Username string
	APIKey   string
	Timeout  time.Duration
}

func NewNuGetFeedAdapter(endpoint string, username string, apiKey string, timeoutSec int) NuGetFeedAdapter {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = NuGetOrgEndpoint
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}
	return NuGetFeedAdapter{
		Endpoint: endpoint,
		Username: username,
		APIKey:   apiKey,
		Timeout:  timeout,
	}
}

type flatContainerIndex struct {
	Versions []string `json:"versions"`
}

func (a NuGetFeedAdapter) ListVersions(ctx context.Context, name string) ([]string, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(a.Endpoint), "/")
	url := fmt.Sprintf("%s/%s/index.json", endpoint, strings.ToLower(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create feed request").
			WithCause(err)
	}
	a.applyBasicAuth(req)
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("nuget feed query failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		// Package unknown to this feed; not an error, just nothing to
		// upgrade to.
		return nil, nil
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("nuget feed query failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, url, strings.TrimSpace(string(body))))
	}
	var index flatContainerIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("nuget feed response is invalid").
			WithCause(err)
	}
	return index.Versions, nil
}

func (a NuGetFeedAdapter) applyBasicAuth(req *http.Request) {
	if strings.TrimSpace(a.APIKey) == "" {
		return
	}
	user := strings.TrimSpace(a.Username)
	if user == "" {
		user = "api"
	}
	req.SetBasicAuth(user, a.APIKey)
}

var _ ports.PackageFeedPort = NuGetFeedAdapter{}
