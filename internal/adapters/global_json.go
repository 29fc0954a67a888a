package adapters

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dotnet-bump/internal/ports"
)

type GlobalJSONAdapter struct{}

func NewGlobalJSONAdapter() GlobalJSONAdapter {
	return GlobalJSONAdapter{}
}

func (a GlobalJSONAdapter) ReadSDKVersion(path string) (string, error) {
	_, sdk, err := loadGlobalJSON(path)
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(sdk.Version)
	if version == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("global.json sdk.version is empty")
	}
	return version, nil
}

// WriteSDKVersion replaces sdk.version and persists the document,
// leaving every other field of global.json untouched. Writing the
// already-current version is refused as a guard against no-op runs.
func (a GlobalJSONAdapter) WriteSDKVersion(path string, version string) error {
	document, sdk, err := loadGlobalJSON(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(sdk.Version) == strings.TrimSpace(version) {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg("sdk version is unchanged")
	}
	raw, err := json.Marshal(strings.TrimSpace(version))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode sdk version").
			WithCause(err)
	}
	sdk.Fields["version"] = raw
	sdkRaw, err := json.Marshal(sdk.Fields)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode sdk section").
			WithCause(err)
	}
	document["sdk"] = sdkRaw
	encoded, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode global.json").
			WithCause(err)
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write global.json").
			WithCause(err)
	}
	return nil
}

// globalSdkSection keeps the raw sdk fields alongside the decoded
// version so a rewrite preserves siblings like rollForward.
type globalSdkSection struct {
	Version string
	Fields  map[string]json.RawMessage
}

func loadGlobalJSON(path string) (map[string]json.RawMessage, globalSdkSection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, globalSdkSection{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("global.json not found").
			WithCause(err)
	}
	var document map[string]json.RawMessage
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, globalSdkSection{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse global.json").
			WithCause(err)
	}
	sdkRaw, ok := document["sdk"]
	if !ok {
		return nil, globalSdkSection{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("global.json has no sdk section")
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(sdkRaw, &fields); err != nil {
		return nil, globalSdkSection{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("global.json sdk section is not an object").
			WithCause(err)
	}
	var version string
	if raw, ok := fields["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, globalSdkSection{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("global.json sdk.version is not a string").
				WithCause(err)
		}
	}
	return document, globalSdkSection{Version: version, Fields: fields}, nil
}

var _ ports.GlobalManifestPort = GlobalJSONAdapter{}
