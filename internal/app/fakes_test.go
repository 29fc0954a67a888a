package app

import (
	"context"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/types"
)

type fakeMetadata struct {
	metadata types.RuntimeMetadata
	err      error
}

func (f fakeMetadata) Load(string) (types.RuntimeMetadata, error) {
	return f.metadata, f.err
}

type fakeRules struct {
	rules types.UpdateRules
}

func (f fakeRules) Load(string) (types.UpdateRules, error) {
	return f.rules.Merged(), nil
}

type fakeManifest struct {
	current string
	readErr error

	written  []string
	writeErr error
}

func (f *fakeManifest) ReadSDKVersion(string) (string, error) {
	return f.current, f.readErr
}

func (f *fakeManifest) WriteSDKVersion(_ string, version string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, version)
	return nil
}

type fakeProjects struct {
	files   []string
	refs    map[string][]types.PackageReference
	applied map[string][]types.Resolution
}

func (f *fakeProjects) FindProjectFiles(string, types.UpdateRules) ([]string, error) {
	return f.files, nil
}

func (f *fakeProjects) ParsePackageReferences(path string) ([]types.PackageReference, error) {
	return f.refs[path], nil
}

func (f *fakeProjects) ApplyResolutions(path string, resolutions []types.Resolution) (bool, error) {
	if f.applied == nil {
		f.applied = map[string][]types.Resolution{}
	}
	f.applied[path] = resolutions
	return true, nil
}

type fakeSDKRelease struct {
	version string
	err     error
}

func (f fakeSDKRelease) LatestVersion(context.Context, string) (string, error) {
	return f.version, f.err
}

type fakeFeed struct {
	versions map[string][]string
}

func (f fakeFeed) ListVersions(_ context.Context, name string) ([]string, error) {
	return f.versions[name], nil
}

type fakeDevContainer struct {
	pinned []string
}

func (f *fakeDevContainer) PinImage(_ string, tag string) error {
	f.pinned = append(f.pinned, tag)
	return nil
}

type fakePackaging struct {
	calls []string

	bootstrapErr error
	buildErr     error
	packageErrs  []error
}

func (f *fakePackaging) Bootstrap(context.Context) error {
	f.calls = append(f.calls, "bootstrap")
	return f.bootstrapErr
}

func (f *fakePackaging) BuildRelease(context.Context) error {
	f.calls = append(f.calls, "build")
	return f.buildErr
}

func (f *fakePackaging) Package(context.Context) error {
	f.calls = append(f.calls, "package")
	if len(f.packageErrs) == 0 {
		return nil
	}
	err := f.packageErrs[0]
	f.packageErrs = f.packageErrs[1:]
	return err
}

var (
	_ ports.RuntimeMetadataPort = fakeMetadata{}
	_ ports.UpdateRulesPort     = fakeRules{}
	_ ports.GlobalManifestPort  = (*fakeManifest)(nil)
	_ ports.ProjectFilesPort    = (*fakeProjects)(nil)
	_ ports.SDKReleasePort      = fakeSDKRelease{}
	_ ports.PackageFeedPort     = fakeFeed{}
	_ ports.DevContainerPort    = (*fakeDevContainer)(nil)
	_ ports.PackagingPort       = (*fakePackaging)(nil)
)
