package ports

import "dotnet-bump/internal/types"

// ProjectFilesPort discovers project files, extracts their package
// references, and applies resolved version bumps back to disk.
type ProjectFilesPort interface {
	// FindProjectFiles walks the rule's scan roots under repoRoot for
	// .csproj files, skipping denylisted basenames.
	FindProjectFiles(repoRoot string, rules types.UpdateRules) ([]string, error)

	// ParsePackageReferences returns one reference per PackageReference
	// declaration carrying both a name and a pinned version.
	ParsePackageReferences(path string) ([]types.PackageReference, error)

	// ApplyResolutions rewrites the file via literal substitution of the
	// dependency-declaration substrings. Returns true when the file was
	// written. A declaration that no longer matches verbatim is left
	// untouched without error.
	ApplyResolutions(path string, resolutions []types.Resolution) (bool, error)
}
