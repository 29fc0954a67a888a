package types

// UpdateRules configures which parts of the repository the update scan
// touches. The zero value of each field falls back to the built-in
// defaults via Merged.
type UpdateRules struct {
	// ScanRoots are the repository-relative directories searched for
	// project files; roots absent from a given checkout are skipped.
	ScanRoots []string `yaml:"scanRoots"`

	// ProjectDenylist lists project file names that must never be
	// rewritten.
	ProjectDenylist []string `yaml:"projectDenylist"`

	// ExcludedPackages lists package names whose pinned versions are
	// left alone regardless of what the feed offers.
	ExcludedPackages []string `yaml:"excludedPackages"`

	// DevContainerFile is the repository-relative path of the dev
	// container Dockerfile to pin.
	DevContainerFile string `yaml:"devContainerFile"`
}

func DefaultUpdateRules() UpdateRules {
	return UpdateRules{
		ScanRoots:       []string{"src", "test", "tools"},
		ProjectDenylist: []string{"GalleryModules.csproj"},
		ExcludedPackages: []string{
			"Microsoft.Management.Infrastructure",
			"Microsoft.PowerShell.Native",
			"Microsoft.Win32.Registry.AccessControl",
		},
		DevContainerFile: ".devcontainer/Dockerfile",
	}
}

// Merged fills unset fields from the defaults; set fields replace the
// corresponding default wholesale rather than appending to it.
func (r UpdateRules) Merged() UpdateRules {
	defaults := DefaultUpdateRules()
	if len(r.ScanRoots) == 0 {
		r.ScanRoots = defaults.ScanRoots
	}
	if len(r.ProjectDenylist) == 0 {
		r.ProjectDenylist = defaults.ProjectDenylist
	}
	if len(r.ExcludedPackages) == 0 {
		r.ExcludedPackages = defaults.ExcludedPackages
	}
	if r.DevContainerFile == "" {
		r.DevContainerFile = defaults.DevContainerFile
	}
	return r
}

func (r UpdateRules) IsDeniedProject(fileName string) bool {
	for _, denied := range r.ProjectDenylist {
		if denied == fileName {
			return true
		}
	}
	return false
}

func (r UpdateRules) IsExcludedPackage(name string) bool {
	for _, excluded := range r.ExcludedPackages {
		if excluded == name {
			return true
		}
	}
	return false
}
