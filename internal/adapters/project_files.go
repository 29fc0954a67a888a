package adapters

import (
	"encoding/xml"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/types"
)

type ProjectFilesAdapter struct{}

func NewProjectFilesAdapter() ProjectFilesAdapter {
	return ProjectFilesAdapter{}
}

func (a ProjectFilesAdapter) FindProjectFiles(repoRoot string, rules types.UpdateRules) ([]string, error) {
	var paths []string
	for _, root := range rules.ScanRoots {
		dir := filepath.Join(repoRoot, root)
		if _, err := os.Stat(dir); err != nil {
			// Scan roots are a superset across repo layouts; a missing
			// one is not an error.
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(d.Name(), ".csproj") {
				return nil
			}
			if rules.IsDeniedProject(d.Name()) {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to scan project files").
				WithCause(err)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

type projectXML struct {
	ItemGroups []itemGroup `xml:"ItemGroup"`
}

type itemGroup struct {
	PackageReferences []packageReferenceXML `xml:"PackageReference"`
}

type packageReferenceXML struct {
	Include string `xml:"Include,attr"`
	Version string `xml:"Version,attr"`
}

func (a ProjectFilesAdapter) ParsePackageReferences(path string) ([]types.PackageReference, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read project file").
			WithCause(err)
	}
	var project projectXML
	if err := xml.Unmarshal(content, &project); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse project file").
			WithCause(err)
	}
	var refs []types.PackageReference
	for _, group := range project.ItemGroups {
		for _, ref := range group.PackageReferences {
			name := strings.TrimSpace(ref.Include)
			version := strings.TrimSpace(ref.Version)
			if name == "" || version == "" {
				continue
			}
			refs = append(refs, types.PackageReference{
				Name:       name,
				Version:    version,
				SourceFile: path,
			})
		}
	}
	return refs, nil
}

// ApplyResolutions rewrites pinned versions by exact text substitution
// so the rest of the file keeps its formatting byte for byte. When the
// declaration substring is not found verbatim the occurrence is skipped
// silently; the file is written only if something actually changed.
func (a ProjectFilesAdapter) ApplyResolutions(path string, resolutions []types.Resolution) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read project file").
			WithCause(err)
	}
	text := string(content)
	updated := text
	for _, resolution := range resolutions {
		old := declarationSubstring(resolution.Reference.Name, resolution.Reference.Version)
		replacement := declarationSubstring(resolution.Reference.Name, resolution.NewVersion)
		if !strings.Contains(updated, old) {
			log.Debug().
				Str("file", path).
				Str("package", resolution.Reference.Name).
				Msg("declaration not found verbatim; skipping substitution")
			continue
		}
		updated = strings.ReplaceAll(updated, old, replacement)
	}
	if updated == text {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write project file").
			WithCause(err)
	}
	return true, nil
}

func declarationSubstring(name string, version string) string {
	return `"` + name + `" Version="` + version + `"`
}

var _ ports.ProjectFilesPort = ProjectFilesAdapter{}
