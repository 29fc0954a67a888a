package core

import (
	"sort"

	"dotnet-bump/internal/types"
)

// ResolvePlan applies PickUpgrade to every reference using the feed
// results gathered per package name. References without a qualifying
// candidate are left out of the plan and therefore skipped during the
// rewrite phase.
func ResolvePlan(refs []types.PackageReference, feedVersions map[string][]string, pattern string, strict bool) ([]types.Resolution, error) {
	var plan []types.Resolution
	for _, ref := range refs {
		available := feedVersions[ref.Name]
		if len(available) == 0 {
			continue
		}
		chosen, err := PickUpgrade(available, pattern, strict, ref.Version)
		if err != nil {
			return nil, err
		}
		if chosen == "" {
			continue
		}
		plan = append(plan, types.Resolution{Reference: ref, NewVersion: chosen})
	}
	return plan, nil
}

// GroupByFile buckets resolutions by source file for the rewrite phase,
// preserving plan order within each file.
func GroupByFile(plan []types.Resolution) map[string][]types.Resolution {
	grouped := map[string][]types.Resolution{}
	for _, resolution := range plan {
		file := resolution.Reference.SourceFile
		grouped[file] = append(grouped[file], resolution)
	}
	return grouped
}

// DistinctNames returns the sorted set of package names in the
// references, so the feed is queried once per package.
func DistinctNames(refs []types.PackageReference) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, ref := range refs {
		if _, ok := seen[ref.Name]; ok {
			continue
		}
		seen[ref.Name] = struct{}{}
		names = append(names, ref.Name)
	}
	sort.Strings(names)
	return names
}
