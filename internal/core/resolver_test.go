package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dotnet-bump/internal/types"
)

func TestResolvePlanSelectsPerOccurrence(t *testing.T) {
	refs := []types.PackageReference{
		{Name: "System.Text.Json", Version: "6.0.0", SourceFile: "src/a.csproj"},
		{Name: "System.Text.Json", Version: "6.0.1", SourceFile: "test/b.csproj"},
	}
	feed := map[string][]string{
		"System.Text.Json": {"6.0.2", "6.0.1", "6.0.0"},
	}
	plan, err := ResolvePlan(refs, feed, "6.0", false)
	require.NoError(t, err)
	if diff := cmp.Diff(2, len(plan)); diff != "" {
		t.Fatalf("plan size mismatch (-want +got):\n%s", diff)
	}
	// Both occurrences resolve independently to the first qualifying
	// feed entry.
	if diff := cmp.Diff("6.0.2", plan[0].NewVersion); diff != "" {
		t.Fatalf("first occurrence (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("6.0.2", plan[1].NewVersion); diff != "" {
		t.Fatalf("second occurrence (-want +got):\n%s", diff)
	}
}

func TestResolvePlanLeavesUnresolvableAlone(t *testing.T) {
	refs := []types.PackageReference{
		{Name: "Pinned.Package", Version: "6.0.2", SourceFile: "src/a.csproj"},
		{Name: "Missing.Package", Version: "1.0.0", SourceFile: "src/a.csproj"},
	}
	feed := map[string][]string{
		"Pinned.Package": {"6.0.2", "6.0.1"},
	}
	plan, err := ResolvePlan(refs, feed, "6.0", false)
	require.NoError(t, err)
	require.Empty(t, plan)
}

func TestGroupByFile(t *testing.T) {
	plan := []types.Resolution{
		{Reference: types.PackageReference{Name: "A", SourceFile: "src/a.csproj"}, NewVersion: "1"},
		{Reference: types.PackageReference{Name: "B", SourceFile: "src/b.csproj"}, NewVersion: "2"},
		{Reference: types.PackageReference{Name: "C", SourceFile: "src/a.csproj"}, NewVersion: "3"},
	}
	grouped := GroupByFile(plan)
	require.Len(t, grouped, 2)
	require.Len(t, grouped["src/a.csproj"], 2)
	require.Len(t, grouped["src/b.csproj"], 1)
	// Plan order is preserved within a file.
	if diff := cmp.Diff("A", grouped["src/a.csproj"][0].Reference.Name); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDistinctNames(t *testing.T) {
	refs := []types.PackageReference{
		{Name: "B.Package"},
		{Name: "A.Package"},
		{Name: "B.Package"},
	}
	names := DistinctNames(refs)
	if diff := cmp.Diff([]string{"A.Package", "B.Package"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
