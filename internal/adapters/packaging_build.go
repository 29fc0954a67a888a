package adapters

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/shared"
	"dotnet-bump/internal/types"
)

// PackagingBuildAdapter drives the repository's PowerShell build module
// through pwsh. The bootstrap, build, and package steps are the opaque
// external pipeline; this adapter only owns the invocation and the
// classification of the one recoverable failure.
type PackagingBuildAdapter struct {
	RepoRoot             string
	RuntimeSourceFeed    string
	RuntimeSourceFeedKey string
	InteractiveAuth      bool
}

func NewPackagingBuildAdapter(repoRoot string, runtimeSourceFeed string, runtimeSourceFeedKey string, interactiveAuth bool) PackagingBuildAdapter {
	return PackagingBuildAdapter{
		RepoRoot:             repoRoot,
		RuntimeSourceFeed:    runtimeSourceFeed,
		RuntimeSourceFeedKey: runtimeSourceFeedKey,
		InteractiveAuth:      interactiveAuth,
	}
}

func (a PackagingBuildAdapter) Bootstrap(ctx context.Context) error {
	output, err := a.run(ctx, "Import-Module ./build.psm1; Start-PSBootstrap -Scenario Package")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("packaging bootstrap failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

func (a PackagingBuildAdapter) BuildRelease(ctx context.Context) error {
	output, err := a.run(ctx, a.buildReleaseScript())
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("release build failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

func (a PackagingBuildAdapter) buildReleaseScript() string {
	script := "Import-Module ./build.psm1; Start-PSBuild -Clean -Configuration Release -CrossGen"
	if feed := strings.TrimSpace(a.RuntimeSourceFeed); feed != "" {
		script += " -RuntimeSourceFeed " + pwshQuote(feed)
		if key := strings.TrimSpace(a.RuntimeSourceFeedKey); key != "" {
			script += " -RuntimeSourceFeedSecret " + pwshQuote(key)
		}
	}
	if a.InteractiveAuth {
		script += " -InteractiveAuth"
	}
	return script
}

// pwshQuote wraps a value as a PowerShell single-quoted literal. Inside
// single quotes the only metacharacter is the quote itself, escaped by
// doubling.
func pwshQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

var fileListMismatchRE = regexp.MustCompile(`MSI file list mismatch; expected: (\S+); generated: (\S+)`)

func (a PackagingBuildAdapter) Package(ctx context.Context) error {
	script := "Import-Module ./build.psm1; Import-Module ./tools/packaging; Start-PSPackage -Type msi -SkipReleaseChecks"
	output, err := a.run(ctx, script)
	if err == nil {
		return nil
	}
	if match := fileListMismatchRE.FindStringSubmatch(string(output)); match != nil {
		// Returned bare so the caller can recognize it with errors.As
		// and run the remediation.
		return &types.PackagingMismatch{
			ExpectedPath:  match[1],
			GeneratedPath: match[2],
		}
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("msi packaging failed").
		WithCause(shared.CommandError(output, err))
}

func (a PackagingBuildAdapter) run(ctx context.Context, script string) ([]byte, error) {
	args := []string{"-NoProfile"}
	if !a.InteractiveAuth {
		args = append(args, "-NonInteractive")
	}
	args = append(args, "-Command", script)
	cmd := exec.CommandContext(ctx, "pwsh", args...)
	cmd.Dir = a.RepoRoot
	return cmd.CombinedOutput()
}

var _ ports.PackagingPort = PackagingBuildAdapter{}
