package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dotnet-bump/internal/app"
)

func newCheckCommand() *cobra.Command {
	opts := updateOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report available SDK and package updates without writing anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	addUpdateFlags(cmd, &opts)
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts updateOptions) error {
	feed, err := feedKind(opts.UseNuGetOrg, opts.UseInternal, opts.UseRTM)
	if err != nil {
		return err
	}
	feedKey, err := resolveFeedKey(cmd, opts)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Check(ctx, app.CheckRequest{
		RepoRoot:       resolveString(cmd, opts.RepoRoot, "repo_root", "repo-root"),
		MetadataPath:   resolveString(cmd, opts.Metadata, "metadata", "metadata"),
		GlobalJSONPath: resolveString(cmd, opts.GlobalJSON, "global_json", "global-json"),
		RulesPath:      resolveString(cmd, opts.Rules, "rules", "rules"),
		Feed:           feed,
		FeedURL:        resolveString(cmd, opts.FeedURL, "feed_url", "feed-url"),
		FeedUser:       resolveString(cmd, opts.FeedUser, "feed_user", "feed-user"),
		FeedKey:        feedKey,
		FeedTimeoutSec: resolveInt(cmd, opts.FeedTimeout, "feed_timeout", "feed-timeout"),
	})
	if err != nil {
		return err
	}
	if result.SDK.ShouldUpdate {
		fmt.Printf("sdk: %s -> %s (channel %s)\n", result.SDK.CurrentVersion, result.SDK.CandidateVersion, result.SDK.Channel)
	} else {
		fmt.Printf("sdk: %s is current (channel %s)\n", result.SDK.CurrentVersion, result.SDK.Channel)
	}
	if len(result.Pending) == 0 {
		fmt.Println("packages: nothing to bump")
		return nil
	}
	for _, resolution := range result.Pending {
		fmt.Printf("package: %s %s -> %s (%s)\n",
			resolution.Reference.Name,
			resolution.Reference.Version,
			resolution.NewVersion,
			resolution.Reference.SourceFile)
	}
	return nil
}
