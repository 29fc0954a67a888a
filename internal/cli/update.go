package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dotnet-bump/internal/app"
	"dotnet-bump/internal/types"
)

type updateOptions struct {
	RepoRoot       string
	Metadata       string
	GlobalJSON     string
	Rules          string
	SDKVersion     string
	UseNuGetOrg    bool
	UseInternal    bool
	UseRTM         bool
	FeedURL        string
	FeedUser       string
	FeedKey        string
	FeedTimeout    int
	Interactive    bool
	PackageMSI     bool
	RuntimeFeed    string
	RuntimeFeedKey string
}

func newUpdateCommand() *cobra.Command {
	opts := updateOptions{}
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the pinned SDK, package references, and dev container image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd.Context(), cmd, opts)
		},
	}
	addUpdateFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.SDKVersion, "sdk-version", "", "Explicit SDK version to pin, skipping channel resolution")
	cmd.Flags().BoolVar(&opts.PackageMSI, "package-msi", false, "Run the MSI packaging pipeline after updating")
	cmd.Flags().StringVar(&opts.RuntimeFeed, "runtime-source-feed", "", "Custom runtime source feed for the release build")
	cmd.Flags().StringVar(&opts.RuntimeFeedKey, "runtime-source-feed-key", "", "Credential for the runtime source feed")
	_ = viper.BindPFlag("sdk_version", cmd.Flags().Lookup("sdk-version"))
	_ = viper.BindPFlag("package_msi", cmd.Flags().Lookup("package-msi"))
	_ = viper.BindPFlag("runtime_source_feed", cmd.Flags().Lookup("runtime-source-feed"))
	_ = viper.BindPFlag("runtime_source_feed_key", cmd.Flags().Lookup("runtime-source-feed-key"))
	return cmd
}

// addUpdateFlags registers the flags shared by update and check.
func addUpdateFlags(cmd *cobra.Command, opts *updateOptions) {
	cmd.Flags().StringVar(&opts.RepoRoot, "repo-root", ".", "Repository root")
	cmd.Flags().StringVar(&opts.Metadata, "metadata", "", "Runtime metadata file (default <repo-root>/DotnetRuntimeMetadata.json)")
	cmd.Flags().StringVar(&opts.GlobalJSON, "global-json", "", "Global manifest file (default <repo-root>/global.json)")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "Update rules file (default built-in rules)")
	cmd.Flags().BoolVar(&opts.UseNuGetOrg, "use-nuget-org", false, "Query the public nuget.org feed (default)")
	cmd.Flags().BoolVar(&opts.UseInternal, "use-internal-feed", false, "Query the internal feed from metadata")
	cmd.Flags().BoolVar(&opts.UseRTM, "use-rtm-feed", false, "Query the RTM feed from metadata with exact pattern matching")
	cmd.Flags().StringVar(&opts.FeedURL, "feed-url", "", "Feed base URL override")
	cmd.Flags().StringVar(&opts.FeedUser, "feed-user", "", "Feed basic-auth user")
	cmd.Flags().StringVar(&opts.FeedKey, "feed-key", "", "Feed credential")
	cmd.Flags().IntVar(&opts.FeedTimeout, "feed-timeout", 30, "Feed HTTP timeout in seconds")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive-auth", false, "Prompt for the feed credential when not provided")
	_ = viper.BindPFlag("repo_root", cmd.Flags().Lookup("repo-root"))
	_ = viper.BindPFlag("metadata", cmd.Flags().Lookup("metadata"))
	_ = viper.BindPFlag("global_json", cmd.Flags().Lookup("global-json"))
	_ = viper.BindPFlag("rules", cmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("feed_url", cmd.Flags().Lookup("feed-url"))
	_ = viper.BindPFlag("feed_user", cmd.Flags().Lookup("feed-user"))
	_ = viper.BindPFlag("feed_key", cmd.Flags().Lookup("feed-key"))
	_ = viper.BindPFlag("feed_timeout", cmd.Flags().Lookup("feed-timeout"))
}

func runUpdate(ctx context.Context, cmd *cobra.Command, opts updateOptions) error {
	feed, err := feedKind(opts.UseNuGetOrg, opts.UseInternal, opts.UseRTM)
	if err != nil {
		return err
	}
	feedKey, err := resolveFeedKey(cmd, opts)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Update(ctx, app.UpdateRequest{
		RepoRoot:             resolveString(cmd, opts.RepoRoot, "repo_root", "repo-root"),
		MetadataPath:         resolveString(cmd, opts.Metadata, "metadata", "metadata"),
		GlobalJSONPath:       resolveString(cmd, opts.GlobalJSON, "global_json", "global-json"),
		RulesPath:            resolveString(cmd, opts.Rules, "rules", "rules"),
		SDKVersion:           resolveString(cmd, opts.SDKVersion, "sdk_version", "sdk-version"),
		Feed:                 feed,
		FeedURL:              resolveString(cmd, opts.FeedURL, "feed_url", "feed-url"),
		FeedUser:             resolveString(cmd, opts.FeedUser, "feed_user", "feed-user"),
		FeedKey:              feedKey,
		FeedTimeoutSec:       resolveInt(cmd, opts.FeedTimeout, "feed_timeout", "feed-timeout"),
		PackageMSI:           resolveBool(cmd, opts.PackageMSI, "package_msi", "package-msi"),
		InteractiveAuth:      opts.Interactive,
		RuntimeSourceFeed:    resolveString(cmd, opts.RuntimeFeed, "runtime_source_feed", "runtime-source-feed"),
		RuntimeSourceFeedKey: resolveString(cmd, opts.RuntimeFeedKey, "runtime_source_feed_key", "runtime-source-feed-key"),
	})
	if err != nil {
		return err
	}
	if !result.SDK.ShouldUpdate {
		fmt.Printf("sdk %s is current on channel %s\n", result.SDK.CurrentVersion, result.SDK.Channel)
		return nil
	}
	fmt.Printf("sdk updated: %s -> %s\n", result.SDK.CurrentVersion, result.SDK.CandidateVersion)
	fmt.Printf("package bumps: %d across %d file(s)\n", result.ResolvedPackages, len(result.RewrittenFiles))
	return nil
}

// feedKind maps the three selection flags to a feed. At most one may
// be set; nuget.org is the default.
func feedKind(useNuGetOrg bool, useInternal bool, useRTM bool) (types.FeedKind, error) {
	selected := 0
	for _, flag := range []bool{useNuGetOrg, useInternal, useRTM} {
		if flag {
			selected++
		}
	}
	if selected > 1 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("choose at most one of --use-nuget-org, --use-internal-feed, --use-rtm-feed")
	}
	switch {
	case useInternal:
		return types.FeedKindInternal, nil
	case useRTM:
		return types.FeedKindRTM, nil
	default:
		return types.FeedKindNuGetOrg, nil
	}
}

// resolveFeedKey returns the feed credential, prompting on stdin when
// interactive auth is requested and no credential was supplied.
func resolveFeedKey(cmd *cobra.Command, opts updateOptions) (string, error) {
	key := resolveString(cmd, opts.FeedKey, "feed_key", "feed-key")
	if key != "" || !opts.Interactive {
		return key, nil
	}
	fmt.Fprint(os.Stderr, "feed credential: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read feed credential").
			WithCause(err)
	}
	return strings.TrimSpace(line), nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return value
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return value
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return value
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
