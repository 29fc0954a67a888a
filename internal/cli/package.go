package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dotnet-bump/internal/app"
)

type packageOptions struct {
	RepoRoot       string
	Interactive    bool
	RuntimeFeed    string
	RuntimeFeedKey string
}

func newPackageCommand() *cobra.Command {
	opts := packageOptions{}
	cmd := &cobra.Command{
		Use:   "package",
		Short: "Run the MSI packaging pipeline (windows only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackage(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.RepoRoot, "repo-root", ".", "Repository root")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive-auth", false, "Allow interactive credential prompts in the build")
	cmd.Flags().StringVar(&opts.RuntimeFeed, "runtime-source-feed", "", "Custom runtime source feed for the release build")
	cmd.Flags().StringVar(&opts.RuntimeFeedKey, "runtime-source-feed-key", "", "Credential for the runtime source feed")
	_ = viper.BindPFlag("repo_root", cmd.Flags().Lookup("repo-root"))
	_ = viper.BindPFlag("runtime_source_feed", cmd.Flags().Lookup("runtime-source-feed"))
	_ = viper.BindPFlag("runtime_source_feed_key", cmd.Flags().Lookup("runtime-source-feed-key"))
	return cmd
}

func runPackage(ctx context.Context, cmd *cobra.Command, opts packageOptions) error {
	service := app.NewService()
	result, err := service.Package(ctx, app.PackageRequest{
		RepoRoot:             resolveString(cmd, opts.RepoRoot, "repo_root", "repo-root"),
		InteractiveAuth:      opts.Interactive,
		RuntimeSourceFeed:    resolveString(cmd, opts.RuntimeFeed, "runtime_source_feed", "runtime-source-feed"),
		RuntimeSourceFeedKey: resolveString(cmd, opts.RuntimeFeedKey, "runtime_source_feed_key", "runtime-source-feed-key"),
	})
	if err != nil {
		return err
	}
	if result.Recovered {
		fmt.Println("packaged (recovered from file list mismatch)")
		return nil
	}
	fmt.Println("packaged")
	return nil
}
