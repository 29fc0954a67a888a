package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"dotnet-bump/internal/types"
)

// Package runs the external packaging pipeline: bootstrap, clean
// release build, then MSI packaging. The platform guard fires before
// any build step is invoked. A file-list mismatch is remediated by
// adopting the generated list and retrying the packaging step once;
// any other failure is re-raised.
func (s Service) Package(ctx context.Context, req PackageRequest) (PackageResult, error) {
	if s.GOOS != "windows" {
		return PackageResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("msi packaging requires windows")
	}
	repoRoot := defaultRepoRoot(req.RepoRoot)
	packaging := s.NewPackaging(repoRoot, req.RuntimeSourceFeed, req.RuntimeSourceFeedKey, req.InteractiveAuth)

	if err := packaging.Bootstrap(ctx); err != nil {
		return PackageResult{}, err
	}
	if err := packaging.BuildRelease(ctx); err != nil {
		return PackageResult{}, err
	}
	if err := packaging.Package(ctx); err != nil {
		var mismatch *types.PackagingMismatch
		if !errors.As(err, &mismatch) {
			return PackageResult{}, err
		}
		log.Warn().
			Str("expected", mismatch.ExpectedPath).
			Str("generated", mismatch.GeneratedPath).
			Msg("msi file list mismatch; adopting generated list")
		if err := copyFile(mismatch.GeneratedPath, mismatch.ExpectedPath); err != nil {
			return PackageResult{}, err
		}
		if err := packaging.Package(ctx); err != nil {
			return PackageResult{}, err
		}
		return PackageResult{Recovered: true}, nil
	}
	return PackageResult{}, nil
}

func copyFile(srcPath string, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open generated file list").
			WithCause(err)
	}
	defer srcFile.Close()
	destFile, err := os.Create(destPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file list").
			WithCause(err)
	}
	defer destFile.Close()
	if _, err := io.Copy(destFile, srcFile); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy file list").
			WithCause(err)
	}
	return nil
}
