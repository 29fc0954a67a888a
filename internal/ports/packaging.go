package ports

import "context"

// PackagingPort drives the external build pipeline. Each step blocks
// until the underlying command completes.
type PackagingPort interface {
	Bootstrap(ctx context.Context) error
	BuildRelease(ctx context.Context) error

	// Package runs the MSI packaging step. A failure caused by a
	// generated-file-list mismatch carries *types.PackagingMismatch in
	// its cause chain so the caller can remediate and retry.
	Package(ctx context.Context) error
}
