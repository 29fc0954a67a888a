package ports

import "dotnet-bump/internal/types"

type RuntimeMetadataPort interface {
	Load(path string) (types.RuntimeMetadata, error)
}
