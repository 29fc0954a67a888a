package adapters

import (
	"encoding/json"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/types"
)

type MetadataFileAdapter struct{}

func NewMetadataFileAdapter() MetadataFileAdapter {
	return MetadataFileAdapter{}
}

func (a MetadataFileAdapter) Load(path string) (types.RuntimeMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RuntimeMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("runtime metadata file not found").
			WithCause(err)
	}
	var metadata types.RuntimeMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return types.RuntimeMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse runtime metadata").
			WithCause(err)
	}
	return metadata, nil
}

var _ ports.RuntimeMetadataPort = MetadataFileAdapter{}
