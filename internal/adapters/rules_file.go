package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"dotnet-bump/internal/ports"
	"dotnet-bump/internal/types"
)

type RulesFileAdapter struct{}

func NewRulesFileAdapter() RulesFileAdapter {
	return RulesFileAdapter{}
}

// Load reads the optional update-rules file. An empty path yields the
// built-in defaults; a partially-filled file is merged with them.
func (a RulesFileAdapter) Load(path string) (types.UpdateRules, error) {
	if strings.TrimSpace(path) == "" {
		return types.DefaultUpdateRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.UpdateRules{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("rules file not found").
			WithCause(err)
	}
	var rules types.UpdateRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return types.UpdateRules{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse rules yaml").
			WithCause(err)
	}
	return rules.Merged(), nil
}

var _ ports.UpdateRulesPort = RulesFileAdapter{}
