package ports

import "dotnet-bump/internal/types"

// UpdateRulesPort loads the optional rules file; an empty path yields
// the built-in defaults.
type UpdateRulesPort interface {
	Load(path string) (types.UpdateRules, error)
}
