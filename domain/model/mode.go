package model

import "fmt"

// SelectionMode selects the record targeting strategy for a run.
// The set is closed; an unknown mode is a configuration error.
type SelectionMode string

const (
	ModeSingleTarget SelectionMode = "single_target"
	ModeExplicitList SelectionMode = "explicit_list"
	ModeAllZones     SelectionMode = "all_zones"
)

// ParseSelectionMode converts a configuration string to a SelectionMode.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch SelectionMode(s) {
	case ModeSingleTarget, ModeExplicitList, ModeAllZones:
		return SelectionMode(s), nil
	default:
		return "", fmt.Errorf("invalid domain_mode %q (must be %s, %s or %s)",
			s, ModeSingleTarget, ModeExplicitList, ModeAllZones)
	}
}
