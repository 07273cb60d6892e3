// internal/common/sort.go
package common

import (
	"sort"

	"hpigo-core/predict"
)

// LessInteraction defines a stable order for result rows (for --sort).
func LessInteraction(a, b predict.Interaction) bool {
	if a.Host != b.Host {
		return a.Host < b.Host
	}
	if a.Pathogen != b.Pathogen {
		return a.Pathogen < b.Pathogen
	}
	return a.Score > b.Score
}

func SortInteractions(list []predict.Interaction) {
	sort.Slice(list, func(i, j int) bool { return LessInteraction(list[i], list[j]) })
}
