package cleaner

import (
	"errors"
	"slices"
	"strings"

	"repo-stats-admin/internal/models"
)

var ErrNoKinds = errors.New("invalid cleanup types")

// ValidKinds is the list shown to operators, in the order they are usually typed.
var ValidKinds = []models.ObjectKind{
	models.KindTables,
	models.KindViews,
	models.KindFunctions,
	models.KindTriggers,
	models.KindIndexes,
	models.KindEnums,
	models.KindPolicies,
	models.KindSequences,
}

// ParseKinds turns the optional positional argument into a kind selection.
// No argument selects everything; unknown tokens are dropped silently and
// a selection that ends up empty is rejected.
func ParseKinds(args []string) ([]models.ObjectKind, error) {
	if len(args) == 0 {
		return slices.Clone(models.DropOrder), nil
	}

	var kinds []models.ObjectKind
	for _, token := range strings.Split(args[0], ",") {
		kind := models.ObjectKind(strings.TrimSpace(token))
		if !slices.Contains(ValidKinds, kind) || slices.Contains(kinds, kind) {
			continue
		}
		kinds = append(kinds, kind)
	}

	if len(kinds) == 0 {
		return nil, ErrNoKinds
	}
	return kinds, nil
}

func KindNames(kinds []models.ObjectKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
