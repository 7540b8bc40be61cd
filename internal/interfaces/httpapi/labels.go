package httpapi

import (
	"fmt"

	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

// labelTable maps stored enum values to the Spanish labels the club UI
// exchanges on the wire, and back.
type labelTable[T ~string] struct {
	field     string
	toLabel   map[T]string
	fromLabel map[string]T
}

func newLabelTable[T ~string](field string, toLabel map[T]string) labelTable[T] {
	fromLabel := make(map[string]T, len(toLabel))
	for value, label := range toLabel {
		fromLabel[label] = value
	}
	return labelTable[T]{field: field, toLabel: toLabel, fromLabel: fromLabel}
}

func (t labelTable[T]) label(value T) string {
	if label, ok := t.toLabel[value]; ok {
		return label
	}
	return string(value)
}

func (t labelTable[T]) parse(raw string) (T, error) {
	value, ok := t.fromLabel[raw]
	if !ok {
		var zero T
		return zero, usecase.ValidationError(t.field, fmt.Sprintf("unknown value %q", raw))
	}
	return value, nil
}

// check fails unless every value in all has exactly one label and no two
// values share a label.
func (t labelTable[T]) check(all []T) error {
	if len(t.fromLabel) != len(t.toLabel) {
		return fmt.Errorf("%s labels are not unique", t.field)
	}
	if len(t.toLabel) != len(all) {
		return fmt.Errorf("%s labels cover %d of %d values", t.field, len(t.toLabel), len(all))
	}
	for _, value := range all {
		if _, ok := t.toLabel[value]; !ok {
			return fmt.Errorf("%s value %q has no label", t.field, value)
		}
	}
	return nil
}

var (
	mainCategoryLabels = newLabelTable("mainCategory", map[player.MainCategory]string{
		player.MainCategoryMasculino: "Masculino",
		player.MainCategoryFemenino:  "Femenino",
		player.MainCategoryMixto:     "Mixto",
	})
	subCategoryLabels = newLabelTable("subCategory", map[player.SubCategory]string{
		player.SubCategoryBasico:     "Básico",
		player.SubCategoryIntermedio: "Intermedio",
		player.SubCategoryAvanzado:   "Avanzado",
	})
	positionLabels = newLabelTable("position", map[player.Position]string{
		player.PositionSetter:         "Colocador",
		player.PositionLibero:         "Líbero",
		player.PositionMiddleBlocker:  "Central",
		player.PositionOutsideHitter:  "Punta Receptor",
		player.PositionOppositeHitter: "Opuesto",
	})
)

// CheckLabelTables verifies the wire label tables against the domain enums.
// It runs once at startup so a missing label fails the boot, not a request.
func CheckLabelTables() error {
	if err := mainCategoryLabels.check(player.AllMainCategories); err != nil {
		return err
	}
	if err := subCategoryLabels.check(player.AllSubCategories); err != nil {
		return err
	}
	return positionLabels.check(player.AllPositions)
}

func parseMainCategories(field string, raw []string) ([]player.MainCategory, error) {
	out := make([]player.MainCategory, 0, len(raw))
	for _, label := range raw {
		value, err := mainCategoryLabels.parse(label)
		if err != nil {
			return nil, usecase.ValidationError(field, fmt.Sprintf("unknown main category %q", label))
		}
		out = append(out, value)
	}
	return out, nil
}

func mainCategoriesToLabels(values []player.MainCategory) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, mainCategoryLabels.label(v))
	}
	return out
}
