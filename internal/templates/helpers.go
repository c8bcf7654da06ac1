package templates

import (
	"fmt"
	"time"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

// coordinateSlots returns the row indexes the form renders, 0..9.
func coordinateSlots() []int {
	slots := make([]int, domain.CoordinateSlots)
	for i := range slots {
		slots[i] = i
	}
	return slots
}

func formatWhen(t time.Time) string {
	return t.Format("Jan 02 15:04")
}

// formatSource summarizes where an attempt's coordinates came from.
func formatSource(a domain.AttemptRecord) string {
	if a.SourceKind == domain.SourceSpreadsheet {
		return "spreadsheet"
	}
	return fmt.Sprintf("%d pairs", a.PairCount)
}
