package annotation

import (
	"fmt"

	"github.com/jwulff/audiolabel/internal/category"
)

// Check reports every problem in a saved label set: fractions outside
// [0,1], start after end, and categories not in cats.
func Check(records []Record, cats *category.Set) []string {
	var problems []string
	for i, r := range records {
		if r.Start < 0 || r.Start > 1 {
			problems = append(problems, fmt.Sprintf("record %d: start %v outside [0,1]", i, r.Start))
		}
		if r.End < 0 || r.End > 1 {
			problems = append(problems, fmt.Sprintf("record %d: end %v outside [0,1]", i, r.End))
		}
		if r.Start > r.End {
			problems = append(problems, fmt.Sprintf("record %d: start %v after end %v", i, r.Start, r.End))
		}
		if cats != nil && !cats.Contains(r.Category) {
			problems = append(problems, fmt.Sprintf("record %d: unknown category %q", i, r.Category))
		}
	}
	return problems
}
