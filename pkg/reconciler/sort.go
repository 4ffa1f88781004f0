package reconciler

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/deptmerge/pkg/departments"
)

// SortByID orders rows by the numeric value of ID, ascending. Rows with an
// empty or non-numeric ID go last. Equal keys keep their input order.
func SortByID(rows []departments.Primary) {
	slices.SortStableFunc(rows, func(a, b departments.Primary) int {
		ka, okA := numericID(a.ID)
		kb, okB := numericID(b.ID)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
}

// numericID parses id as a float. NaN counts as missing.
func numericID(id string) (float64, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
