package cache

import (
	"strconv"
)

// ScheduleKey identifies a schedule by its inputs. Floats are rendered in
// their shortest exact form so that equal inputs map to the same key.
func ScheduleKey(principal, annualRatePercent float64, termYears int) string {
	return "schedule:" +
		strconv.FormatFloat(principal, 'f', -1, 64) + ":" +
		strconv.FormatFloat(annualRatePercent, 'f', -1, 64) + ":" +
		strconv.Itoa(termYears)
}
