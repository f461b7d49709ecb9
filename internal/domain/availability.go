package domain

import "agenda/internal/pkg/timewindow"

// Availability is a recurring weekly window in the provider's local time.
// Windows on the same weekday are independent and may overlap.
type Availability struct {
	WeekDay   int              `json:"week_day"` // 0=Sunday..6=Saturday
	StartTime timewindow.Clock `json:"start_time"`
	EndTime   timewindow.Clock `json:"end_time"`
}
