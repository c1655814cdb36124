package core

// TurkishDayLabels maps day-of-week indexes (0=Sunday) to the Turkish
// abbreviations the original chart renders under each bar.
var TurkishDayLabels = [7]string{"Paz", "Pzt", "Sal", "Çar", "Per", "Cum", "Cmt"}

// WeeklyAggregate maps day-of-week (0=Sunday..6=Saturday) to summed amount
// for one date range and transaction type. Days with no matching
// transactions are absent; consumers must treat missing days as zero.
type WeeklyAggregate struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Type      TransactionType `json:"type"`
	Data      map[int]float64 `json:"data"`
}

// FillDays expands the sparse mapping into the full 7-slot series the chart
// displays, with zero bars for missing days.
func (w WeeklyAggregate) FillDays() [7]float64 {
	var days [7]float64
	for dow, total := range w.Data {
		if dow >= 0 && dow < 7 {
			days[dow] = total
		}
	}
	return days
}

// Total sums all days of the aggregate.
func (w WeeklyAggregate) Total() float64 {
	var sum float64
	for _, v := range w.Data {
		sum += v
	}
	return sum
}
