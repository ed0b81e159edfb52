package domain

// Days is the fixed ordered Monday-to-Saturday week.
var Days = [6]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// PeriodLabels are the fixed human-readable daily windows, p1..p5.
var PeriodLabels = [5]string{
	"7:00am - 9:55am",
	"10:05am - 12:55pm",
	"1:05pm - 3:55pm",
	"4:05pm - 6:55pm",
	"7:05pm - 9:55pm",
}

// PeriodWeights are the objective weights for p1..p5: p1 is the lightest
// and therefore the most preferred.
var PeriodWeights = [5]int{1, 2, 3, 4, 5}

const (
	NumDays    = len(Days)
	NumPeriods = len(PeriodLabels)
	NumSlots   = NumDays * NumPeriods
)
