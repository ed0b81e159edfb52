package modelenc

import "github.com/google/or-tools/ortools/sat/go/cpmodel"

// classVars is a per-class dense variable table laid out as a single
// contiguous slice with cached strides, instead of a tuple-keyed hash
// map. Every class gets its own table because course counts (K) differ
// per class while room/day/period counts (R/D/P) are shared, so a single
// global C*Kmax*R*D*P array would waste space on short curricula.
type classVars struct {
	numCourses, numRooms, numDays, numPeriods int
	vars                                      []cpmodel.BoolVar
}

func newClassVars(model *cpmodel.Builder, numCourses, numRooms, numDays, numPeriods int) classVars {
	cv := classVars{
		numCourses: numCourses,
		numRooms:   numRooms,
		numDays:    numDays,
		numPeriods: numPeriods,
		vars:       make([]cpmodel.BoolVar, numCourses*numRooms*numDays*numPeriods),
	}
	for i := range cv.vars {
		cv.vars[i] = model.NewBoolVar()
	}
	return cv
}

func (cv classVars) index(k, r, d, p int) int {
	return ((k*cv.numRooms+r)*cv.numDays+d)*cv.numPeriods + p
}

func (cv classVars) at(k, r, d, p int) cpmodel.BoolVar {
	return cv.vars[cv.index(k, r, d, p)]
}

// periodVars is the per-class reified-indicator table y[c,k,p], one bool
// var per (course, period) pair.
type periodVars struct {
	numCourses, numPeriods int
	vars                   []cpmodel.BoolVar
}

func newPeriodVars(model *cpmodel.Builder, numCourses, numPeriods int) periodVars {
	pv := periodVars{
		numCourses: numCourses,
		numPeriods: numPeriods,
		vars:       make([]cpmodel.BoolVar, numCourses*numPeriods),
	}
	for i := range pv.vars {
		pv.vars[i] = model.NewBoolVar()
	}
	return pv
}

func (pv periodVars) at(k, p int) cpmodel.BoolVar {
	return pv.vars[k*pv.numPeriods+p]
}
