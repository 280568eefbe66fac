package ctrk

import "gonum.org/v1/gonum/spatial/r2"

// lapEngine tracks finish-line crossings and the running lap counter
// (C6). Disabled (every sample stays lap 1) when no finish line was
// found in the header.
type lapEngine struct {
	line       *FinishLine
	prev       r2.Vec // initialized to the zero sentinel (0, 0), per spec §4.6
	currentLap uint32
}

func newLapEngine(line *FinishLine) *lapEngine {
	return &lapEngine{line: line, currentLap: 1}
}

// update is called immediately before emitting a sample. On a valid
// finish-line crossing it increments the lap counter and reports that
// the fuel accumulator and fuel channel state must reset.
func (e *lapEngine) update(lat, lng float64) (crossed bool) {
	if e.line == nil {
		return false
	}

	curr := r2.Vec{X: lat, Y: lng}

	if e.prev.X == 0 && e.prev.Y == 0 {
		e.prev = curr
		return false
	}

	if e.crosses(e.prev, curr) {
		e.currentLap++
		crossed = true
	}

	e.prev = curr
	return crossed
}

// crosses implements the two-test crossing check from spec §4.6: a
// strict sign change of the trajectory segment across the finish-line's
// infinite extension, AND a parametric intersection point that falls
// within the finite finish-line segment (t in [0, 1]).
func (e *lapEngine) crosses(prev, curr r2.Vec) bool {
	p1 := r2.Vec{X: e.line.P1Lat, Y: e.line.P1Lng}
	p2 := r2.Vec{X: e.line.P2Lat, Y: e.line.P2Lng}

	sidePrev := side(p1, p2, prev)
	sideCurr := side(p1, p2, curr)
	if sidePrev*sideCurr >= 0 {
		return false
	}

	t, ok := intersectParam(p1, p2, prev, curr)
	if !ok {
		return false
	}
	return t >= 0 && t <= 1
}

// side returns (p-P1) x (P2-P1), the signed area used to detect which
// side of the P1->P2 line p falls on.
func side(p1, p2, p r2.Vec) float64 {
	return (p2.Y-p1.Y)*(p.X-p1.X) - (p2.X-p1.X)*(p.Y-p1.Y)
}

// intersectParam solves for the parameter t along segment p1->p2 at
// which line prev->curr crosses it. ok is false for (near-)parallel
// segments.
func intersectParam(p1, p2, prev, curr r2.Vec) (t float64, ok bool) {
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := curr.X-prev.X, curr.Y-prev.Y

	denom := d1x*d2y - d1y*d2x
	if denom > -1e-12 && denom < 1e-12 {
		return 0, false
	}

	// Solve p1 + t*d1 = prev + u*d2 for t.
	ex, ey := prev.X-p1.X, prev.Y-p1.Y
	t = (ex*d2y - ey*d2x) / denom
	return t, true
}
