package counterpoint

import (
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/interval"
)

// Formula names a melodic figure that licenses a dissonance.
type Formula string

const (
	FormulaNone              Formula = ""
	FormulaPassingTone       Formula = "passing-tone"
	FormulaStrongPassingTone Formula = "strong-passing-tone"
	FormulaCambiata          Formula = "cambiata"
)

// Reason explains why no formula matched. The text is used verbatim in
// issue messages.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonDownbeat         Reason = "dissonance is never allowed on the downbeat"
	ReasonBoundary         Reason = "it has no note on both sides to pass between"
	ReasonRestAdjacent     Reason = "it sits next to a rest"
	ReasonApproachNotStep  Reason = "it is not approached by step"
	ReasonDepartureNotStep Reason = "it is not left by step"
	ReasonDirectionChange  Reason = "the line changes direction instead of passing through"
	ReasonDissonantAnchor  Reason = "a neighbouring note is itself dissonant"
	ReasonNotThird         Reason = "the surrounding notes do not span a third"
)

// Classification is the outcome of ClassifyDissonance.
type Classification struct {
	Licensed bool
	Formula  Formula
	Reason   Reason
	// Member is the 1-based place of the dissonance inside a cambiata.
	Member int
}

// ClassifyDissonance decides whether the dissonance at pos is licensed by a
// passing tone, a strong passing tone or a cambiata, according to the role of
// the position under the profile. The exercise must already be structurally
// valid.
func ClassifyDissonance(p Profile, ex Exercise, pos int) Classification {
	r := newRun(p, ex)
	return r.classify(pos)
}

func (r *run) classify(pos int) Classification {
	switch r.p.Role(pos, r.last) {
	case RoleSemiStrong:
		reason := r.strongPassingTone(pos)
		if reason == ReasonNone {
			return Classification{Licensed: true, Formula: FormulaStrongPassingTone}
		}
		if r.p.Cambiata {
			if member, ok := r.cambiata(pos); ok {
				return Classification{Licensed: true, Formula: FormulaCambiata, Member: member}
			}
		}
		return Classification{Reason: reason}

	case RoleWeak:
		reason := r.passingTone(pos)
		if reason == ReasonNone {
			return Classification{Licensed: true, Formula: FormulaPassingTone}
		}
		if r.p.Cambiata {
			if member, ok := r.cambiata(pos); ok {
				return Classification{Licensed: true, Formula: FormulaCambiata, Member: member}
			}
		}
		return Classification{Reason: reason}

	default:
		return Classification{Reason: ReasonDownbeat}
	}
}

// passingTone checks that pos fills a stepwise line between two consonances.
func (r *run) passingTone(pos int) Reason {
	if pos <= 0 || pos >= r.last {
		return ReasonBoundary
	}
	if r.isRest(pos-1) || r.isRest(pos+1) {
		return ReasonRestAdjacent
	}

	in := r.melodic(pos-1, pos)
	out := r.melodic(pos, pos+1)
	switch {
	case !in.IsStep():
		return ReasonApproachNotStep
	case !out.IsStep():
		return ReasonDepartureNotStep
	case in.Direction != out.Direction:
		return ReasonDirectionChange
	case !r.harmonic(pos-1).IsConsonant() || !r.harmonic(pos+1).IsConsonant():
		return ReasonDissonantAnchor
	}
	return ReasonNone
}

// strongPassingTone is passingTone with the outer notes a third apart.
func (r *run) strongPassingTone(pos int) Reason {
	if reason := r.passingTone(pos); reason != ReasonNone {
		return reason
	}
	// Two steps in one direction already span a third; this only fires if
	// passingTone is loosened.
	if r.melodic(pos-1, pos+1).Generic != 3 {
		return ReasonNotThird
	}
	return ReasonNone
}

// cambiata looks for a five-note window step, third, step, step with the
// first two motions in one direction and the last two in the other, trying
// pos as the second, third and fourth member in that order.
func (r *run) cambiata(pos int) (int, bool) {
	for member := 2; member <= 4; member++ {
		start := pos - (member - 1)
		if r.cambiataAt(start) {
			return member, true
		}
	}
	return 0, false
}

func (r *run) cambiataAt(start int) bool {
	end := start + 4
	if start < 0 || end > r.last {
		return false
	}
	for i := start; i <= end; i++ {
		if r.isRest(i) {
			return false
		}
	}

	moves := [4]interval.Interval{
		r.melodic(start, start+1),
		r.melodic(start+1, start+2),
		r.melodic(start+2, start+3),
		r.melodic(start+3, start+4),
	}
	d := moves[0].Direction
	if d == interval.Level {
		return false
	}
	if moves[0].Generic != 2 ||
		moves[1].Generic != 3 || moves[1].Direction != d ||
		moves[2].Generic != 2 || moves[2].Direction != -d ||
		moves[3].Generic != 2 || moves[3].Direction != -d {
		return false
	}

	first, final := r.harmonic(start), r.harmonic(end)
	return first.IsConsonant() && final.IsConsonant() && !final.IsTritone()
}
