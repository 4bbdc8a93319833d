// Package counterpoint validates first, second and third species
// counterpoint against a cantus firmus.
package counterpoint

import (
	"fmt"

	"github.com/Conceptual-Machines/counterpoint-api/internal/music/interval"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/pitch"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/scale"
)

// Validate checks an exercise with the built-in profile of its species.
func Validate(ex Exercise) (Result, error) {
	p, ok := ProfileFor(ex.Species)
	if !ok {
		return Result{}, fmt.Errorf("unsupported species %d", int(ex.Species))
	}
	return ValidateWith(p, ex), nil
}

// ValidateWith checks an exercise against an explicit profile. The exercise's
// own species field is ignored.
func ValidateWith(p Profile, ex Exercise) Result {
	r := newRun(p, ex)

	if !r.checkStructure() {
		return Aggregate(p.Species, p.Weights, len(ex.Counterpoint), r.out.issues)
	}

	r.checkHarmonic()
	r.checkMelodic()
	r.checkMotion()
	r.checkBoundaries()
	r.checkLine()

	return Aggregate(p.Species, p.Weights, len(ex.Counterpoint), r.out.issues)
}

// run holds the state of one validation pass.
type run struct {
	p     Profile
	ex    Exercise
	scale scale.Scale
	out   collector

	last     int   // index of the final counterpoint position
	sounding []int // positions holding a pitch, ascending
	strong   []int // sounding positions aligned with a cantus firmus note
}

func newRun(p Profile, ex Exercise) *run {
	return &run{
		p:     p,
		ex:    ex,
		scale: ex.Scale(),
		last:  len(ex.Counterpoint) - 1,
	}
}

// checkStructure verifies length and rest placement. It reports at most one
// error and returns false when the exercise cannot be analysed further.
func (r *run) checkStructure() bool {
	n := len(r.ex.CantusFirmus)
	if n == 0 {
		r.out.errorf(RuleLength, GlobalPosition, "Cantus firmus is empty")
		return false
	}
	if want := r.p.ExpectedLength(n); len(r.ex.Counterpoint) != want {
		r.out.errorf(RuleLength, GlobalPosition,
			"%s species needs %d counterpoint notes for a %d-note cantus firmus, got %d",
			titleCase(r.p.Species.String()), want, n, len(r.ex.Counterpoint))
		return false
	}

	leading := true
	for pos, note := range r.ex.Counterpoint {
		if !note.Rest {
			leading = false
			r.sounding = append(r.sounding, pos)
			if pos%r.p.Ratio == 0 {
				r.strong = append(r.strong, pos)
			}
			continue
		}
		if !leading || pos >= r.p.AnacrusisWindow || pos == r.last {
			r.out.errorf(RuleAnacrusis, pos, "Rest at position %d: %s", pos, restRule(r.p))
			return false
		}
	}
	return true
}

func restRule(p Profile) string {
	switch p.AnacrusisWindow {
	case 0:
		return titleCase(p.Species.String()) + " species does not allow rests"
	case 1:
		return "only the opening beat may be a rest"
	default:
		return fmt.Sprintf("only the opening %d beats may rest, before the first note", p.AnacrusisWindow)
	}
}

// cfAt returns the cantus firmus note sounding under a counterpoint position.
func (r *run) cfAt(pos int) pitch.Pitch {
	return r.ex.CantusFirmus[pos/r.p.Ratio]
}

func (r *run) cpAt(pos int) pitch.Pitch {
	return r.ex.Counterpoint[pos].Pitch
}

func (r *run) isRest(pos int) bool {
	return r.ex.Counterpoint[pos].Rest
}

// upperAt and lowerAt return the notes of each voice at a position.
func (r *run) upperAt(pos int) pitch.Pitch {
	if r.ex.Position == Lower {
		return r.cfAt(pos)
	}
	return r.cpAt(pos)
}

func (r *run) lowerAt(pos int) pitch.Pitch {
	if r.ex.Position == Lower {
		return r.cpAt(pos)
	}
	return r.cfAt(pos)
}

// harmonic measures from the lower voice to the upper one. Crossed voices
// come back with Direction Down.
func (r *run) harmonic(pos int) interval.Interval {
	return interval.Between(r.lowerAt(pos), r.upperAt(pos))
}

func (r *run) melodic(from, to int) interval.Interval {
	return interval.Between(r.cpAt(from), r.cpAt(to))
}

func (r *run) degree(pos int) (int, bool) {
	return r.scale.DegreeOf(r.cpAt(pos))
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
