package counterpoint

import (
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/interval"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/scale"
)

// checkMelodic inspects each motion between consecutive sounding notes.
// Rests are skipped, never treated as a repeated pitch.
func (r *run) checkMelodic() {
	steps, moves := 0, 0
	for k := 1; k < len(r.sounding); k++ {
		from, to := r.sounding[k-1], r.sounding[k]
		m := r.melodic(from, to)

		if m.IsTritone() {
			r.out.errorf(RuleMelodicTritone, to, "Melodic tritone from %s to %s",
				r.cpAt(from), r.cpAt(to))
		}
		if m.Generic > 6 && !(m.Generic == 8 && m.Quality == interval.Perfect) {
			r.out.warnf(RuleLargeLeap, to, "Leap of a %s from %s to %s is larger than a sixth",
				m, r.cpAt(from), r.cpAt(to))
		}

		if m.Semitones != 0 || m.Generic != 1 {
			moves++
			if m.IsStep() {
				steps++
			}
		}

		if r.cpAt(from).MIDI() == r.cpAt(to).MIDI() && r.reportsRepeat(from, to) {
			r.out.warnf(RuleRepeatedNote, to, "%s is repeated", r.cpAt(to))
		}
	}

	if moves > 0 && steps*2 < moves {
		r.out.suggestf(RuleStepwiseMotion, GlobalPosition,
			"Only %d of %d motions are steps; prefer stepwise motion", steps, moves)
	}
}

func (r *run) reportsRepeat(from, to int) bool {
	switch r.p.Repetition {
	case RepeatAcrossBarline:
		return to == from+1 && r.p.Role(to, r.last) == RoleStrong
	case RepeatConsecutive:
		return true
	default:
		return false
	}
}

// checkLine runs the whole-line checks: range, direction runs, arpeggiation
// and outlined tritones.
func (r *run) checkLine() {
	r.checkRange()
	r.checkDirectionRuns()
	r.checkArpeggiation()
	r.checkCompoundTritones()
}

func (r *run) checkRange() {
	lo, hi := r.cpAt(r.sounding[0]), r.cpAt(r.sounding[0])
	for _, pos := range r.sounding[1:] {
		p := r.cpAt(pos)
		if p.MIDI() < lo.MIDI() {
			lo = p
		}
		if p.MIDI() > hi.MIDI() {
			hi = p
		}
	}
	if span := hi.MIDI() - lo.MIDI(); span > r.p.MaxRange {
		r.out.warnf(RuleRange, GlobalPosition, "Range from %s to %s spans %d semitones, more than %d",
			lo, hi, span, r.p.MaxRange)
	}
}

// checkDirectionRuns reports once per run of same-direction motion longer
// than the profile threshold. Repeated notes end a run.
func (r *run) checkDirectionRuns() {
	run, dir := 0, 0
	for k := 1; k < len(r.sounding); k++ {
		from, to := r.sounding[k-1], r.sounding[k]
		d := sign(r.cpAt(to).MIDI() - r.cpAt(from).MIDI())
		switch {
		case d == 0:
			run = 0
		case d == dir:
			run++
		default:
			run = 1
		}
		dir = d
		if run == r.p.DirectionThreshold+1 {
			word := "up"
			if d < 0 {
				word = "down"
			}
			r.out.warnf(RuleSameDirection, to, "More than %d consecutive motions %s",
				r.p.DirectionThreshold, word)
		}
	}
}

// checkArpeggiation flags three notes leaping through one triad.
func (r *run) checkArpeggiation() {
	for k := 2; k < len(r.sounding); k++ {
		a, b, c := r.sounding[k-2], r.sounding[k-1], r.sounding[k]
		da, okA := r.degree(a)
		db, okB := r.degree(b)
		dc, okC := r.degree(c)
		if !okA || !okB || !okC || !scale.IsTriadOutline(da, db, dc) {
			continue
		}
		if r.melodic(a, b).IsLeap() && r.melodic(b, c).IsLeap() {
			r.out.suggestf(RuleArpeggiation, c, "%s %s %s outlines a triad",
				r.cpAt(a), r.cpAt(b), r.cpAt(c))
		}
	}
}

// checkCompoundTritones finds degrees 4 and 7 a tritone apart within a short
// span of the line. The leading tone resolving into the final is exempt.
func (r *run) checkCompoundTritones() {
	penult := len(r.sounding) - 2
	for i := 0; i < len(r.sounding); i++ {
		di, ok := r.degree(r.sounding[i])
		if !ok || (di != 4 && di != 7) {
			continue
		}
		for gap := 3; gap <= 5 && i+gap < len(r.sounding); gap++ {
			j := i + gap
			dj, ok := r.degree(r.sounding[j])
			if !ok || di+dj != 11 {
				continue
			}
			if (dj == 7 && j == penult) || (di == 7 && i == penult) {
				continue
			}
			a, b := r.sounding[i], r.sounding[j]
			if r.melodic(a, b).IsTritone() {
				r.out.warnf(RuleCompoundTritone, b, "%s and %s outline a tritone", r.cpAt(a), r.cpAt(b))
			}
		}
	}
}
