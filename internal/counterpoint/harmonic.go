package counterpoint

import (
	"strconv"

	"github.com/Conceptual-Machines/counterpoint-api/internal/music/interval"
)

// checkHarmonic applies the vertical rules to every sounding position
// according to its metrical role.
func (r *run) checkHarmonic() {
	first := r.sounding[0]
	for _, pos := range r.sounding {
		iv := r.harmonic(pos)
		cf := r.cfAt(pos)

		if iv.Direction == interval.Down {
			r.out.errorf(RuleVoiceCrossing, pos, "Voices cross: %s against cantus firmus %s",
				r.cpAt(pos), cf)
		}

		role := r.p.Role(pos, r.last)
		if role == RoleStrong {
			if iv.IsDissonant() {
				r.out.errorf(RuleDissonance, pos, "Dissonant %s (%s against %s) on a strong beat",
					iv.Name(), r.cpAt(pos), cf)
			} else if iv.IsPerfect(1) && pos != first && pos != r.last {
				r.out.errorf(RuleUnison, pos, "Unison on %s is only allowed at the start or the end",
					r.cpAt(pos))
			}
			continue
		}

		if !iv.IsDissonant() {
			continue
		}
		c := r.classify(pos)
		if c.Licensed {
			continue
		}
		if role == RoleSemiStrong {
			r.out.errorf(RuleStrongPassingTone, pos,
				"Dissonant %s on the third beat is not a strong passing tone: %s",
				iv.Name(), c.Reason)
			continue
		}
		suffix := ""
		if r.p.Cambiata {
			suffix = " and it is not part of a cambiata"
		}
		r.out.errorf(RulePassingTone, pos, "Dissonant %s on a weak beat is not a passing tone: %s%s",
			iv.Name(), c.Reason, suffix)
	}
}

// checkBoundaries verifies the opening interval, the closing interval and
// the approach to the final note.
func (r *run) checkBoundaries() {
	first := r.sounding[0]
	if iv := r.harmonic(first); !iv.IsPerfectConsonance() {
		r.out.errorf(RuleFirstInterval, first,
			"The first interval must be a unison, fifth or octave, got %s", iv.Name())
	}

	if iv := r.harmonic(r.last); !iv.IsPerfect(1) && !iv.IsPerfect(8) {
		r.out.errorf(RuleFinalInterval, r.last,
			"The final interval must be a unison or octave, got %s", iv.Name())
	}

	if len(r.sounding) < 2 {
		return
	}
	penult := r.sounding[len(r.sounding)-2]
	deg, ok := r.degree(penult)

	if r.ex.Position == Lower {
		if !ok || !containsInt(r.p.LowerCadence, deg) {
			r.out.warnf(RuleCadence, penult,
				"The lower voice should approach the final from degree 2, 5 or 7, got %s",
				degreeText(deg, ok))
		}
		return
	}
	if !ok || !containsInt(r.p.UpperCadence, deg) {
		r.out.warnf(RuleLeadingTone, penult,
			"The upper voice should approach the final from the leading tone, got %s",
			degreeText(deg, ok))
	}
}

func degreeText(deg int, ok bool) string {
	if !ok {
		return "a chromatic note"
	}
	return "degree " + strconv.Itoa(deg)
}
