package counterpoint

import (
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/interval"
)

// motion compares how both voices move between two positions.
type motion int

const (
	motionOblique motion = iota
	motionSimilar
	motionContrary
)

func (r *run) motionBetween(a, b int) motion {
	cf := sign(r.cfAt(b).MIDI() - r.cfAt(a).MIDI())
	cp := sign(r.cpAt(b).MIDI() - r.cpAt(a).MIDI())
	switch {
	case cf == 0 || cp == 0:
		return motionOblique
	case cf == cp:
		return motionSimilar
	default:
		return motionContrary
	}
}

// checkMotion compares consecutive strong positions for parallel and hidden
// perfect intervals, then looks for battuta parallels.
func (r *run) checkMotion() {
	for k := 1; k < len(r.strong); k++ {
		a, b := r.strong[k-1], r.strong[k]
		if r.motionBetween(a, b) != motionSimilar {
			continue
		}
		from, to := r.harmonic(a), r.harmonic(b)

		switch {
		case from.IsPerfectConsonance() && to.IsPerfectConsonance() && from.Number() == to.Number():
			r.out.errorf(parallelRule(to.Number()), b, "Parallel %ss from %s/%s to %s/%s",
				intervalWord(to.Number()), r.upperAt(a), r.lowerAt(a), r.upperAt(b), r.lowerAt(b))
		case to.IsPerfectConsonance() && !from.IsPerfectConsonance() && !r.upperStep(a, b):
			r.out.warnf(hiddenRule(to.Number()), b, "Hidden %s: %s reached by similar motion with a leap in the upper voice",
				intervalWord(to.Number()), to.Name())
		default:
			r.out.suggestf(RuleSimilarMotion, b, "Similar motion into %s; contrary motion is preferred",
				to.Name())
		}
	}

	r.checkBattuta()
}

func (r *run) upperStep(a, b int) bool {
	return interval.Between(r.upperAt(a), r.upperAt(b)).IsStep()
}

// checkBattuta reports a perfect interval that returns two or three strong
// beats later with the voices having moved in the same direction overall.
// A final approach by a fourth or fifth in contrary motion is tolerated.
func (r *run) checkBattuta() {
	for k := 0; k < len(r.strong); k++ {
		ik := r.harmonic(r.strong[k])
		if !ik.IsPerfectConsonance() {
			continue
		}
		n := ik.Number()

		for j := 2; j <= 3 && k+j < len(r.strong); j++ {
			m := k + j
			if !r.samePerfect(r.strong[m], n) {
				continue
			}
			if r.recursBetween(k, m, n) {
				break
			}
			if r.motionBetween(r.strong[k], r.strong[m]) != motionSimilar {
				break
			}
			prev, at := r.strong[m-1], r.strong[m]
			leap := r.melodic(prev, at)
			if (leap.Generic == 4 || leap.Generic == 5) && r.motionBetween(prev, at) == motionContrary {
				break
			}
			r.out.warnf(RuleBattutaParallels, at, "%s at positions %d and %d: %s parallels across the beat",
				ik.Name(), r.strong[k], at, intervalWord(n))
			break
		}
	}
}

func (r *run) samePerfect(pos, number int) bool {
	iv := r.harmonic(pos)
	return iv.IsPerfectConsonance() && iv.Number() == number
}

func (r *run) recursBetween(k, m, number int) bool {
	for q := k + 1; q < m; q++ {
		if r.samePerfect(r.strong[q], number) {
			return true
		}
	}
	return false
}
