// Package interval classifies the distance between two spelled pitches.
//
// A generic number counts letters inclusively (C up to E is a third) and the
// semitone count measures the chromatic distance. Together they resolve to
// exactly one quality; there is no unresolved case.
package interval

import (
	"fmt"

	"github.com/Conceptual-Machines/counterpoint-api/internal/music/pitch"
)

// QualityKind is the quality of an interval.
type QualityKind int

const (
	Diminished QualityKind = iota
	Minor
	Major
	Perfect
	Augmented
)

func (q QualityKind) String() string {
	switch q {
	case Diminished:
		return "d"
	case Minor:
		return "m"
	case Major:
		return "M"
	case Perfect:
		return "P"
	case Augmented:
		return "A"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// Direction of motion from the first pitch to the second.
type Direction int

const (
	Down  Direction = -1
	Level Direction = 0
	Up    Direction = 1
)

// Semitones of the major or perfect form of each simple generic number 1..8
var expectedSemitones = [9]int{0, 0, 2, 4, 5, 7, 9, 11, 12}

func isPerfectFamily(generic int) bool {
	return generic == 1 || generic == 4 || generic == 5 || generic == 8
}

// Interval is derived from two pitches and never stored.
type Interval struct {
	Generic   int       // 1-based diatonic distance, always positive
	Semitones int       // chromatic distance, measured along the letters
	Direction Direction // from the first pitch to the second
	Quality   QualityKind
}

// Between measures from a to b. For harmonic intervals pass the lower voice
// first; a crossed pair yields Direction Down with the same magnitudes.
func Between(a, b pitch.Pitch) Interval {
	steps := b.DiatonicIndex() - a.DiatonicIndex()
	semis := b.MIDI() - a.MIDI()

	dir := Level
	switch {
	case semis > 0 || (semis == 0 && steps > 0):
		dir = Up
	case semis < 0 || (semis == 0 && steps < 0):
		dir = Down
	}

	generic := abs(steps) + 1
	semitones := abs(semis)
	// A crossed spelling such as Cb4 -> B#3 is counted in the direction of the
	// letters so both numbers describe the same span.
	if steps != 0 && semis != 0 && (steps > 0) != (semis > 0) {
		semitones = -semitones
	}

	return Interval{
		Generic:   generic,
		Semitones: semitones,
		Direction: dir,
		Quality:   Quality(generic, semitones),
	}
}

// Quality resolves a generic number and semitone count to a quality. It is
// total: the deviation from the major/perfect size decides, and anything past
// one semitone still lands on augmented or diminished.
func Quality(generic, semitones int) QualityKind {
	if generic < 1 {
		generic = 1
	}
	simpleGeneric, octaves := reduce(generic)
	diff := semitones - 12*octaves - expectedSemitones[simpleGeneric]

	if isPerfectFamily(simpleGeneric) {
		switch {
		case diff == 0:
			return Perfect
		case diff < 0:
			return Diminished
		default:
			return Augmented
		}
	}

	switch {
	case diff == 0:
		return Major
	case diff == -1:
		return Minor
	case diff < -1:
		return Diminished
	default:
		return Augmented
	}
}

// reduce maps a generic number onto 1..8, keeping octaves distinct from
// unisons, and reports how many octaves were removed.
func reduce(generic int) (int, int) {
	if generic <= 8 {
		return generic, 0
	}
	simple := (generic-2)%7 + 2
	return simple, (generic - simple) / 7
}

// Simple returns the interval reduced to within an octave.
func (i Interval) Simple() Interval {
	g, octaves := reduce(i.Generic)
	return Interval{
		Generic:   g,
		Semitones: i.Semitones - 12*octaves,
		Direction: i.Direction,
		Quality:   i.Quality,
	}
}

// IsCompound reports whether the interval spans more than an octave.
func (i Interval) IsCompound() bool {
	return i.Generic > 8
}

// Number returns the simple generic number 1..8.
func (i Interval) Number() int {
	g, _ := reduce(i.Generic)
	return g
}

// Name returns the simple name, e.g. "P5", "m3", "A4".
func (i Interval) Name() string {
	return fmt.Sprintf("%s%d", i.Quality, i.Number())
}

func (i Interval) String() string {
	if i.IsCompound() {
		return fmt.Sprintf("%s%d", i.Quality, i.Generic)
	}
	return i.Name()
}

// IsConsonant is true for P1, P5, P8, m3, M3, m6 and M6.
func (i Interval) IsConsonant() bool {
	return i.IsPerfectConsonance() || i.IsImperfectConsonance()
}

// IsPerfectConsonance is true for P1, P5 and P8.
func (i Interval) IsPerfectConsonance() bool {
	if i.Quality != Perfect {
		return false
	}
	n := i.Number()
	return n == 1 || n == 5 || n == 8
}

// IsImperfectConsonance is true for thirds and sixths, major or minor.
func (i Interval) IsImperfectConsonance() bool {
	if i.Quality != Major && i.Quality != Minor {
		return false
	}
	n := i.Number()
	return n == 3 || n == 6
}

func (i Interval) IsDissonant() bool {
	return !i.IsConsonant()
}

// IsTritone reports a simple span of six semitones.
func (i Interval) IsTritone() bool {
	return mod(i.Semitones, 12) == 6
}

// IsPerfect reports whether the interval is the perfect form of number n
// (1, 4, 5 or 8) after reduction.
func (i Interval) IsPerfect(n int) bool {
	return i.Quality == Perfect && i.Number() == n
}

// IsStep reports a melodic second.
func (i Interval) IsStep() bool {
	return i.Generic == 2
}

// IsLeap reports a melodic third or wider.
func (i Interval) IsLeap() bool {
	return i.Generic >= 3
}

// Invert returns the complement within the octave: 9 minus the generic
// number, 12 minus the semitones, with major/minor and augmented/diminished
// swapped.
func Invert(i Interval) Interval {
	s := i.Simple()
	var q QualityKind
	switch s.Quality {
	case Perfect:
		q = Perfect
	case Major:
		q = Minor
	case Minor:
		q = Major
	case Augmented:
		q = Diminished
	default:
		q = Augmented
	}
	return Interval{
		Generic:   9 - s.Generic,
		Semitones: 12 - s.Semitones,
		Direction: s.Direction,
		Quality:   q,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
