// Package scale looks up diatonic modes and numbers scale degrees.
package scale

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/counterpoint-api/internal/music/pitch"
)

// Mode names a seven-note diatonic pattern.
type Mode string

const (
	Major      Mode = "major"
	Minor      Mode = "minor"
	Ionian     Mode = "ionian"
	Dorian     Mode = "dorian"
	Phrygian   Mode = "phrygian"
	Lydian     Mode = "lydian"
	Mixolydian Mode = "mixolydian"
	Aeolian    Mode = "aeolian"
	Locrian    Mode = "locrian"
)

// Semitone offsets from the tonic
var patterns = map[Mode][7]int{
	Major:      {0, 2, 4, 5, 7, 9, 11},
	Ionian:     {0, 2, 4, 5, 7, 9, 11},
	Minor:      {0, 2, 3, 5, 7, 8, 10},
	Aeolian:    {0, 2, 3, 5, 7, 8, 10},
	Dorian:     {0, 2, 3, 5, 7, 9, 10},
	Phrygian:   {0, 1, 3, 5, 7, 8, 10},
	Lydian:     {0, 2, 4, 6, 7, 9, 11},
	Mixolydian: {0, 2, 4, 5, 7, 9, 10},
	Locrian:    {0, 1, 3, 5, 6, 8, 10},
}

// Modes lists every known mode in a stable order.
func Modes() []Mode {
	return []Mode{Major, Minor, Ionian, Dorian, Phrygian, Lydian, Mixolydian, Aeolian, Locrian}
}

// UnknownModeError is returned by ParseMode.
type UnknownModeError struct {
	Name string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode %q", e.Name)
}

// ParseMode normalizes a mode name. Unknown names are an error here even
// though Pattern tolerates them.
func ParseMode(name string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := patterns[m]; !ok {
		return "", &UnknownModeError{Name: name}
	}
	return m, nil
}

// Pattern returns the semitone offsets of a mode. An unknown mode falls back
// to the major pattern and reports false so callers can tell.
func Pattern(mode Mode) ([7]int, bool) {
	p, ok := patterns[mode]
	if !ok {
		return patterns[Major], false
	}
	return p, true
}

// Scale is a tonic without octave plus a mode.
type Scale struct {
	Tonic pitch.Class
	Mode  Mode
}

// New builds a scale.
func New(tonic pitch.Class, mode Mode) Scale {
	return Scale{Tonic: tonic, Mode: mode}
}

func (s Scale) String() string {
	return fmt.Sprintf("%s %s", s.Tonic, s.Mode)
}

// offset reduces the distance from the tonic to 0..11.
func (s Scale) offset(p pitch.Pitch) int {
	tonic := s.Tonic.In(4).MIDI()
	d := (p.MIDI() - tonic) % 12
	if d < 0 {
		d += 12
	}
	return d
}

// Contains reports whether p belongs to the scale, by pitch class.
func (s Scale) Contains(p pitch.Pitch) bool {
	_, ok := s.DegreeOf(p)
	return ok
}

// DegreeOf returns the 1-based degree of p. A chromatic note has no degree
// and reports false; that is not an error.
func (s Scale) DegreeOf(p pitch.Pitch) (int, bool) {
	pattern, _ := Pattern(s.Mode)
	d := s.offset(p)
	for i, v := range pattern {
		if v == d {
			return i + 1, true
		}
	}
	return 0, false
}

// IsTonic reports degree 1.
func (s Scale) IsTonic(p pitch.Pitch) bool {
	d, ok := s.DegreeOf(p)
	return ok && d == 1
}

// IsLeadingTone reports degree 7, the seventh member of the pattern. In
// modes with a lowered seventh that note is a whole step below the tonic.
func (s Scale) IsLeadingTone(p pitch.Pitch) bool {
	d, ok := s.DegreeOf(p)
	return ok && d == 7
}

// IsTriadOutline reports whether three degrees are the root, third and fifth
// of one diatonic triad, in any order.
func IsTriadOutline(a, b, c int) bool {
	if a == b || b == c || a == c {
		return false
	}
	for root := 1; root <= 7; root++ {
		third := (root+1)%7 + 1
		fifth := (root+3)%7 + 1
		if isOneOf(a, root, third, fifth) && isOneOf(b, root, third, fifth) && isOneOf(c, root, third, fifth) {
			return true
		}
	}
	return false
}

func isOneOf(d int, set ...int) bool {
	for _, v := range set {
		if d == v {
			return true
		}
	}
	return false
}
