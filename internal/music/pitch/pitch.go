// Package pitch implements scientific pitch notation: parsing, MIDI numbers and
// diatonic step counting.
package pitch

import (
	"fmt"
	"strings"
)

// Letter is a diatonic letter class, C=0 through B=6
type Letter int

const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

var letterNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

// Semitone offsets of the natural letters from C
var letterOffsets = [7]int{0, 2, 4, 5, 7, 9, 11}

func (l Letter) String() string {
	if l < C || l > B {
		return fmt.Sprintf("Letter(%d)", int(l))
	}
	return letterNames[l]
}

// Offset returns the semitone offset of the natural letter from C.
func (l Letter) Offset() int {
	return letterOffsets[l]
}

// Accidental alters a letter by one semitone at most.
type Accidental int

const (
	Flat    Accidental = -1
	Natural Accidental = 0
	Sharp   Accidental = 1
)

func (a Accidental) String() string {
	switch a {
	case Flat:
		return "b"
	case Sharp:
		return "#"
	default:
		return ""
	}
}

// Pitch is an immutable spelled pitch. Enharmonic spellings share a MIDI
// number but keep their own letter, which is what diatonic counting uses.
type Pitch struct {
	Letter     Letter
	Accidental Accidental
	Octave     int
}

// New builds a pitch from its parts.
func New(letter Letter, accidental Accidental, octave int) Pitch {
	return Pitch{Letter: letter, Accidental: accidental, Octave: octave}
}

// ParseError reports a malformed notation string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid pitch %q: %s", e.Input, e.Reason)
}

// Parse reads notation such as "C4", "f#3" or "Bb2". The letter is
// case-insensitive, at most one accidental is allowed and the octave is a
// single digit.
func Parse(text string) (Pitch, error) {
	s := strings.TrimSpace(text)
	if len(s) < 2 {
		return Pitch{}, &ParseError{Input: text, Reason: "too short"}
	}

	var p Pitch
	switch strings.ToUpper(s[:1]) {
	case "C":
		p.Letter = C
	case "D":
		p.Letter = D
	case "E":
		p.Letter = E
	case "F":
		p.Letter = F
	case "G":
		p.Letter = G
	case "A":
		p.Letter = A
	case "B":
		p.Letter = B
	default:
		return Pitch{}, &ParseError{Input: text, Reason: "letter must be A-G"}
	}

	idx := 1
	switch s[idx] {
	case '#':
		p.Accidental = Sharp
		idx++
	case 'b':
		p.Accidental = Flat
		idx++
	}

	if idx != len(s)-1 {
		if idx >= len(s) {
			return Pitch{}, &ParseError{Input: text, Reason: "missing octave"}
		}
		return Pitch{}, &ParseError{Input: text, Reason: "octave must be a single digit"}
	}
	digit := s[idx]
	if digit < '0' || digit > '9' {
		return Pitch{}, &ParseError{Input: text, Reason: "octave must be a single digit"}
	}
	p.Octave = int(digit - '0')

	return p, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tables
// and tests.
func MustParse(text string) Pitch {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// MIDI returns the semitone index, C4 = 60.
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + p.Letter.Offset() + int(p.Accidental)
}

// DiatonicIndex counts letter steps from C0, used for generic intervals.
func (p Pitch) DiatonicIndex() int {
	return int(p.Letter) + 7*p.Octave
}

// PitchClass returns the MIDI number reduced to 0..11.
func (p Pitch) PitchClass() int {
	return mod(p.MIDI(), 12)
}

// Class drops the octave, leaving the spelled note name.
func (p Pitch) Class() Class {
	return Class{Letter: p.Letter, Accidental: p.Accidental}
}

func (p Pitch) String() string {
	return fmt.Sprintf("%s%s%d", p.Letter, p.Accidental, p.Octave)
}

// Equal reports whether two pitches have the same spelling and octave.
func (p Pitch) Equal(o Pitch) bool {
	return p == o
}

// SameSound reports whether two pitches share a MIDI number.
func (p Pitch) SameSound(o Pitch) bool {
	return p.MIDI() == o.MIDI()
}

// Canonical spellings per pitch class
var (
	sharpSpellings = [12]Class{
		{C, Natural}, {C, Sharp}, {D, Natural}, {D, Sharp}, {E, Natural}, {F, Natural},
		{F, Sharp}, {G, Natural}, {G, Sharp}, {A, Natural}, {A, Sharp}, {B, Natural},
	}
	flatSpellings = [12]Class{
		{C, Natural}, {D, Flat}, {D, Natural}, {E, Flat}, {E, Natural}, {F, Natural},
		{G, Flat}, {G, Natural}, {A, Flat}, {A, Natural}, {B, Flat}, {B, Natural},
	}
)

// FromMIDI spells a semitone index canonically. The result is not an inverse
// of an arbitrarily spelled input: FromMIDI(MustParse("Cb4").MIDI(), false)
// is B3.
func FromMIDI(midi int, preferSharps bool) Pitch {
	pc := mod(midi, 12)
	octave := (midi-pc)/12 - 1
	spelling := flatSpellings[pc]
	if preferSharps {
		spelling = sharpSpellings[pc]
	}
	return Pitch{Letter: spelling.Letter, Accidental: spelling.Accidental, Octave: octave}
}

// Transpose moves p by n semitones and respells it canonically, keeping flats
// for flat inputs and sharps otherwise.
func Transpose(p Pitch, n int) Pitch {
	return FromMIDI(p.MIDI()+n, p.Accidental != Flat)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
