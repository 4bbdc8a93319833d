package pitch

import (
	"fmt"
	"strings"
)

// Class is a spelled note name without an octave, used for key tonics.
type Class struct {
	Letter     Letter
	Accidental Accidental
}

// ParseClass reads a note name such as "D", "f#" or "Bb".
func ParseClass(text string) (Class, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Class{}, &ParseError{Input: text, Reason: "empty note name"}
	}
	// Reuse the pitch grammar with a dummy octave.
	p, err := Parse(s + "4")
	if err != nil {
		return Class{}, &ParseError{Input: text, Reason: "not a note name"}
	}
	return p.Class(), nil
}

// Semitone returns the pitch class number 0..11.
func (c Class) Semitone() int {
	return mod(c.Letter.Offset()+int(c.Accidental), 12)
}

// In places the class in an octave.
func (c Class) In(octave int) Pitch {
	return Pitch{Letter: c.Letter, Accidental: c.Accidental, Octave: octave}
}

func (c Class) String() string {
	return fmt.Sprintf("%s%s", c.Letter, c.Accidental)
}

// enharmonic pairs; the octave shift applies when crossing the B/C boundary
var enharmonics = map[Class]struct {
	to    Class
	shift int
}{
	{D, Flat}:    {Class{C, Sharp}, 0},
	{C, Sharp}:   {Class{D, Flat}, 0},
	{E, Flat}:    {Class{D, Sharp}, 0},
	{D, Sharp}:   {Class{E, Flat}, 0},
	{F, Flat}:    {Class{E, Natural}, 0},
	{E, Natural}: {Class{F, Flat}, 0},
	{G, Flat}:    {Class{F, Sharp}, 0},
	{F, Sharp}:   {Class{G, Flat}, 0},
	{A, Flat}:    {Class{G, Sharp}, 0},
	{G, Sharp}:   {Class{A, Flat}, 0},
	{B, Flat}:    {Class{A, Sharp}, 0},
	{A, Sharp}:   {Class{B, Flat}, 0},
	{C, Flat}:    {Class{B, Natural}, -1},
	{B, Natural}: {Class{C, Flat}, 1},
	{E, Sharp}:   {Class{F, Natural}, 0},
	{F, Natural}: {Class{E, Sharp}, 0},
	{B, Sharp}:   {Class{C, Natural}, 1},
	{C, Natural}: {Class{B, Sharp}, -1},
}

// Enharmonic returns the alternative spelling of p with the same MIDI number.
// Pitches without a single-accidental alternative (D, G, A) report false.
func Enharmonic(p Pitch) (Pitch, bool) {
	e, ok := enharmonics[p.Class()]
	if !ok {
		return Pitch{}, false
	}
	return e.to.In(p.Octave + e.shift), true
}
