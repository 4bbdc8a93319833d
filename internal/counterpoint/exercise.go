package counterpoint

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/counterpoint-api/internal/music/pitch"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/scale"
)

// VoicePosition says whether the counterpoint sits above or below the cantus
// firmus.
type VoicePosition string

const (
	Upper VoicePosition = "upper"
	Lower VoicePosition = "lower"
)

// ParseVoicePosition accepts "upper"/"above" and "lower"/"below".
func ParseVoicePosition(s string) (VoicePosition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "upper", "above":
		return Upper, nil
	case "lower", "below":
		return Lower, nil
	default:
		return "", fmt.Errorf("invalid voice position %q", s)
	}
}

// Note is one counterpoint slot: a pitch or a rest.
type Note struct {
	Pitch pitch.Pitch
	Rest  bool
}

// Sounding wraps a pitch.
func Sounding(p pitch.Pitch) Note {
	return Note{Pitch: p}
}

// RestNote is an empty slot.
func RestNote() Note {
	return Note{Rest: true}
}

func (n Note) String() string {
	if n.Rest {
		return "rest"
	}
	return n.Pitch.String()
}

// Exercise is the input of one validation.
type Exercise struct {
	Species      Species
	CantusFirmus []pitch.Pitch
	Counterpoint []Note
	Key          pitch.Class
	Mode         scale.Mode
	Position     VoicePosition
}

// Scale returns the key of the exercise.
func (e Exercise) Scale() scale.Scale {
	return scale.New(e.Key, e.Mode)
}

// IsRestToken reports whether a counterpoint token denotes a rest.
func IsRestToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rest", "r", "-":
		return true
	}
	return false
}

// NewExercise parses notation strings into an Exercise. Malformed pitches,
// unknown modes and bad positions are returned as errors; they never become
// validation issues.
func NewExercise(species Species, cf, cp []string, key, mode, position string) (Exercise, error) {
	if _, ok := ProfileFor(species); !ok {
		return Exercise{}, fmt.Errorf("unsupported species %d", int(species))
	}

	tonic, err := pitch.ParseClass(key)
	if err != nil {
		return Exercise{}, fmt.Errorf("invalid key: %w", err)
	}
	m, err := scale.ParseMode(mode)
	if err != nil {
		return Exercise{}, err
	}
	pos, err := ParseVoicePosition(position)
	if err != nil {
		return Exercise{}, err
	}

	ex := Exercise{
		Species:      species,
		CantusFirmus: make([]pitch.Pitch, 0, len(cf)),
		Counterpoint: make([]Note, 0, len(cp)),
		Key:          tonic,
		Mode:         m,
		Position:     pos,
	}

	for i, s := range cf {
		p, err := pitch.Parse(s)
		if err != nil {
			return Exercise{}, fmt.Errorf("cantus firmus note %d: %w", i+1, err)
		}
		ex.CantusFirmus = append(ex.CantusFirmus, p)
	}
	for i, s := range cp {
		if IsRestToken(s) {
			ex.Counterpoint = append(ex.Counterpoint, RestNote())
			continue
		}
		p, err := pitch.Parse(s)
		if err != nil {
			return Exercise{}, fmt.Errorf("counterpoint note %d: %w", i+1, err)
		}
		ex.Counterpoint = append(ex.Counterpoint, Sounding(p))
	}

	return ex, nil
}
