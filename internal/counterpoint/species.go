package counterpoint

import (
	"fmt"
	"strconv"
	"strings"
)

// Species is the number of counterpoint notes per cantus firmus note class.
type Species int

const (
	FirstSpecies  Species = 1
	SecondSpecies Species = 2
	ThirdSpecies  Species = 3
)

func (s Species) String() string {
	switch s {
	case FirstSpecies:
		return "first"
	case SecondSpecies:
		return "second"
	case ThirdSpecies:
		return "third"
	default:
		return fmt.Sprintf("Species(%d)", int(s))
	}
}

// ParseSpecies accepts "1".."3" or "first".."third", in any case.
func ParseSpecies(s string) (Species, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "first":
		return FirstSpecies, nil
	case "second":
		return SecondSpecies, nil
	case "third":
		return ThirdSpecies, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 3 {
		return 0, fmt.Errorf("species must be 1, 2 or 3, got %q", s)
	}
	return Species(n), nil
}

// Role is the metrical weight of a counterpoint position.
type Role int

const (
	RoleStrong Role = iota
	RoleSemiStrong
	RoleWeak
)

func (r Role) String() string {
	switch r {
	case RoleStrong:
		return "strong"
	case RoleSemiStrong:
		return "semi-strong"
	case RoleWeak:
		return "weak"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// RepetitionScope selects which repeated notes are reported.
type RepetitionScope int

const (
	RepeatIgnored RepetitionScope = iota
	RepeatAcrossBarline
	RepeatConsecutive
)

// Weights are the score deductions per issue.
type Weights struct {
	Error      int
	Warning    int
	Suggestion int
}

// Profile parameterizes the engine for one species. Profiles are plain
// values; callers may copy and adjust one and pass it to ValidateWith.
type Profile struct {
	Species Species
	Ratio   int // counterpoint notes per cantus firmus note

	// Role classifies a position given the index of the final position.
	Role func(pos, last int) Role

	// AnacrusisWindow is how many leading positions may hold a rest.
	AnacrusisWindow int

	// DirectionThreshold is the longest allowed run of motions in one
	// direction.
	DirectionThreshold int

	// MaxRange is the widest allowed span of the line in semitones.
	MaxRange int

	UpperCadence []int // degrees accepted before the final note, upper voice
	LowerCadence []int // same for the lower voice

	Cambiata   bool
	Repetition RepetitionScope
	Weights    Weights
}

// ExpectedLength returns the counterpoint length for a cantus firmus of n
// notes: n, 2n-1 or 4n-3.
func (p Profile) ExpectedLength(n int) int {
	return p.Ratio*(n-1) + 1
}

const defaultMaxRange = 19

var (
	// First is the 1:1 profile.
	First = Profile{
		Species: FirstSpecies,
		Ratio:   1,
		Role: func(_, _ int) Role {
			return RoleStrong
		},
		AnacrusisWindow:    0,
		DirectionThreshold: 8,
		MaxRange:           defaultMaxRange,
		UpperCadence:       []int{7},
		LowerCadence:       []int{2, 5, 7},
		Repetition:         RepeatIgnored,
		Weights:            Weights{Error: 15, Warning: 5, Suggestion: 1},
	}

	// Second is the 2:1 profile.
	Second = Profile{
		Species: SecondSpecies,
		Ratio:   2,
		Role: func(pos, last int) Role {
			if pos == last || pos%2 == 0 {
				return RoleStrong
			}
			return RoleWeak
		},
		AnacrusisWindow:    1,
		DirectionThreshold: 8,
		MaxRange:           defaultMaxRange,
		UpperCadence:       []int{7},
		LowerCadence:       []int{2, 5, 7},
		Repetition:         RepeatAcrossBarline,
		Weights:            Weights{Error: 10, Warning: 4, Suggestion: 1},
	}

	// Third is the 4:1 profile with a semi-strong third beat.
	Third = Profile{
		Species: ThirdSpecies,
		Ratio:   4,
		Role: func(pos, last int) Role {
			switch {
			case pos == last || pos%4 == 0:
				return RoleStrong
			case pos%4 == 2:
				return RoleSemiStrong
			default:
				return RoleWeak
			}
		},
		AnacrusisWindow:    3,
		DirectionThreshold: 11,
		MaxRange:           defaultMaxRange,
		UpperCadence:       []int{7},
		LowerCadence:       []int{2, 5, 7},
		Cambiata:           true,
		Repetition:         RepeatConsecutive,
		Weights:            Weights{Error: 8, Warning: 3, Suggestion: 1},
	}
)

// ProfileFor returns the built-in profile of a species.
func ProfileFor(s Species) (Profile, bool) {
	switch s {
	case FirstSpecies:
		return First, true
	case SecondSpecies:
		return Second, true
	case ThirdSpecies:
		return Third, true
	default:
		return Profile{}, false
	}
}
