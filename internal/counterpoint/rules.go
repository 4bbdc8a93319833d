package counterpoint

// Severity buckets an issue for scoring and display.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Rule identifies the check that produced an issue.
type Rule string

const (
	// Structural failures; each short-circuits validation.
	RuleLength    Rule = "LENGTH"
	RuleAnacrusis Rule = "anacrusis"

	// Per-position harmonic rules
	RuleDissonance        Rule = "dissonance"
	RulePassingTone       Rule = "passing-tone"
	RuleStrongPassingTone Rule = "strong-passing-tone"
	RuleUnison            Rule = "unison"
	RuleVoiceCrossing     Rule = "voice-crossing"

	// Melodic rules
	RuleMelodicTritone Rule = "melodic-tritone"
	RuleLargeLeap      Rule = "large-leap"
	RuleStepwiseMotion Rule = "stepwise-motion"
	RuleRepeatedNote   Rule = "repeated-note"

	// Motion between strong positions
	RuleParallelFifths   Rule = "parallel-fifths"
	RuleParallelOctaves  Rule = "parallel-octaves"
	RuleParallelUnisons  Rule = "parallel-unisons"
	RuleHiddenFifths     Rule = "hidden-fifths"
	RuleHiddenOctaves    Rule = "hidden-octaves"
	RuleSimilarMotion    Rule = "similar-motion"
	RuleBattutaParallels Rule = "battuta-parallels"

	// Opening and cadence
	RuleFirstInterval Rule = "first-interval"
	RuleFinalInterval Rule = "final-interval"
	RuleLeadingTone   Rule = "leading-tone"
	RuleCadence       Rule = "cadence"

	// Whole-line checks
	RuleRange           Rule = "range"
	RuleSameDirection   Rule = "same-direction"
	RuleArpeggiation    Rule = "arpeggiation"
	RuleCompoundTritone Rule = "compound-tritone"
)

// Rules lists every rule identifier.
func Rules() []Rule {
	return []Rule{
		RuleLength, RuleAnacrusis,
		RuleDissonance, RulePassingTone, RuleStrongPassingTone, RuleUnison, RuleVoiceCrossing,
		RuleMelodicTritone, RuleLargeLeap, RuleStepwiseMotion, RuleRepeatedNote,
		RuleParallelFifths, RuleParallelOctaves, RuleParallelUnisons,
		RuleHiddenFifths, RuleHiddenOctaves, RuleSimilarMotion, RuleBattutaParallels,
		RuleFirstInterval, RuleFinalInterval, RuleLeadingTone, RuleCadence,
		RuleRange, RuleSameDirection, RuleArpeggiation, RuleCompoundTritone,
	}
}

// parallelRule maps a perfect interval number to its parallel rule.
func parallelRule(number int) Rule {
	switch number {
	case 5:
		return RuleParallelFifths
	case 8:
		return RuleParallelOctaves
	default:
		return RuleParallelUnisons
	}
}

// hiddenRule maps a perfect interval number to its hidden rule.
func hiddenRule(number int) Rule {
	if number == 5 {
		return RuleHiddenFifths
	}
	return RuleHiddenOctaves
}

func intervalWord(number int) string {
	switch number {
	case 1:
		return "unison"
	case 5:
		return "fifth"
	case 8:
		return "octave"
	default:
		return "interval"
	}
}
