package services

import (
	"strings"

	"github.com/Conceptual-Machines/counterpoint-api/internal/music/scale"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

const modeSimilarityThreshold = 0.8

// SuggestMode finds the known mode closest to a misspelled name
func SuggestMode(name string) (scale.Mode, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return "", false
	}

	var best scale.Mode
	var highestScore float64
	for _, m := range scale.Modes() {
		score := strutil.Similarity(query, string(m), metrics.NewJaroWinkler())
		if score > highestScore {
			highestScore = score
			best = m
		}
	}

	if highestScore < modeSimilarityThreshold {
		return "", false
	}
	return best, true
}
