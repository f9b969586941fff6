package similarity

import (
	"strings"
)

const (
	exactSegmentScore     = 1.0
	substringSegmentScore = 0.9
)

// Location scores how close two free-text locations such as
// "City, State, Country" are. Each comma-separated segment of the query is
// matched against the best candidate segment and the per-segment maxima are
// averaged.
//
// Segments that are neither equal nor substrings of each other fall back to a
// positional character overlap: both strings are aligned at index 0 and equal
// characters are counted against the length of the longer one. Transposed or
// shifted spellings therefore score low. Thresholds downstream were tuned
// against this behaviour, so it must not be swapped for an edit distance.
func Location(query, candidate string) float64 {
	if query == "" || candidate == "" {
		return 0
	}

	querySegments := splitLocation(query)
	candidateSegments := splitLocation(candidate)

	total := 0.0
	for _, q := range querySegments {
		best := 0.0
		for _, c := range candidateSegments {
			if score := segmentSimilarity(q, c); score > best {
				best = score
			}
		}
		total += best
	}

	return total / float64(len(querySegments))
}

func splitLocation(location string) []string {
	parts := strings.Split(location, ",")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, strings.ToLower(strings.TrimSpace(part)))
	}
	return segments
}

func segmentSimilarity(a, b string) float64 {
	if a == b {
		return exactSegmentScore
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringSegmentScore
	}
	return positionalOverlap(a, b)
}

func positionalOverlap(a, b string) float64 {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(longer) == 0 {
		return 0
	}

	matches := 0
	for i := range shorter {
		if shorter[i] == longer[i] {
			matches++
		}
	}

	return float64(matches) / float64(len(longer))
}
