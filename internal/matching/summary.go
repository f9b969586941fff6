package matching

// Score buckets used by Summarize.
const (
	excellentScore = 0.8
	goodScore      = 0.6
	fairScore      = 0.5
)

// Summary aggregates the total scores of a result set.
type Summary struct {
	Count        int          `json:"count"`
	AvgScore     float64      `json:"avg_score"`
	MaxScore     float64      `json:"max_score"`
	MinScore     float64      `json:"min_score"`
	Distribution Distribution `json:"score_distribution"`
}

// Distribution counts results per score bucket. Scores below the fair bucket
// are not counted.
type Distribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
}

// Summarize computes count, mean, max, min and the bucket histogram of the
// results' total scores. An empty set yields the zero Summary.
func Summarize(results []Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	summary := Summary{
		Count:    len(results),
		MaxScore: results[0].Scores.Total,
		MinScore: results[0].Scores.Total,
	}

	sum := 0.0
	for _, result := range results {
		score := result.Scores.Total
		sum += score

		summary.MaxScore = max(summary.MaxScore, score)
		summary.MinScore = min(summary.MinScore, score)

		switch {
		case score >= excellentScore:
			summary.Distribution.Excellent++
		case score >= goodScore:
			summary.Distribution.Good++
		case score >= fairScore:
			summary.Distribution.Fair++
		}
	}
	summary.AvgScore = sum / float64(len(results))

	return summary
}
