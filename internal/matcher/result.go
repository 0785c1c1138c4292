package matcher

import "fmt"

// MatchResult holds the per-file output of a submission. Index i in both
// slices corresponds to the i-th submitted file, in submission order. Scores
// are raw model output and may be negative.
type MatchResult struct {
	ExtractedTexts   []string  `json:"extracted_texts"`
	PredictionScores []float64 `json:"prediction_scores"`
}

func (r *MatchResult) Len() int {
	return len(r.PredictionScores)
}

// validate rejects responses where the parallel slices disagree. A mismatch
// means the response cannot be aligned with the submitted files.
func (r *MatchResult) validate() error {
	if r.ExtractedTexts == nil || r.PredictionScores == nil {
		return fmt.Errorf("malformed response: missing extracted_texts or prediction_scores")
	}

	if len(r.ExtractedTexts) != len(r.PredictionScores) {
		return fmt.Errorf("malformed response: %d extracted texts vs %d scores",
			len(r.ExtractedTexts), len(r.PredictionScores))
	}

	return nil
}
