package report

import (
	"fmt"

	"github.com/rmoralesp/jobfit/internal/matcher"
)

// Entry is one rendered block of the match report.
type Entry struct {
	// FileName is the submitted file name or a positional placeholder when
	// the file list is shorter than the result list.
	FileName string
	// RawScore is the model output, unclamped.
	RawScore float64
	// Percent is RawScore x 100 clamped below at zero. Display only.
	Percent float64
	// Text is the extracted resume content. Untrusted, escaped before any
	// markup insertion.
	Text string
}

// FormattedPercent renders the display percentage with two decimals.
func (e Entry) FormattedPercent() string {
	return fmt.Sprintf("%.2f%%", e.Percent)
}

// Build pairs every result row with its submitted file name, in submission
// order. The file list being shorter than the result list is tolerated.
func Build(result *matcher.MatchResult, fileNames []string) []Entry {
	entries := make([]Entry, 0, result.Len())
	for i, score := range result.PredictionScores {
		name := placeholderName(i)
		if i < len(fileNames) && fileNames[i] != "" {
			name = fileNames[i]
		}

		text := ""
		if i < len(result.ExtractedTexts) {
			text = result.ExtractedTexts[i]
		}

		entries = append(entries, Entry{
			FileName: name,
			RawScore: score,
			Percent:  displayPercent(score),
			Text:     text,
		})
	}

	return entries
}

// displayPercent clamps negative scores to zero for presentation. The raw
// score stays untouched.
func displayPercent(score float64) float64 {
	if score < 0 {
		return 0
	}

	return score * 100
}

func placeholderName(i int) string {
	return fmt.Sprintf("file-%d", i+1)
}
