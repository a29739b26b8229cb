package domain

import (
	"fmt"
	"strconv"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
)

// Rubric score bounds. Each criterion is an integer from 0 to 5, so a total
// always falls in [0, 20].
const (
	RubricScoreMin = 0
	RubricScoreMax = 5
	RubricTotalMax = 4 * RubricScoreMax
)

// Rubric holds one evaluator's four criterion scores for one submission.
type Rubric struct {
	Clarity      int
	Methodology  int
	Results      int
	Presentation int
}

// Validate rejects any criterion score outside [0, 5].
func (r Rubric) Validate() error {
	criteria := []struct {
		name  string
		score int
	}{
		{"clarity", r.Clarity},
		{"methodology", r.Methodology},
		{"results", r.Results},
		{"presentation", r.Presentation},
	}
	for _, c := range criteria {
		if c.score < RubricScoreMin || c.score > RubricScoreMax {
			return platerrors.WithMetadata(
				platerrors.CodeEvaluationScoreOutOfRange,
				fmt.Sprintf("%s score %d is outside [%d, %d]", c.name, c.score, RubricScoreMin, RubricScoreMax),
				map[string]string{"criterion": c.name, "score": strconv.Itoa(c.score)},
			)
		}
	}
	return nil
}

// Total returns the exact integer sum of the four criterion scores.
func (r Rubric) Total() int {
	return r.Clarity + r.Methodology + r.Results + r.Presentation
}
