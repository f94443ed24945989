package assessment

import (
	"time"

	"github.com/abhisek/prepcoach/internal/store"
)

// Stats summarizes a user's assessment history.
type Stats struct {
	Assessments        int        `json:"assessments"`
	AverageScore       float64    `json:"averageScore"`
	LatestScore        float64    `json:"latestScore"`
	BestScore          float64    `json:"bestScore"`
	QuestionsPracticed int        `json:"questionsPracticed"`
	LastTakenAt        *time.Time `json:"lastTakenAt,omitempty"`
}

// ComputeStats expects list in creation order, as returned by Assessments.
func ComputeStats(list []store.Assessment) Stats {
	var st Stats
	if len(list) == 0 {
		return st
	}

	var total float64
	for _, a := range list {
		total += a.QuizScore
		st.QuestionsPracticed += len(a.Questions)
		if a.QuizScore > st.BestScore {
			st.BestScore = a.QuizScore
		}
	}

	last := list[len(list)-1]
	st.Assessments = len(list)
	st.AverageScore = total / float64(len(list))
	st.LatestScore = last.QuizScore
	lastAt := last.CreatedAt
	st.LastTakenAt = &lastAt
	return st
}
