package httpapi

import (
	"net/http"

	"github.com/seminarhub/backend/internal/platform/httpjson"
)

type winnerPayload struct {
	AwardType    string  `json:"award_type"`
	SubmissionID int64   `json:"submission_id"`
	StudentID    string  `json:"student_id,omitempty"`
	StudentName  string  `json:"student_name,omitempty"`
	Title        string  `json:"title,omitempty"`
	Score        float64 `json:"score"`
}

func (h *Handler) computeAwards(w http.ResponseWriter, r *http.Request) {
	winners, err := h.awards.PersistAwards(r.Context())
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	payload := make([]winnerPayload, 0, len(winners))
	for _, winner := range winners {
		payload = append(payload, winnerPayload{
			AwardType:    winner.AwardType.String(),
			SubmissionID: winner.SubmissionID,
			StudentID:    winner.StudentID,
			StudentName:  winner.StudentName,
			Title:        winner.Title,
			Score:        winner.Score,
		})
	}
	httpjson.WriteSuccess(w, payload)
}

func (h *Handler) listAwards(w http.ResponseWriter, r *http.Request) {
	awards, err := h.awards.ListAwards(r.Context())
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	payload := make([]winnerPayload, 0, len(awards))
	for _, award := range awards {
		payload = append(payload, winnerPayload{
			AwardType:    award.AwardType.String(),
			SubmissionID: award.SubmissionID,
			Score:        award.Score,
		})
	}
	httpjson.WriteSuccess(w, payload)
}
