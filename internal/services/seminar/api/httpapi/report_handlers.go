package httpapi

import (
	"context"
	"net/http"

	"github.com/seminarhub/backend/internal/platform/httpjson"
	"github.com/seminarhub/backend/internal/services/seminar/reports"
)

type reportPayload struct {
	Title    string     `json:"title"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Warnings []string   `json:"warnings,omitempty"`
}

func (h *Handler) scheduleReport(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, h.reports.Schedule)
}

func (h *Handler) finalEvaluationReport(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, h.reports.FinalEvaluations)
}

func (h *Handler) awardAgendaReport(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, h.reports.AwardAgenda)
}

// serveReport renders a report in the requested format: json (default),
// csv, or txt.
func (h *Handler) serveReport(w http.ResponseWriter, r *http.Request, build func(context.Context) (reports.Report, error)) {
	report, err := build(r.Context())
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if err := reports.WriteCSV(w, report); err != nil {
			h.logger.Error("write csv report", "error", err)
		}
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := reports.WriteText(w, report); err != nil {
			h.logger.Error("write text report", "error", err)
		}
	default:
		httpjson.WriteSuccess(w, reportPayload{
			Title:    report.Title,
			Columns:  report.Columns,
			Rows:     report.Rows,
			Warnings: report.Warnings,
		})
	}
}
