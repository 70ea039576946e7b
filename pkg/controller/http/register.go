package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/usecase"
)

type registerResponse struct {
	Rows   []*model.RegisterRow `json:"rows"`
	Notice *model.Notice        `json:"notice"`
}

type categoryCountsResponse struct {
	Categories []*model.CategoryCount `json:"categories"`
	Notice     *model.Notice          `json:"notice"`
}

// reportNotice lets an empty register through as a successful response. Any
// other error is written and reported as not handled.
func reportNotice(w http.ResponseWriter, r *http.Request, op string, err error) (*model.Notice, bool) {
	if err != nil && !errors.Is(err, usecase.ErrEmptyRegister) {
		writeError(w, r, op, err)
		return nil, false
	}

	notice := usecase.NoticeOf(err)
	if notice.IsAdvisory() {
		advisoryCounter.WithLabelValues(string(notice.Code)).Inc()
	}
	operationCounter.WithLabelValues(op, string(notice.Code)).Inc()
	return notice, true
}

func (s *Server) fullRegister(w http.ResponseWriter, r *http.Request) {
	rows, err := s.uc.Register.BuildFullRegister(r.Context(), workspaceID(r))
	notice, ok := reportNotice(w, r, "full_register", err)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, &registerResponse{Rows: nonNil(rows), Notice: notice})
}

func (s *Server) topRisks(w http.ResponseWriter, r *http.Request) {
	const op = "top_risks"

	var n int
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, r, op, goerr.Wrap(errInvalidRequest, "n must be a positive integer", goerr.V("n", raw)))
			return
		}
		n = v
	}

	rows, err := s.uc.Register.TopRisks(r.Context(), workspaceID(r), n)
	notice, ok := reportNotice(w, r, op, err)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, &registerResponse{Rows: nonNil(rows), Notice: notice})
}

func (s *Server) categoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.uc.Register.CategoryCounts(r.Context(), workspaceID(r))
	notice, ok := reportNotice(w, r, "category_counts", err)
	if !ok {
		return
	}
	if counts == nil {
		counts = []*model.CategoryCount{}
	}
	writeJSON(w, r, http.StatusOK, &categoryCountsResponse{Categories: counts, Notice: notice})
}

func nonNil(rows []*model.RegisterRow) []*model.RegisterRow {
	if rows == nil {
		return []*model.RegisterRow{}
	}
	return rows
}
