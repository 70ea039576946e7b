package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/secmon-lab/riskregister/pkg/utils/errutil"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"github.com/secmon-lab/riskregister/pkg/utils/safe"
)

var errInvalidRequest = goerr.New("invalid request")

type noticeResponse struct {
	Notice *model.Notice `json:"notice"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// writeError answers advisory and validation errors with a notice and
// anything else with a 500.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	notice := usecase.NoticeOf(err)
	if notice == nil && errors.Is(err, errInvalidRequest) {
		notice = &model.Notice{Code: model.NoticeInvalid, Message: err.Error()}
	}
	if notice == nil {
		operationCounter.WithLabelValues(op, "error").Inc()
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	operationCounter.WithLabelValues(op, string(notice.Code)).Inc()
	advisoryCounter.WithLabelValues(string(notice.Code)).Inc()
	logging.From(r.Context()).Warn("request not applied",
		"operation", op,
		"code", notice.Code,
		"message", notice.Message,
	)
	writeJSON(w, r, noticeStatus(notice.Code), noticeResponse{Notice: notice})
}

func noticeStatus(code model.NoticeCode) int {
	switch code {
	case model.NoticeNotFound:
		return http.StatusNotFound
	case model.NoticeMissingPreconditions:
		return http.StatusConflict
	case model.NoticeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}

func (s *Server) decode(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return goerr.Wrap(errInvalidRequest, "malformed JSON body", goerr.V("error", err.Error()))
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return goerr.Wrap(errInvalidRequest, verrs[0].Error())
		}
		return goerr.Wrap(errInvalidRequest, err.Error())
	}
	return nil
}

func pathID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.Wrap(errInvalidRequest, "id must be a positive integer", goerr.V(key, raw))
	}
	return id, nil
}
