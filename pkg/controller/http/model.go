package http

import (
	"net/http"

	"github.com/secmon-lab/riskregister/pkg/usecase"
)

func (s *Server) registerModel(w http.ResponseWriter, r *http.Request) {
	const op = "register_model"

	var req registerModelRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	m, created, err := s.uc.Model.RegisterModel(r.Context(), workspaceID(r), usecase.AddModelInput{
		Name:        req.Name,
		UseCase:     req.UseCase,
		Description: req.Description,
		Owner:       req.Owner,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	observe(op)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, struct {
		Model   *modelResponse `json:"model"`
		Created bool           `json:"created"`
	}{Model: toModelResponse(m), Created: created})
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.uc.Model.ListModels(r.Context(), workspaceID(r))
	if err != nil {
		writeError(w, r, "list_models", err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Models []*modelResponse `json:"models"`
	}{Models: mapSlice(models, toModelResponse)})
}

func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	const op = "get_model"

	id, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	m, err := s.uc.Model.GetModel(r.Context(), workspaceID(r), id)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Model *modelResponse `json:"model"`
	}{Model: toModelResponse(m)})
}
