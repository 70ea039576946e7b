package http

import (
	"net/http"

	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

type controlEnvelope struct {
	Control *controlResponse `json:"control"`
	Created *bool            `json:"created,omitempty"`
}

func (s *Server) defineControl(w http.ResponseWriter, r *http.Request) {
	const op = "define_control"

	riskID, err := pathID(r, "riskID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req defineControlRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	control, created, err := s.uc.Control.DefineControl(r.Context(), workspaceID(r), riskID, req.Description)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	observe(op)
	writeJSON(w, r, createdStatus(created), &controlEnvelope{Control: toControlResponse(control), Created: &created})
}

func (s *Server) assignResponse(w http.ResponseWriter, r *http.Request) {
	const op = "assign_response"

	id, err := pathID(r, "controlID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req assignResponseRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	control, err := s.uc.Control.AssignResponse(r.Context(), workspaceID(r), id, types.Score(req.Effectiveness), types.RiskResponse(req.Response))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	observe(op)
	writeJSON(w, r, http.StatusOK, &controlEnvelope{Control: toControlResponse(control)})
}

func (s *Server) getControl(w http.ResponseWriter, r *http.Request) {
	const op = "get_control"

	id, err := pathID(r, "controlID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	control, err := s.uc.Control.GetControl(r.Context(), workspaceID(r), id)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, &controlEnvelope{Control: toControlResponse(control)})
}

func (s *Server) listControls(w http.ResponseWriter, r *http.Request) {
	controls, err := s.uc.Control.ListControls(r.Context(), workspaceID(r))
	if err != nil {
		writeError(w, r, "list_controls", err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Controls []*controlResponse `json:"controls"`
	}{Controls: mapSlice(controls, toControlResponse)})
}

func (s *Server) pendingControls(w http.ResponseWriter, r *http.Request) {
	controls, err := s.uc.Control.PendingControls(r.Context(), workspaceID(r))
	if err != nil {
		writeError(w, r, "pending_controls", err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Controls []*controlResponse `json:"controls"`
	}{Controls: mapSlice(controls, toControlResponse)})
}
