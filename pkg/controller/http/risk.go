package http

import (
	"net/http"

	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/usecase"
)

type riskEnvelope struct {
	Risk    *riskResponse `json:"risk"`
	Created *bool         `json:"created,omitempty"`
}

func writeRisk(w http.ResponseWriter, r *http.Request, op string, risk *riskEnvelope, status int) {
	observe(op)
	writeJSON(w, r, status, risk)
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

func (s *Server) identifyRisk(w http.ResponseWriter, r *http.Request) {
	const op = "identify_risk"

	modelID, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req identifyRiskRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	risk, created, err := s.uc.Risk.IdentifyRisk(r.Context(), workspaceID(r), usecase.AddRiskInput{
		ModelID:           modelID,
		RiskType:          req.RiskType,
		HazardDescription: req.HazardDescription,
		Likelihood:        optionalScore(req.Likelihood),
		Magnitude:         optionalScore(req.Magnitude),
	})
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeRisk(w, r, op, &riskEnvelope{Risk: toRiskResponse(risk), Created: &created}, createdStatus(created))
}

func (s *Server) listModelRisks(w http.ResponseWriter, r *http.Request) {
	const op = "list_model_risks"

	modelID, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	risks, err := s.uc.Risk.ListRisksByModel(r.Context(), workspaceID(r), modelID)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Risks []*riskResponse `json:"risks"`
	}{Risks: mapSlice(risks, toRiskResponse)})
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := s.uc.Risk.ListRisks(r.Context(), workspaceID(r))
	if err != nil {
		writeError(w, r, "list_risks", err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Risks []*riskResponse `json:"risks"`
	}{Risks: mapSlice(risks, toRiskResponse)})
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	const op = "get_risk"

	id, err := pathID(r, "riskID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	risk, err := s.uc.Risk.GetRisk(r.Context(), workspaceID(r), id)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, &riskEnvelope{Risk: toRiskResponse(risk)})
}

func (s *Server) assignScores(w http.ResponseWriter, r *http.Request) {
	const op = "assign_scores"

	id, err := pathID(r, "riskID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req scoresRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	risk, err := s.uc.Risk.AssignScores(r.Context(), workspaceID(r), id, types.Score(req.Likelihood), types.Score(req.Magnitude))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeRisk(w, r, op, &riskEnvelope{Risk: toRiskResponse(risk)}, http.StatusOK)
}

func (s *Server) calculateComposite(w http.ResponseWriter, r *http.Request) {
	const op = "calculate_composite"

	id, err := pathID(r, "riskID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	risk, err := s.uc.Risk.CalculateComposite(r.Context(), workspaceID(r), id)
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeRisk(w, r, op, &riskEnvelope{Risk: toRiskResponse(risk)}, http.StatusOK)
}

func (s *Server) recordMonitoringAlert(w http.ResponseWriter, r *http.Request) {
	const op = "record_monitoring_alert"

	modelID, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req scoredRiskRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	risk, created, err := s.uc.Risk.RecordMonitoringAlert(r.Context(), workspaceID(r), usecase.MonitoringAlertInput{
		ModelID:           modelID,
		RiskType:          req.RiskType,
		HazardDescription: req.HazardDescription,
		Likelihood:        types.Score(req.Likelihood),
		Magnitude:         types.Score(req.Magnitude),
	})
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeRisk(w, r, op, &riskEnvelope{Risk: toRiskResponse(risk), Created: &created}, createdStatus(created))
}

func (s *Server) updateAssessment(w http.ResponseWriter, r *http.Request) {
	const op = "update_assessment"

	modelID, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	var req scoredRiskRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	risk, err := s.uc.Risk.UpdateAssessment(r.Context(), workspaceID(r), modelID, req.RiskType, types.Score(req.Likelihood), types.Score(req.Magnitude))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeRisk(w, r, op, &riskEnvelope{Risk: toRiskResponse(risk)}, http.StatusOK)
}

func (s *Server) addSupplyChainRisk(w http.ResponseWriter, r *http.Request) {
	const op = "add_supply_chain_risk"

	var req supplyChainRiskRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	m, risk, err := s.uc.Risk.AddSupplyChainRisk(r.Context(), workspaceID(r), usecase.SupplyChainRiskInput{
		Model: usecase.AddModelInput{
			Name:        req.Model.Name,
			UseCase:     req.Model.UseCase,
			Description: req.Model.Description,
			Owner:       req.Model.Owner,
			Status:      req.Model.Status,
		},
		RiskType:          req.RiskType,
		HazardDescription: req.HazardDescription,
		Likelihood:        types.Score(req.Likelihood),
		Magnitude:         types.Score(req.Magnitude),
	})
	if err != nil {
		writeError(w, r, op, err)
		return
	}

	observe(op)
	writeJSON(w, r, http.StatusCreated, struct {
		Model *modelResponse `json:"model"`
		Risk  *riskResponse  `json:"risk"`
	}{Model: toModelResponse(m), Risk: toRiskResponse(risk)})
}
