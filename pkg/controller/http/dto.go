package http

import (
	"time"

	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

type registerModelRequest struct {
	Name        string `json:"name" validate:"required,max=256"`
	UseCase     string `json:"use_case"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Status      string `json:"status"`
}

type identifyRiskRequest struct {
	RiskType          string `json:"risk_type" validate:"required"`
	HazardDescription string `json:"hazard_description"`
	Likelihood        *int   `json:"likelihood" validate:"omitempty,min=1,max=5"`
	Magnitude         *int   `json:"magnitude" validate:"omitempty,min=1,max=5"`
}

type scoresRequest struct {
	Likelihood int `json:"likelihood" validate:"required,min=1,max=5"`
	Magnitude  int `json:"magnitude" validate:"required,min=1,max=5"`
}

type scoredRiskRequest struct {
	RiskType          string `json:"risk_type" validate:"required"`
	HazardDescription string `json:"hazard_description"`
	Likelihood        int    `json:"likelihood" validate:"required,min=1,max=5"`
	Magnitude         int    `json:"magnitude" validate:"required,min=1,max=5"`
}

type supplyChainRiskRequest struct {
	Model             registerModelRequest `json:"model"`
	RiskType          string               `json:"risk_type" validate:"required"`
	HazardDescription string               `json:"hazard_description"`
	Likelihood        int                  `json:"likelihood" validate:"required,min=1,max=5"`
	Magnitude         int                  `json:"magnitude" validate:"required,min=1,max=5"`
}

type defineControlRequest struct {
	Description string `json:"description" validate:"required"`
}

type assignResponseRequest struct {
	Effectiveness int    `json:"effectiveness" validate:"required,min=1,max=5"`
	Response      string `json:"response" validate:"required"`
}

func optionalScore(v *int) *types.Score {
	if v == nil {
		return nil
	}
	return types.ScorePtr(*v)
}

type modelResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	UseCase     string            `json:"use_case"`
	Description string            `json:"description"`
	Owner       string            `json:"owner"`
	Status      types.ModelStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

func toModelResponse(m *model.AIModel) *modelResponse {
	return &modelResponse{
		ID:          m.ID,
		Name:        m.Name,
		UseCase:     m.UseCase,
		Description: m.Description,
		Owner:       m.Owner,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
}

type riskResponse struct {
	ID                int64        `json:"id"`
	ModelID           int64        `json:"model_id"`
	RiskType          string       `json:"risk_type"`
	HazardDescription string       `json:"hazard_description"`
	Likelihood        *types.Score `json:"likelihood_score"`
	Magnitude         *types.Score `json:"magnitude_score"`
	Composite         *int         `json:"composite_risk_score"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func toRiskResponse(r *model.Risk) *riskResponse {
	return &riskResponse{
		ID:                r.ID,
		ModelID:           r.ModelID,
		RiskType:          r.RiskType,
		HazardDescription: r.HazardDescription,
		Likelihood:        r.Likelihood,
		Magnitude:         r.Magnitude,
		Composite:         r.Composite,
		UpdatedAt:         r.UpdatedAt,
	}
}

type controlResponse struct {
	ID            int64               `json:"id"`
	RiskID        int64               `json:"risk_id"`
	Description   string              `json:"description"`
	Effectiveness *types.Score        `json:"effectiveness_score"`
	Response      *types.RiskResponse `json:"risk_response"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func toControlResponse(c *model.Control) *controlResponse {
	return &controlResponse{
		ID:            c.ID,
		RiskID:        c.RiskID,
		Description:   c.Description,
		Effectiveness: c.Effectiveness,
		Response:      c.Response,
		UpdatedAt:     c.UpdatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
