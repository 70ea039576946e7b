package usecase

import (
	"errors"

	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

// Sentinel errors for use case layer
var (
	// Advisory errors. The store is left unchanged.
	ErrModelNotFound   = errors.New("model not found")
	ErrRiskNotFound    = errors.New("risk not found")
	ErrControlNotFound = errors.New("control not found")
	ErrScoresMissing   = errors.New("likelihood and magnitude must both be assigned before calculating the composite score")
	ErrEmptyRegister   = errors.New("register is empty, add models and risks first")

	// Validation errors
	ErrInvalidScore    = errors.New("score must be between 1 and 5")
	ErrInvalidStatus   = errors.New("invalid model status")
	ErrInvalidResponse = errors.New("invalid risk response")
	ErrInvalidRiskType = errors.New("invalid risk type")
	ErrEmptyName       = errors.New("name is required")
)

// Context keys for error values
const (
	WorkspaceIDKey = "workspace_id"
	ModelIDKey     = "model_id"
	RiskIDKey      = "risk_id"
	ControlIDKey   = "control_id"
)

// NoticeOf classifies err into an advisory notice. A nil error is NoticeOK.
// It returns nil for errors that are not advisory or validation failures,
// which callers must treat as internal faults.
func NoticeOf(err error) *model.Notice {
	if err == nil {
		return &model.Notice{Code: model.NoticeOK, Message: "ok"}
	}

	var code model.NoticeCode
	switch {
	case errors.Is(err, ErrModelNotFound),
		errors.Is(err, ErrRiskNotFound),
		errors.Is(err, ErrControlNotFound),
		errors.Is(err, model.ErrWorkspaceNotFound):
		code = model.NoticeNotFound
	case errors.Is(err, ErrScoresMissing):
		code = model.NoticeMissingPreconditions
	case errors.Is(err, ErrEmptyRegister):
		code = model.NoticeEmptyRegister
	case errors.Is(err, ErrInvalidScore),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidResponse),
		errors.Is(err, ErrInvalidRiskType),
		errors.Is(err, ErrEmptyName):
		code = model.NoticeInvalid
	default:
		return nil
	}

	return &model.Notice{Code: code, Message: err.Error()}
}
