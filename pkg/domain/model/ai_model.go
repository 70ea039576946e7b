package model

import (
	"time"

	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

// AIModel is a registered AI model. It is immutable after registration.
type AIModel struct {
	ID          int64
	Name        string
	UseCase     string
	Description string
	Owner       string
	Status      types.ModelStatus
	CreatedAt   time.Time
}

// Copy returns a copy of the model
func (m *AIModel) Copy() *AIModel {
	copied := *m
	return &copied
}
