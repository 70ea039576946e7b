package memory

import (
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps every workspace's collections in process memory. Data is lost
// when the process exits.
type Memory struct {
	model   *modelRepository
	risk    *riskRepository
	control *controlRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		model:   newModelRepository(),
		risk:    newRiskRepository(),
		control: newControlRepository(),
	}
}

func (m *Memory) Model() interfaces.ModelRepository {
	return m.model
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Control() interfaces.ControlRepository {
	return m.control
}

func (m *Memory) Close() error {
	return nil
}
