package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

// DefaultAlertThreshold is the composite score at or above which a risk alert is sent
const DefaultAlertThreshold = 20

type UseCases struct {
	repo           interfaces.Repository
	registry       *model.WorkspaceRegistry
	notifier       interfaces.RiskNotifier
	alertThreshold int

	Model    *ModelUseCase
	Risk     *RiskUseCase
	Control  *ControlUseCase
	Register *RegisterUseCase
}

type Option func(*UseCases)

// WithNotifier enables alerts for risks whose composite reaches the alert threshold
func WithNotifier(notifier interfaces.RiskNotifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithAlertThreshold(threshold int) Option {
	return func(uc *UseCases) {
		uc.alertThreshold = threshold
	}
}

func New(repo interfaces.Repository, registry *model.WorkspaceRegistry, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:           repo,
		registry:       registry,
		alertThreshold: DefaultAlertThreshold,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Model = NewModelUseCase(repo)
	uc.Risk = NewRiskUseCase(repo, registry, uc.notifier, uc.alertThreshold)
	uc.Control = NewControlUseCase(repo)
	uc.Register = NewRegisterUseCase(repo, registry)

	return uc
}

// WorkspaceRegistry returns the workspace registry
func (uc *UseCases) WorkspaceRegistry() *model.WorkspaceRegistry {
	return uc.registry
}

// Repository returns the underlying repository
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}

// taxonomyOf returns the taxonomy configured for a workspace. Without a
// registry every workspace uses the built-in taxonomy.
func taxonomyOf(registry *model.WorkspaceRegistry, workspaceID string) (*model.Taxonomy, error) {
	if registry == nil {
		return model.DefaultTaxonomy(), nil
	}
	entry, err := registry.Get(workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve workspace taxonomy", goerr.V(WorkspaceIDKey, workspaceID))
	}
	return entry.Taxonomy, nil
}
