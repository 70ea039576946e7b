package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

// AddRiskInput describes a hazard identified against a model. Scores are
// optional; the composite is computed when both are present.
type AddRiskInput struct {
	ModelID           int64
	RiskType          string
	HazardDescription string
	Likelihood        *types.Score
	Magnitude         *types.Score
}

type RiskUseCase struct {
	repo     interfaces.Repository
	registry *model.WorkspaceRegistry
	alerter  *riskAlerter
}

// NewRiskUseCase creates a RiskUseCase. A nil notifier disables alerts.
func NewRiskUseCase(repo interfaces.Repository, registry *model.WorkspaceRegistry, notifier interfaces.RiskNotifier, alertThreshold int) *RiskUseCase {
	return &RiskUseCase{
		repo:     repo,
		registry: registry,
		alerter:  newRiskAlerter(notifier, alertThreshold),
	}
}

// AddRisk stores a new risk under an existing model. It fails with
// ErrModelNotFound when the model is absent.
func (uc *RiskUseCase) AddRisk(ctx context.Context, workspaceID string, input AddRiskInput) (*model.Risk, error) {
	riskType, err := uc.validateRiskType(workspaceID, input.RiskType)
	if err != nil {
		return nil, err
	}
	if err := validateOptionalScore("likelihood", input.Likelihood); err != nil {
		return nil, err
	}
	if err := validateOptionalScore("magnitude", input.Magnitude); err != nil {
		return nil, err
	}

	m, err := getModel(ctx, uc.repo, workspaceID, input.ModelID)
	if err != nil {
		logAdvisory(ctx, err, "risk not added")
		return nil, err
	}

	risk := &model.Risk{
		ModelID:           m.ID,
		RiskType:          riskType,
		HazardDescription: input.HazardDescription,
		Likelihood:        input.Likelihood,
		Magnitude:         input.Magnitude,
	}
	risk.Recompute()

	created, err := uc.repo.Risk().Create(ctx, workspaceID, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V(ModelIDKey, m.ID))
	}

	logging.From(ctx).Info("risk added",
		WorkspaceIDKey, workspaceID,
		ModelIDKey, m.ID,
		RiskIDKey, created.ID,
		"risk_type", created.RiskType)

	uc.alerter.check(ctx, workspaceID, m, created, "add_risk")
	return created, nil
}

// IdentifyRisk adds a risk unless the model already has one with the same
// hazard description. The second value reports whether a risk was created.
func (uc *RiskUseCase) IdentifyRisk(ctx context.Context, workspaceID string, input AddRiskInput) (*model.Risk, bool, error) {
	if _, err := getModel(ctx, uc.repo, workspaceID, input.ModelID); err != nil {
		return nil, false, err
	}

	existing, err := uc.repo.Risk().ListByModel(ctx, workspaceID, input.ModelID)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to list risks", goerr.V(ModelIDKey, input.ModelID))
	}
	for _, r := range existing {
		if r.HazardDescription == input.HazardDescription {
			logging.From(ctx).Info("risk already identified",
				WorkspaceIDKey, workspaceID,
				RiskIDKey, r.ID)
			return r, false, nil
		}
	}

	created, err := uc.AddRisk(ctx, workspaceID, input)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// AssignScores overwrites both scores and recomputes the composite in the same write
func (uc *RiskUseCase) AssignScores(ctx context.Context, workspaceID string, riskID int64, likelihood, magnitude types.Score) (*model.Risk, error) {
	if err := validateScore("likelihood", likelihood); err != nil {
		return nil, err
	}
	if err := validateScore("magnitude", magnitude); err != nil {
		return nil, err
	}

	risk, err := getRisk(ctx, uc.repo, workspaceID, riskID)
	if err != nil {
		logAdvisory(ctx, err, "scores not assigned")
		return nil, err
	}

	risk.SetScores(likelihood, magnitude)
	updated, err := uc.repo.Risk().Update(ctx, workspaceID, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk scores", goerr.V(RiskIDKey, riskID))
	}

	logging.From(ctx).Info("risk scores assigned",
		WorkspaceIDKey, workspaceID,
		RiskIDKey, riskID,
		"likelihood", likelihood,
		"magnitude", magnitude,
		"composite", *updated.Composite)

	uc.alertForModel(ctx, workspaceID, updated, "assign_scores")
	return updated, nil
}

// CalculateComposite recomputes likelihood x magnitude. It returns
// ErrScoresMissing and leaves the composite unset when a score is missing.
func (uc *RiskUseCase) CalculateComposite(ctx context.Context, workspaceID string, riskID int64) (*model.Risk, error) {
	risk, err := getRisk(ctx, uc.repo, workspaceID, riskID)
	if err != nil {
		logAdvisory(ctx, err, "composite not calculated")
		return nil, err
	}

	if !risk.Recompute() {
		err := goerr.Wrap(ErrScoresMissing, "composite not calculated", goerr.V(RiskIDKey, riskID))
		logAdvisory(ctx, err, "composite not calculated")
		return nil, err
	}

	updated, err := uc.repo.Risk().Update(ctx, workspaceID, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update composite", goerr.V(RiskIDKey, riskID))
	}

	logging.From(ctx).Info("composite calculated",
		WorkspaceIDKey, workspaceID,
		RiskIDKey, riskID,
		"composite", *updated.Composite)
	return updated, nil
}

// AddScoredRisk adds a risk, assigns both scores and calculates the composite in one call
func (uc *RiskUseCase) AddScoredRisk(ctx context.Context, workspaceID string, modelID int64, riskType, hazardDescription string, likelihood, magnitude types.Score) (*model.Risk, error) {
	return uc.AddRisk(ctx, workspaceID, AddRiskInput{
		ModelID:           modelID,
		RiskType:          riskType,
		HazardDescription: hazardDescription,
		Likelihood:        &likelihood,
		Magnitude:         &magnitude,
	})
}

// SupplyChainRiskInput names a third party model and the scored risk it introduces
type SupplyChainRiskInput struct {
	Model             AddModelInput
	RiskType          string
	HazardDescription string
	Likelihood        types.Score
	Magnitude         types.Score
}

// AddSupplyChainRisk registers the third party model by name if needed and
// adds a scored risk to it.
func (uc *RiskUseCase) AddSupplyChainRisk(ctx context.Context, workspaceID string, input SupplyChainRiskInput) (*model.AIModel, *model.Risk, error) {
	if err := validateScore("likelihood", input.Likelihood); err != nil {
		return nil, nil, err
	}
	if err := validateScore("magnitude", input.Magnitude); err != nil {
		return nil, nil, err
	}
	if _, err := uc.validateRiskType(workspaceID, input.RiskType); err != nil {
		return nil, nil, err
	}

	m, _, err := NewModelUseCase(uc.repo).RegisterModel(ctx, workspaceID, input.Model)
	if err != nil {
		return nil, nil, err
	}

	risk, err := uc.AddScoredRisk(ctx, workspaceID, m.ID, input.RiskType, input.HazardDescription, input.Likelihood, input.Magnitude)
	if err != nil {
		return nil, nil, err
	}
	return m, risk, nil
}

func (uc *RiskUseCase) GetRisk(ctx context.Context, workspaceID string, id int64) (*model.Risk, error) {
	return getRisk(ctx, uc.repo, workspaceID, id)
}

func (uc *RiskUseCase) ListRisks(ctx context.Context, workspaceID string) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(WorkspaceIDKey, workspaceID))
	}
	return risks, nil
}

// ListRisksByModel fails with ErrModelNotFound when the model is absent
func (uc *RiskUseCase) ListRisksByModel(ctx context.Context, workspaceID string, modelID int64) ([]*model.Risk, error) {
	if _, err := getModel(ctx, uc.repo, workspaceID, modelID); err != nil {
		return nil, err
	}
	risks, err := uc.repo.Risk().ListByModel(ctx, workspaceID, modelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(ModelIDKey, modelID))
	}
	return risks, nil
}

// validateRiskType rejects empty types and broad category names. Labels
// unknown to the taxonomy are accepted but never counted per category.
func (uc *RiskUseCase) validateRiskType(workspaceID, riskType string) (string, error) {
	riskType = strings.TrimSpace(riskType)
	if riskType == "" {
		return "", goerr.Wrap(ErrInvalidRiskType, "risk type is required")
	}

	taxonomy, err := taxonomyOf(uc.registry, workspaceID)
	if err != nil {
		return "", err
	}
	if taxonomy.IsCategory(riskType) {
		return "", goerr.Wrap(ErrInvalidRiskType, "risk type must be a fine-grained label, not a broad category",
			goerr.V("risk_type", riskType))
	}
	return riskType, nil
}

func (uc *RiskUseCase) alertForModel(ctx context.Context, workspaceID string, risk *model.Risk, source string) {
	if !uc.alerter.enabled() {
		return
	}
	m, err := getModel(ctx, uc.repo, workspaceID, risk.ModelID)
	if err != nil {
		logging.From(ctx).Warn("model of scored risk not found, alert skipped",
			RiskIDKey, risk.ID,
			ModelIDKey, risk.ModelID)
		return
	}
	uc.alerter.check(ctx, workspaceID, m, risk, source)
}

// getRisk translates a repository miss into ErrRiskNotFound
func getRisk(ctx context.Context, repo interfaces.Repository, workspaceID string, id int64) (*model.Risk, error) {
	risk, err := repo.Risk().Get(ctx, workspaceID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrRiskNotFound, "unknown risk", goerr.V(RiskIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, id))
	}
	return risk, nil
}

func validateScore(name string, score types.Score) error {
	if err := score.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidScore, "invalid "+name, goerr.V(name, int(score)))
	}
	return nil
}

func validateOptionalScore(name string, score *types.Score) error {
	if score == nil {
		return nil
	}
	return validateScore(name, *score)
}

// logAdvisory logs advisory conditions at warn level. Other errors are left
// for the caller to handle.
func logAdvisory(ctx context.Context, err error, msg string) {
	notice := NoticeOf(err)
	if notice == nil || !notice.IsAdvisory() {
		return
	}
	logging.From(ctx).Warn(msg, "notice", notice.Code, "error", err.Error())
}
