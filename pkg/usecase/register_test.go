package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/repository/memory"
	"github.com/secmon-lab/riskregister/pkg/usecase"
)

func TestRegisterUseCase_Scenario(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t)

	m := addModel(t, uc, "M1")
	risk, err := uc.Risk.AddRisk(ctx, testWorkspaceID, usecase.AddRiskInput{ModelID: m.ID, RiskType: "Data Quality"})
	gt.NoError(t, err).Required()
	_, err = uc.Risk.AssignScores(ctx, testWorkspaceID, risk.ID, 3, 4)
	gt.NoError(t, err).Required()
	scored, err := uc.Risk.CalculateComposite(ctx, testWorkspaceID, risk.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, *scored.Composite).Equal(12)

	control, err := uc.Control.AddControl(ctx, testWorkspaceID, risk.ID, "Retrain quarterly")
	gt.NoError(t, err).Required()
	_, err = uc.Control.AssignResponse(ctx, testWorkspaceID, control.ID, 4, types.RiskResponseMitigate)
	gt.NoError(t, err).Required()

	rows, err := uc.Register.BuildFullRegister(ctx, testWorkspaceID)
	gt.NoError(t, err).Required()
	gt.Array(t, rows).Length(1).Required()
	gt.Value(t, rows[0].ModelName).Equal("M1")
	gt.Value(t, *rows[0].CompositeRiskScore).Equal(12)
	gt.Value(t, *rows[0].ControlDescription).Equal("Retrain quarterly")
	gt.Value(t, *rows[0].RiskResponse).Equal(types.RiskResponseMitigate)
}

func TestRegisterUseCase_TopRisks(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t)
	m := addModel(t, uc, "M1")

	_, err := uc.Risk.AddScoredRisk(ctx, testWorkspaceID, m.ID, "Data Quality", "", 3, 4)
	gt.NoError(t, err).Required()
	_, err = uc.Risk.AddScoredRisk(ctx, testWorkspaceID, m.ID, "Adversarial Attacks", "", 5, 4)
	gt.NoError(t, err).Required()

	top, err := uc.Register.TopRisks(ctx, testWorkspaceID, 1)
	gt.NoError(t, err).Required()
	gt.Array(t, top).Length(1).Required()
	gt.Value(t, *top[0].CompositeRiskScore).Equal(20)

	all, err := uc.Register.TopRisks(ctx, testWorkspaceID, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(2)
}

func TestRegisterUseCase_RowCounts(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t)

	m1 := addModel(t, uc, "M1")
	addModel(t, uc, "M2")

	rows, err := uc.Register.BuildFullRegister(ctx, testWorkspaceID)
	gt.NoError(t, err).Required()
	gt.Array(t, rows).Length(2)

	for _, rt := range []string{"Data Quality", "Data Drift"} {
		_, err := uc.Risk.AddRisk(ctx, testWorkspaceID, usecase.AddRiskInput{ModelID: m1.ID, RiskType: rt})
		gt.NoError(t, err).Required()
	}

	rows, err = uc.Register.BuildFullRegister(ctx, testWorkspaceID)
	gt.NoError(t, err).Required()
	gt.Array(t, rows).Length(3).Required()
	gt.Value(t, rows[0].ModelID).Equal(m1.ID)
	gt.Value(t, rows[0].ControlID).Nil()
	gt.Value(t, rows[1].ControlID).Nil()
	gt.Value(t, rows[2].RiskID).Nil()
}

func TestRegisterUseCase_CategoryCounts(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t)
	m := addModel(t, uc, "M1")

	for _, rt := range []string{"Data Drift", "Algorithmic Bias", "Robustness", "Home-grown Label"} {
		_, err := uc.Risk.AddRisk(ctx, testWorkspaceID, usecase.AddRiskInput{ModelID: m.ID, RiskType: rt})
		gt.NoError(t, err).Required()
	}

	counts, err := uc.Register.CategoryCounts(ctx, testWorkspaceID)
	gt.NoError(t, err).Required()
	gt.Array(t, counts).Length(2).Required()
	gt.Value(t, counts[0]).Equal(&model.CategoryCount{Category: "Data Risk", Count: 1})
	gt.Value(t, counts[1]).Equal(&model.CategoryCount{Category: "Model Risk", Count: 2})
}

func TestRegisterUseCase_CustomTaxonomy(t *testing.T) {
	ctx := context.Background()

	taxonomy, err := model.NewTaxonomy([]model.TaxonomyCategory{
		{Name: "Safety", Labels: []string{"Prompt Injection", "Jailbreak"}},
	})
	gt.NoError(t, err).Required()

	registry := model.NewWorkspaceRegistry()
	registry.Register(&model.WorkspaceEntry{
		Workspace: model.Workspace{ID: "genai", Name: "GenAI"},
		Taxonomy:  taxonomy,
	})
	uc := usecase.New(memory.New(), registry)

	m, err := uc.Model.AddModel(ctx, "genai", usecase.AddModelInput{Name: "Assistant"})
	gt.NoError(t, err).Required()
	for _, rt := range []string{"Prompt Injection", "Jailbreak", "Data Drift"} {
		_, err := uc.Risk.AddRisk(ctx, "genai", usecase.AddRiskInput{ModelID: m.ID, RiskType: rt})
		gt.NoError(t, err).Required()
	}

	counts, err := uc.Register.CategoryCounts(ctx, "genai")
	gt.NoError(t, err).Required()
	gt.Array(t, counts).Length(1).Required()
	gt.Value(t, counts[0].Count).Equal(2)

	_, err = uc.Risk.AddRisk(ctx, "genai", usecase.AddRiskInput{ModelID: m.ID, RiskType: "Safety"})
	gt.Error(t, err).Is(usecase.ErrInvalidRiskType)
}

func TestRegisterUseCase_Empty(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t)

	rows, err := uc.Register.BuildFullRegister(ctx, testWorkspaceID)
	gt.Error(t, err).Is(usecase.ErrEmptyRegister)
	gt.Value(t, rows).NotNil()
	gt.Array(t, rows).Length(0)

	top, err := uc.Register.TopRisks(ctx, testWorkspaceID, 5)
	gt.Error(t, err).Is(usecase.ErrEmptyRegister)
	gt.Array(t, top).Length(0)

	counts, err := uc.Register.CategoryCounts(ctx, testWorkspaceID)
	gt.Error(t, err).Is(usecase.ErrEmptyRegister)
	gt.Value(t, counts).NotNil()
	gt.Array(t, counts).Length(0)

	gt.Value(t, usecase.NoticeOf(err).Code).Equal(model.NoticeEmptyRegister)
}

func TestRegisterUseCase_WorkspacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	registry := model.NewWorkspaceRegistry()
	registry.Register(&model.WorkspaceEntry{Workspace: model.Workspace{ID: "a", Name: "A"}})
	registry.Register(&model.WorkspaceEntry{Workspace: model.Workspace{ID: "b", Name: "B"}})
	uc := usecase.New(memory.New(), registry)

	_, err := uc.Model.AddModel(ctx, "a", usecase.AddModelInput{Name: "only in a"})
	gt.NoError(t, err).Required()

	rows, err := uc.Register.BuildFullRegister(ctx, "a")
	gt.NoError(t, err).Required()
	gt.Array(t, rows).Length(1)

	_, err = uc.Register.BuildFullRegister(ctx, "b")
	gt.Error(t, err).Is(usecase.ErrEmptyRegister)
}
