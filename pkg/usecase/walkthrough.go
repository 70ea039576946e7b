package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

// WalkthroughStep is the outcome of one scripted register action
type WalkthroughStep struct {
	Name   string
	Notice *model.Notice
}

type walkthrough struct {
	uc          *UseCases
	workspaceID string
	steps       []WalkthroughStep
}

// record keeps advisory outcomes as steps and stops only on internal faults
func (w *walkthrough) record(name string, err error) error {
	notice := NoticeOf(err)
	if notice == nil {
		return goerr.Wrap(err, "walkthrough step failed", goerr.V("step", name))
	}
	w.steps = append(w.steps, WalkthroughStep{Name: name, Notice: notice})
	return nil
}

// Walkthrough replays the credit scoring and fraud detection risk review
// against workspaceID. The workspace should be empty so the ids line up.
func (uc *UseCases) Walkthrough(ctx context.Context, workspaceID string) ([]WalkthroughStep, error) {
	w := &walkthrough{uc: uc, workspaceID: workspaceID}
	if err := w.run(ctx); err != nil {
		return w.steps, err
	}
	return w.steps, nil
}

func (w *walkthrough) run(ctx context.Context) error {
	ws := w.workspaceID

	scorer, _, err := w.uc.Model.RegisterModel(ctx, ws, AddModelInput{
		Name:        "Credit Score Predictor",
		UseCase:     "Automating credit risk assessment for loan applications",
		Description: "Machine learning model predicting creditworthiness based on financial history and demographic data.",
		Owner:       "Retail Banking Analytics",
		Status:      types.ModelStatusInProduction.String(),
	})
	if err := w.record("register Credit Score Predictor", err); err != nil || scorer == nil {
		return err
	}

	identified := []struct {
		riskType    string
		description string
		likelihood  types.Score
		magnitude   types.Score
	}{
		{"Data Quality", "Poor or incomplete historical data leading to inaccurate credit scores.", 3, 4},
		{"Algorithmic Bias", "Model exhibits biased decision-making against certain demographic groups.", 3, 5},
		{"Performance Degradation", "Model accuracy degrades over time due to changes in credit behavior patterns.", 3, 3},
	}
	riskIDs := make(map[string]int64)
	for _, r := range identified {
		risk, _, err := w.uc.Risk.IdentifyRisk(ctx, ws, AddRiskInput{
			ModelID:           scorer.ID,
			RiskType:          r.riskType,
			HazardDescription: r.description,
		})
		if err := w.record("identify "+r.riskType, err); err != nil {
			return err
		}
		if risk == nil {
			continue
		}
		riskIDs[r.riskType] = risk.ID

		_, err = w.uc.Risk.AssignScores(ctx, ws, risk.ID, r.likelihood, r.magnitude)
		if err := w.record(fmt.Sprintf("score %s (%d x %d)", r.riskType, r.likelihood, r.magnitude), err); err != nil {
			return err
		}
		_, err = w.uc.Risk.CalculateComposite(ctx, ws, risk.ID)
		if err := w.record("composite "+r.riskType, err); err != nil {
			return err
		}
	}

	adversarial, err := w.uc.Risk.AddScoredRisk(ctx, ws, scorer.ID, "Adversarial Attacks",
		"Subtle manipulation of input features to cause a misclassification of a high-risk individual as low-risk.", 4, 5)
	if err := w.record("adversarial testing finding", err); err != nil {
		return err
	}
	if adversarial != nil {
		riskIDs["Adversarial Attacks"] = adversarial.ID
	}

	fraudModel := AddModelInput{
		Name:        "Fraud Detection System",
		UseCase:     "Detecting fraudulent financial transactions in real-time",
		Description: "Supervised learning model trained on historical transaction data to flag suspicious activities.",
		Owner:       "Fraud Prevention Unit",
		Status:      types.ModelStatusInProduction.String(),
	}
	_, provenance, err := w.uc.Risk.AddSupplyChainRisk(ctx, ws, SupplyChainRiskInput{
		Model:             fraudModel,
		RiskType:          "Data Provenance",
		HazardDescription: "Lack of verifiable data provenance for historical transaction data used in training.",
		Likelihood:        3,
		Magnitude:         4,
	})
	if err := w.record("supply chain Data Provenance", err); err != nil {
		return err
	}
	if provenance != nil {
		riskIDs["Data Provenance"] = provenance.ID
	}
	_, _, err = w.uc.Risk.AddSupplyChainRisk(ctx, ws, SupplyChainRiskInput{
		Model:             fraudModel,
		RiskType:          "Third-Party Dependency",
		HazardDescription: "Reliance on a third-party feature engineering library with unknown vulnerabilities.",
		Likelihood:        3,
		Magnitude:         3,
	})
	if err := w.record("supply chain Third-Party Dependency", err); err != nil {
		return err
	}

	controls := []struct {
		riskType    string
		description string
	}{
		{"Algorithmic Bias", "Implement fairness metrics monitoring and regular bias audits."},
		{"Adversarial Attacks", "Implement adversarial training techniques and robust input validation."},
		{"Data Provenance", "Implement data lineage tracking and provenance verification."},
	}
	for _, c := range controls {
		riskID, ok := riskIDs[c.riskType]
		if !ok {
			continue
		}
		control, _, err := w.uc.Control.DefineControl(ctx, ws, riskID, c.description)
		if err := w.record("control for "+c.riskType, err); err != nil {
			return err
		}
		if control == nil {
			continue
		}
		_, err = w.uc.Control.AssignResponse(ctx, ws, control.ID, 4, types.RiskResponseMitigate)
		if err := w.record("response for "+c.riskType, err); err != nil {
			return err
		}
	}

	_, _, err = w.uc.Risk.RecordMonitoringAlert(ctx, ws, MonitoringAlertInput{
		ModelID:           scorer.ID,
		RiskType:          "Data Drift",
		HazardDescription: "Significant shift in demographic distribution of loan applicants causing potential model inaccuracy.",
		Likelihood:        4,
		Magnitude:         4,
	})
	if err := w.record("data drift alert", err); err != nil {
		return err
	}

	_, err = w.uc.Risk.UpdateAssessment(ctx, ws, scorer.ID, "Performance Degradation", 4, 4)
	return w.record("update Performance Degradation assessment", err)
}
