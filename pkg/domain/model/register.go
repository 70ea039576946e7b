package model

import (
	"sort"

	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

// DefaultTopN is the number of rows returned by TopRisks when n is not positive
const DefaultTopN = 5

// RegisterRow is one row of the denormalized Models x Risks x Controls join.
// Risk and control columns are nil when the left side has no match.
type RegisterRow struct {
	ModelID            int64               `json:"model_id"`
	ModelName          string              `json:"model_name"`
	UseCase            string              `json:"use_case"`
	ModelDescription   string              `json:"model_description"`
	Owner              string              `json:"owner"`
	Status             types.ModelStatus   `json:"status"`
	RiskID             *int64              `json:"risk_id"`
	RiskType           *string             `json:"risk_type"`
	HazardDescription  *string             `json:"hazard_description"`
	LikelihoodScore    *types.Score        `json:"likelihood_score"`
	MagnitudeScore     *types.Score        `json:"magnitude_score"`
	CompositeRiskScore *int                `json:"composite_risk_score"`
	ControlID          *int64              `json:"control_id"`
	ControlDescription *string             `json:"control_description"`
	EffectivenessScore *types.Score        `json:"effectiveness_score"`
	RiskResponse       *types.RiskResponse `json:"risk_response"`
}

// CategoryCount is the number of risks mapped to one broad category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// BuildRegister left-joins risks onto models by model ID, then controls onto
// the result by risk ID. Rows are ordered by model, risk and control ID.
// Risks whose model is absent do not appear.
func BuildRegister(models []*AIModel, risks []*Risk, controls []*Control) []*RegisterRow {
	sortedModels := make([]*AIModel, len(models))
	copy(sortedModels, models)
	sort.SliceStable(sortedModels, func(i, j int) bool { return sortedModels[i].ID < sortedModels[j].ID })

	risksByModel := make(map[int64][]*Risk)
	for _, r := range risks {
		risksByModel[r.ModelID] = append(risksByModel[r.ModelID], r)
	}
	for _, list := range risksByModel {
		sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}

	controlsByRisk := make(map[int64][]*Control)
	for _, c := range controls {
		controlsByRisk[c.RiskID] = append(controlsByRisk[c.RiskID], c)
	}
	for _, list := range controlsByRisk {
		sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}

	rows := make([]*RegisterRow, 0, len(models)+len(risks)+len(controls))
	for _, m := range sortedModels {
		modelRisks := risksByModel[m.ID]
		if len(modelRisks) == 0 {
			rows = append(rows, newModelRow(m))
			continue
		}

		for _, r := range modelRisks {
			riskControls := controlsByRisk[r.ID]
			if len(riskControls) == 0 {
				row := newModelRow(m)
				row.withRisk(r)
				rows = append(rows, row)
				continue
			}

			for _, c := range riskControls {
				row := newModelRow(m)
				row.withRisk(r)
				row.withControl(c)
				rows = append(rows, row)
			}
		}
	}

	return rows
}

func newModelRow(m *AIModel) *RegisterRow {
	return &RegisterRow{
		ModelID:          m.ID,
		ModelName:        m.Name,
		UseCase:          m.UseCase,
		ModelDescription: m.Description,
		Owner:            m.Owner,
		Status:           m.Status,
	}
}

func (row *RegisterRow) withRisk(r *Risk) {
	c := r.Copy()
	row.RiskID = &c.ID
	row.RiskType = &c.RiskType
	row.HazardDescription = &c.HazardDescription
	row.LikelihoodScore = c.Likelihood
	row.MagnitudeScore = c.Magnitude
	row.CompositeRiskScore = c.Composite
}

func (row *RegisterRow) withControl(ctrl *Control) {
	c := ctrl.Copy()
	row.ControlID = &c.ID
	row.ControlDescription = &c.Description
	row.EffectivenessScore = c.Effectiveness
	row.RiskResponse = c.Response
}

// TopRisks returns the first n rows ordered by composite score descending.
// Rows without a composite go last and ties keep their register order.
func TopRisks(rows []*RegisterRow, n int) []*RegisterRow {
	if n <= 0 {
		n = DefaultTopN
	}

	sorted := make([]*RegisterRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CompositeRiskScore, sorted[j].CompositeRiskScore
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// CategoryCounts counts risks per broad category. Risk types that are not a
// taxonomy label are skipped. Output follows the taxonomy's category order and
// omits empty categories.
func CategoryCounts(risks []*Risk, taxonomy *Taxonomy) []*CategoryCount {
	counts := make(map[string]int)
	for _, r := range risks {
		if cat, ok := taxonomy.CategoryOf(r.RiskType); ok {
			counts[cat]++
		}
	}

	result := make([]*CategoryCount, 0, len(counts))
	for _, name := range taxonomy.CategoryNames() {
		if n := counts[name]; n > 0 {
			result = append(result, &CategoryCount{Category: name, Count: n})
		}
	}
	return result
}
