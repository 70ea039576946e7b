package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

func TestModelStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.ModelStatus
		want   bool
	}{
		{name: "in development", status: types.ModelStatusInDevelopment, want: true},
		{name: "in production", status: types.ModelStatusInProduction, want: true},
		{name: "retired", status: types.ModelStatusRetired, want: true},
		{name: "lowercase is not accepted", status: types.ModelStatus("retired"), want: false},
		{name: "empty status", status: types.ModelStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.status.IsValid()).Equal(tt.want)
		})
	}
}

func TestParseModelStatus(t *testing.T) {
	t.Run("empty defaults to in development", func(t *testing.T) {
		status, err := types.ParseModelStatus("")
		gt.NoError(t, err).Required()
		gt.Value(t, status).Equal(types.ModelStatusInDevelopment)
	})

	t.Run("valid status", func(t *testing.T) {
		status, err := types.ParseModelStatus("In Production")
		gt.NoError(t, err).Required()
		gt.Value(t, status).Equal(types.ModelStatusInProduction)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := types.ParseModelStatus("Deployed")
		gt.Value(t, err).NotNil()
	})
}

func TestParseRiskResponse(t *testing.T) {
	for _, r := range types.AllRiskResponses() {
		t.Run(r.String(), func(t *testing.T) {
			parsed, err := types.ParseRiskResponse(r.String())
			gt.NoError(t, err).Required()
			gt.Value(t, parsed).Equal(r)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := types.ParseRiskResponse("Ignore")
		gt.Value(t, err).NotNil()
	})

	t.Run("empty", func(t *testing.T) {
		_, err := types.ParseRiskResponse("")
		gt.Value(t, err).NotNil()
	})
}

func TestScore_Validate(t *testing.T) {
	for v := types.MinScore; v <= types.MaxScore; v++ {
		gt.NoError(t, types.Score(v).Validate())
	}
	gt.Value(t, types.Score(0).Validate()).NotNil()
	gt.Value(t, types.Score(6).Validate()).NotNil()
	gt.Value(t, types.Score(-1).Validate()).NotNil()
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		composite int
		want      types.Severity
	}{
		{1, types.SeverityLow},
		{4, types.SeverityLow},
		{5, types.SeverityMedium},
		{9, types.SeverityMedium},
		{10, types.SeverityHigh},
		{16, types.SeverityHigh},
		{17, types.SeverityCritical},
		{25, types.SeverityCritical},
	}

	for _, tt := range tests {
		gt.Value(t, types.SeverityOf(tt.composite)).Equal(tt.want)
	}
}

func TestWorkspaceID_Validate(t *testing.T) {
	gt.NoError(t, types.WorkspaceID("risk-office").Validate())
	gt.NoError(t, types.DefaultWorkspaceID.Validate())
	gt.Value(t, types.WorkspaceID("").Validate()).NotNil()
	gt.Value(t, types.WorkspaceID("Risk Office").Validate()).NotNil()
	gt.Value(t, types.WorkspaceID("-lead").Validate()).NotNil()
}
