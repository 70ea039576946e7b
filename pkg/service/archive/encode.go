package archive

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

// Format is the encoding of a register export
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", goerr.New("unsupported export format", goerr.V("format", s))
	}
}

// Extension returns the file extension of the format
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Snapshot is a register as of a point in time
type Snapshot struct {
	WorkspaceID string               `json:"workspace_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Rows        []*model.RegisterRow `json:"rows"`
}

// Columns is the header of a CSV export, in register column order
var Columns = []string{
	"model_id", "model_name", "use_case", "model_description", "owner", "status",
	"risk_id", "risk_type", "hazard_description", "likelihood_score", "magnitude_score",
	"composite_risk_score", "control_id", "control_description", "effectiveness_score",
	"risk_response",
}

// Encode writes snapshot to w. CSV omits the snapshot metadata and writes
// null columns as empty cells.
func Encode(w io.Writer, format Format, snapshot *Snapshot) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			return goerr.Wrap(err, "failed to encode register as JSON")
		}
		return nil

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(Columns); err != nil {
			return goerr.Wrap(err, "failed to write CSV header")
		}
		for _, row := range snapshot.Rows {
			if err := cw.Write(csvRecord(row)); err != nil {
				return goerr.Wrap(err, "failed to write CSV row", goerr.V("model_id", row.ModelID))
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return goerr.Wrap(err, "failed to flush CSV")
		}
		return nil

	default:
		return goerr.New("unsupported export format", goerr.V("format", format))
	}
}

func csvRecord(row *model.RegisterRow) []string {
	return []string{
		strconv.FormatInt(row.ModelID, 10),
		row.ModelName,
		row.UseCase,
		row.ModelDescription,
		row.Owner,
		row.Status.String(),
		optInt64(row.RiskID),
		optString(row.RiskType),
		optString(row.HazardDescription),
		optScore(row.LikelihoodScore),
		optScore(row.MagnitudeScore),
		optInt(row.CompositeRiskScore),
		optInt64(row.ControlID),
		optString(row.ControlDescription),
		optScore(row.EffectivenessScore),
		optResponse(row),
	}
}

func optInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optScore(v *types.Score) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(v.Int())
}

func optResponse(row *model.RegisterRow) string {
	if row.RiskResponse == nil {
		return ""
	}
	return row.RiskResponse.String()
}
