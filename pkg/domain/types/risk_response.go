package types

import "github.com/m-mizutani/goerr/v2"

// RiskResponse is the treatment chosen for a risk through one of its controls
type RiskResponse string

const (
	RiskResponseMitigate RiskResponse = "Mitigate"
	RiskResponseTransfer RiskResponse = "Transfer"
	RiskResponseAvoid    RiskResponse = "Avoid"
	RiskResponseAccept   RiskResponse = "Accept"
)

// AllRiskResponses returns all valid risk responses in display order
func AllRiskResponses() []RiskResponse {
	return []RiskResponse{
		RiskResponseMitigate,
		RiskResponseTransfer,
		RiskResponseAvoid,
		RiskResponseAccept,
	}
}

// IsValid checks if the risk response is valid
func (r RiskResponse) IsValid() bool {
	switch r {
	case RiskResponseMitigate,
		RiskResponseTransfer,
		RiskResponseAvoid,
		RiskResponseAccept:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk response
func (r RiskResponse) String() string {
	return string(r)
}

// ParseRiskResponse parses a string into a RiskResponse
func ParseRiskResponse(s string) (RiskResponse, error) {
	resp := RiskResponse(s)
	if !resp.IsValid() {
		return "", goerr.New("invalid risk response", goerr.V("response", s))
	}
	return resp, nil
}
