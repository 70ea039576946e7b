package slack

// Export internal functions for testing
var (
	BuildAlertMessage  = buildAlertMessage
	TruncateToMaxBytes = truncateToMaxBytes
)
