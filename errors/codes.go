package errors

// ErrorCode identifies an application error category in responses and logs.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Configuration
	ErrorCode_CONFIG_MISSING_CREDENTIAL ErrorCode = 2000
	ErrorCode_CONFIG_INVALID_LANGUAGE   ErrorCode = 2001

	// Validation
	ErrorCode_VALIDATION_FAILED ErrorCode = 3000

	// Workflow
	ErrorCode_WORKFLOW_PHASE_NOT_READY ErrorCode = 4000
	ErrorCode_WORKFLOW_NO_PRIMARY      ErrorCode = 4001
	ErrorCode_WORKFLOW_NO_INSIGHTS     ErrorCode = 4002
	ErrorCode_WORKFLOW_NO_MASTER       ErrorCode = 4003

	// Collaborators
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 5000
	ErrorCode_GENERATION_FAILED    ErrorCode = 5001

	// Storage
	ErrorCode_STORAGE_FAILED ErrorCode = 6000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_CONFIG_MISSING_CREDENTIAL: "CONFIG_MISSING_CREDENTIAL",
	ErrorCode_CONFIG_INVALID_LANGUAGE:   "CONFIG_INVALID_LANGUAGE",
	ErrorCode_VALIDATION_FAILED:         "VALIDATION_FAILED",
	ErrorCode_WORKFLOW_PHASE_NOT_READY:  "WORKFLOW_PHASE_NOT_READY",
	ErrorCode_WORKFLOW_NO_PRIMARY:       "WORKFLOW_NO_PRIMARY",
	ErrorCode_WORKFLOW_NO_INSIGHTS:      "WORKFLOW_NO_INSIGHTS",
	ErrorCode_WORKFLOW_NO_MASTER:        "WORKFLOW_NO_MASTER",
	ErrorCode_TRANSCRIPTION_FAILED:      "TRANSCRIPTION_FAILED",
	ErrorCode_GENERATION_FAILED:         "GENERATION_FAILED",
	ErrorCode_STORAGE_FAILED:            "STORAGE_FAILED",
}

// String returns the symbolic name for the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
