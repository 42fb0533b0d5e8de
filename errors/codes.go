package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Invocation errors
const (
	// ErrCodeInvalidInput indicates a bad command-line argument or flag.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingConfig indicates a required credential or environment
	// variable is absent.
	ErrCodeMissingConfig ErrorCode = "MISSING_CONFIG"
)

// Pipeline errors
const (
	// ErrCodePrecondition indicates the output tree is not in the state an
	// upstream stage should have left it in.
	ErrCodePrecondition ErrorCode = "PRECONDITION_FAILED"
	// ErrCodeExternalTool indicates the external reconstruction tool failed.
	ErrCodeExternalTool ErrorCode = "EXTERNAL_TOOL_FAILED"
	// ErrCodeTimepointsFailed indicates one or more timepoints of a subject
	// could not be completed.
	ErrCodeTimepointsFailed ErrorCode = "TIMEPOINTS_FAILED"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidInput:     2,
	ErrCodeMissingConfig:    2,
	ErrCodePrecondition:     3,
	ErrCodeExternalTool:     4,
	ErrCodeTimepointsFailed: 5,
	ErrCodeInternal:         1,
}

// DefaultExitCode returns the process exit status associated with a code.
func DefaultExitCode(code ErrorCode) int {
	if ec, ok := exitCodes[code]; ok {
		return ec
	}
	return 1
}
