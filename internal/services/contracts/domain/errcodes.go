package domain

// ErrorSchema is the outcome schema name for the error-body contract
const ErrorSchema = "error"

// The closed set of machine codes an error body may carry
// Values are wire-stable; a new code here is a contract change for clients
const (
	CodeInvalidFileType   = "INVALID_FILE_TYPE"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeTooManyFiles      = "TOO_MANY_FILES"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeValidationError   = "VALIDATION_ERROR"
)

var knownErrorCodes = map[string]struct{}{
	CodeInvalidFileType:   {},
	CodeFileTooLarge:      {},
	CodeTooManyFiles:      {},
	CodeRateLimitExceeded: {},
	CodeUnauthorized:      {},
	CodeValidationError:   {},
}

// KnownErrorCode reports whether s is a member of the error code contract
func KnownErrorCode(s string) bool {
	_, ok := knownErrorCodes[s]
	return ok
}

// ErrorCodes returns the contract's error codes in stable order
func ErrorCodes() []string {
	return []string{
		CodeInvalidFileType,
		CodeFileTooLarge,
		CodeTooManyFiles,
		CodeRateLimitExceeded,
		CodeUnauthorized,
		CodeValidationError,
	}
}
