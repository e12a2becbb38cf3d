package domain

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeTenantExists    ErrorCode = "TENANT_EXISTS"
	ErrorCodeInvalidStatus   ErrorCode = "INVALID_STATUS"
	ErrorCodeEmptyPatch      ErrorCode = "EMPTY_PATCH"
	ErrorCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrorCodeValidation      ErrorCode = "VALIDATION"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}
