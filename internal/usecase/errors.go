package usecase

// Error codes surfaced to the HTTP layer. Handlers map them to status codes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInvalidStage       = "INVALID_STAGE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeDatabase           = "DATABASE_ERROR"
)

// DomainError is a caller fault: the request was understood but refused.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure fault (storage, broker) the caller
// cannot do anything about.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
