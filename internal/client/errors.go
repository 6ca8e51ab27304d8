package client

// GenericFailureMessage is shown for non-2xx answers, whose bodies are not inspected.
const GenericFailureMessage = "Failed to analyze resume"

// TransportError covers network failures and non-2xx statuses.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return GenericFailureMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError is a 2xx answer whose body declares an error.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// MalformedResponseError is a 2xx answer whose body is not valid JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func statusError(code int) *TransportError {
	return &TransportError{StatusCode: code}
}

func networkError(err error) *TransportError {
	return &TransportError{Err: err}
}
