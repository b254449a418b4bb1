package commons

type Response[T any] struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Data        *T                `json:"data,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// ValidationErrorResponse carries the per-field violation messages produced
// by the transfer schema so the form can surface them next to each input.
func ValidationErrorResponse[T any](message string, fieldErrors map[string]string) Response[T] {
	return Response[T]{
		Success:     false,
		Message:     message,
		FieldErrors: fieldErrors,
	}
}
