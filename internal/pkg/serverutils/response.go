package serverutils

// BaseResponse is the uniform JSON envelope returned by every endpoint.
type BaseResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Message: message,
		Data:    data,
	}
}
