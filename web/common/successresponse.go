package common

// SuccessResponse wraps a single payload under a "data" key.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}
