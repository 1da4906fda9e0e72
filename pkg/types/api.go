package types

// WireTensor is the serializable form of a tensor handed across the dispatch
// boundary: dimensions, element-type tag and the raw element bytes in native
// byte order. It encodes to JSON (base64 data) or CBOR.
type WireTensor struct {
	// Dimension sizes, outermost first.
	// example: [2,3]
	Dims []int64 `json:"dims" cbor:"1,keyasint"`
	// Element-type tag (fixed cross-boundary encoding).
	// example: 1
	DType uint32 `json:"dtype" cbor:"2,keyasint"`
	// Raw element bytes, len = product(dims) * element size.
	Data []byte `json:"data" cbor:"3,keyasint"`
}

// ForwardRequest asks the service to run a model over the given tensors.
type ForwardRequest struct {
	// Model identifier from the catalog.
	// example: resnet18.pt
	Model string `json:"model" cbor:"1,keyasint" example:"resnet18.pt"`
	// Opaque run arguments forwarded to the runtime untouched.
	Args []byte `json:"args,omitempty" cbor:"2,keyasint,omitempty"`
	// Input tensors.
	Inputs []WireTensor `json:"inputs" cbor:"3,keyasint"`
}

// ForwardResponse carries the output tensors of a forward run.
type ForwardResponse struct {
	// Session correlates the response with server-side logs and timers.
	// example: 0f8fad5b-d9cb-469f-a165-70867728950e
	Session string `json:"session" cbor:"1,keyasint"`
	// Identity the runtime assigned to the model at registration.
	// example: 1
	ModelID int64 `json:"model_id" cbor:"2,keyasint"`
	// Output tensors, one per runtime output.
	Outputs []WireTensor `json:"outputs" cbor:"3,keyasint"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// StatusResponse summarizes service state for GET /status.
type StatusResponse struct {
	// Number of models in the catalog.
	// example: 3
	CatalogSize int `json:"catalog_size" example:"3"`
	// Number of models currently registered with the runtime.
	// example: 1
	Registered int `json:"registered" example:"1"`
	// Total forward calls served since start.
	// example: 42
	Forwards int64 `json:"forwards" example:"42"`
}

// TimerStat is one named-timer aggregate for GET /timers.
type TimerStat struct {
	// Last completed shot, in seconds.
	Last float64 `json:"last_seconds"`
	// Sum over completed shots, in seconds.
	Total float64 `json:"total_seconds"`
	// Number of completed shots.
	Count int `json:"count"`
	// Average over completed shots, in seconds.
	Avg float64 `json:"avg_seconds"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
