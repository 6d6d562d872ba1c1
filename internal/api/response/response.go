// Package response defines the uniform envelope returned by every endpoint:
// {"success": bool, "data": T|null, "message": string}.
package response

// Envelope is the canonical response body for both success and failure.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// OK wraps a successful payload.
func OK(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Error wraps a failure message with a null data field.
func Error(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
