package utils

import (
	"encoding/json"
	"net/http"
)

const (
	CodeConflict = "Conflict"
	CodeNotFound = "NotFound"
)

type Response struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Result  any    `json:"result,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ErrorDetail is one entry of Response.Errors. Status and Holder are set for
// seat conflicts only.
type ErrorDetail struct {
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
	Status   string `json:"status,omitempty"`
	Holder   string `json:"holder,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, message string, result, errors any) {
	response := Response{
		Message: message,
		Result:  result,
		Errors:  errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, result any) {
	ResponseJSON(w, http.StatusOK, message, result, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, result any) {
	ResponseJSON(w, http.StatusCreated, message, result, nil)
}

// ------------- Error responses -------------
// Error bodies carry a machine-readable code so clients can branch without
// parsing the message.

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, code, message string, errors map[string]ErrorDetail) {
	responseError(w, http.StatusBadRequest, code, message, errors)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	responseError(w, http.StatusNotFound, CodeNotFound, message, nil)
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string, errors map[string]ErrorDetail) {
	responseError(w, http.StatusConflict, CodeConflict, message, errors)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, message, nil, nil)
}

func nilIfEmpty(errors map[string]ErrorDetail) any {
	if len(errors) == 0 {
		return nil
	}
	return errors
}

func responseError(w http.ResponseWriter, status int, code, message string, errors map[string]ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Message: message,
		Code:    code,
		Errors:  nilIfEmpty(errors),
	})
}
