package api

import (
	"encoding/json"
	"net/http"
)

// Client-facing error messages that are not operation specific.
const (
	MsgInternal      = "Internal server error"
	MsgRouteNotFound = "Route not found"
)

// Envelope is the uniform response body. Exactly one of Data and Error is set
// on /bfhl responses; informational routes use neither.
type Envelope struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
}

// successEnvelope is used for /bfhl results so that falsy payloads such as
// 0, "" or [] are still serialized under "data".
type successEnvelope struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
	Data          any    `json:"data"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData writes a successful envelope carrying data.
func (s *Server) writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{
		IsSuccess:     true,
		OfficialEmail: s.email,
		Data:          data,
	})
}

// writeError writes a failed envelope. msg must be safe to show to clients.
func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, Envelope{
		IsSuccess:     false,
		OfficialEmail: s.email,
		Error:         msg,
	})
}

// BadRequestError writes a 400 envelope.
func (s *Server) BadRequestError(w http.ResponseWriter, msg string) {
	s.writeError(w, http.StatusBadRequest, msg)
}

// InternalError writes a 500 envelope with the generic message.
func (s *Server) InternalError(w http.ResponseWriter) {
	s.writeError(w, http.StatusInternalServerError, MsgInternal)
}

// NotFoundError writes a 404 envelope. It also serves known paths requested
// with an unsupported method.
func (s *Server) NotFoundError(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusNotFound, MsgRouteNotFound)
}
