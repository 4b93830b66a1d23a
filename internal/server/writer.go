package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

type LogWriter struct {
	logger zerolog.Logger
	rw     http.ResponseWriter
	r      *http.Request
}

func NewLogWriter(l zerolog.Logger, rw http.ResponseWriter, r *http.Request) *LogWriter {
	return &LogWriter{l, rw, r}
}

func (l *LogWriter) Write(r Response) {
	l.rw.Header().Set("Content-Type", "application/json")
	l.rw.WriteHeader(r.Status)
	if err := json.NewEncoder(l.rw).Encode(r.Body); err != nil {
		l.logger.Error().
			Err(err).
			Str("method", l.r.Method).
			Str("path", l.r.URL.Path).
			Msg("failed to write json to http.ResponseWriter")
	}
}

// ServerErrorResponser is implemented by errors that carry a safe
// HTTP status code and message.
type ServerErrorResponser interface {
	ServerErrorResponse() (int, string)
}

func (l *LogWriter) WriteError(err error) {
	errResp := ErrorResponse{
		Status:   http.StatusInternalServerError,
		ErrorMsg: "Something went wrong",
	}

	var apiError ServerErrorResponser
	if errors.As(err, &apiError) {
		errResp.Status, errResp.ErrorMsg = apiError.ServerErrorResponse()
	}

	l.Write(errResp.AsResponse())
}
