package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"personalFinance/internal/result"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, e *result.Error) {
	writeJSON(w, r, e.Code, errorBody{Error: e.Message})
}

// writeResult maps a service Result onto the response. status is used on success.
func writeResult[T any](w http.ResponseWriter, r *http.Request, res result.Result[T], status int) {
	data, e := res.Unpack()
	if e != nil {
		writeError(w, r, e)
		return
	}
	writeJSON(w, r, status, data)
}

// writeEmpty answers a successful delete with 204.
func writeEmpty(w http.ResponseWriter, r *http.Request, res result.Result[struct{}]) {
	if e := res.Err(); e != nil {
		writeError(w, r, e)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into dst. On failure it writes 400 and returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("decode body")
		writeError(w, r, result.InvalidBody())
		return false
	}
	return true
}
