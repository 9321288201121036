package signup

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps the signup payload.
const maxBodyBytes = 1 << 20

var (
	ErrInvalidBody          = errors.New("Invalid request body")
	ErrUnsupportedMediaType = errors.New("Content-Type must be application/json")
)

type accountView struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type successResponse struct {
	Success bool        `json:"success"`
	Data    accountView `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewRouter binds the signup, health and metrics endpoints.
func NewRouter(c *SignupController, m *Metrics, g prometheus.Gatherer) http.Handler {
	router := httprouter.New()
	router.Handler(http.MethodPost, "/signup", SignupHandler(c, m))
	router.Handler(http.MethodGet, "/health", HealthHandler())
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return LoggingMiddleware(router)
}

func SignupHandler(c *SignupController, m *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
			m.incOutcome(outcomeUnsupportedMediaType)
			encodeError(w, http.StatusUnsupportedMediaType, ErrUnsupportedMediaType)
			return
		}

		req, err := decodeSignupRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			m.incOutcome(outcomeBadRequest)
			encodeError(w, http.StatusBadRequest, ErrInvalidBody)
			return
		}

		start := time.Now()
		res := c.Handle(r.Context(), req)
		m.ObserveSignup(res, start)

		if res.Status != StatusOK {
			encodeError(w, res.StatusCode(), res.Err)
			return
		}

		encode(w, http.StatusOK, successResponse{
			Success: true,
			Data:    accountView{ID: res.Account.ID, Name: res.Account.Name, Email: res.Account.Email},
		})
	})
}

func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		encode(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
}

func encodeError(w http.ResponseWriter, code int, err error) {
	encode(w, code, errorResponse{Success: false, Error: err.Error()})
}

func encode(w http.ResponseWriter, code int, v interface{}) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("error encoding response")
	}
}

func decodeSignupRequest(body io.Reader) (SignupRequest, error) {
	req := SignupRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return SignupRequest{}, err
	}
	return req, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
