package signup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	svc       *serviceSpy
	emails    *emailValidatorStub
	metrics   *Metrics
	router    http.Handler
	signupReq string
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.svc = &serviceSpy{acc: validAccount()}
	suite.emails = &emailValidatorStub{valid: true}
	reg := prometheus.NewRegistry()
	suite.metrics = NewMetrics(reg)
	suite.router = NewRouter(NewSignupController(suite.emails, suite.svc), suite.metrics, reg)
	suite.signupReq = `
		{
			"name":"any_name",
			"email":"any_email@mail.com",
			"password":"any_password",
			"passwordConfirmation":"any_password"
		}
`
}

func (suite *HandlerTestSuite) post(body, contentType string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)
	return w
}

func (suite *HandlerTestSuite) TestDecodeRequest() {
	req, err := decodeSignupRequest(strings.NewReader(suite.signupReq))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), validSignupRequest(), req)
}

func (suite *HandlerTestSuite) TestDecodeRequest_NullIsMissing() {
	req, err := decodeSignupRequest(strings.NewReader(`{"name": null, "email": "a@b.com"}`))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), SignupRequest{Email: "a@b.com"}, req)
}

func (suite *HandlerTestSuite) TestSignup_Success() {
	w := suite.post(suite.signupReq, "application/json")

	var res struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	assert.NoError(suite.T(), json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "application/json", w.Header().Get("Content-Type"))
	assert.True(suite.T(), res.Success)
	assert.Equal(suite.T(), map[string]interface{}{
		"id":    "valid_id",
		"name":  "valid_name",
		"email": "valid_email@mail.com",
	}, res.Data)
	assert.Equal(suite.T(), "any_password", suite.svc.req.Password)
	assert.Equal(suite.T(), float64(1), testutil.ToFloat64(suite.metrics.SignupRequests.WithLabelValues(outcomeCreated)))
}

func (suite *HandlerTestSuite) TestSignup_NeverExposesPasswordHash() {
	w := suite.post(suite.signupReq, "application/json; charset=utf-8")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "password")
	assert.NotContains(suite.T(), w.Body.String(), "valid_password")
}

func (suite *HandlerTestSuite) TestSignup_Errors() {
	tests := []struct {
		name, req, contentType string
		wantCode               int
		wantErr, wantOutcome   string
	}{
		{"missing email", `{"name":"n","password":"p","passwordConfirmation":"p"}`, "application/json",
			http.StatusBadRequest, "Missing param: email", outcomeMissingParam},
		{"mismatched confirmation", `{"name":"n","email":"a@b.com","password":"a","passwordConfirmation":"b"}`, "application/json",
			http.StatusBadRequest, "Invalid param: passwordConfirmation", outcomeInvalidParam},
		{"invalid body", `invalid request`, "application/json",
			http.StatusBadRequest, "Invalid request body", outcomeBadRequest},
		{"non string value", `{"name": 42}`, "application/json",
			http.StatusBadRequest, "Invalid request body", outcomeBadRequest},
		{"not json", suite.signupReq, "text/plain",
			http.StatusUnsupportedMediaType, "Content-Type must be application/json", outcomeUnsupportedMediaType},
		{"no content type", suite.signupReq, "",
			http.StatusUnsupportedMediaType, "Content-Type must be application/json", outcomeUnsupportedMediaType},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			w := suite.post(tt.req, tt.contentType)

			var res errorResponse
			_ = json.NewDecoder(w.Body).Decode(&res)
			assert.Equal(suite.T(), tt.wantCode, w.Code)
			assert.False(suite.T(), res.Success)
			assert.Equal(suite.T(), tt.wantErr, res.Error)
			assert.Equal(suite.T(), "application/json", w.Header().Get("Content-Type"))
			assert.Equal(suite.T(), float64(1), testutil.ToFloat64(suite.metrics.SignupRequests.WithLabelValues(tt.wantOutcome)))
		})
	}
}

func (suite *HandlerTestSuite) TestSignup_ServerErrorHidesDetail() {
	suite.svc.err = ErrPersistence

	w := suite.post(suite.signupReq, "application/json")

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(suite.T(), `{"success": false, "error": "Internal server error"}`, w.Body.String())
	assert.Equal(suite.T(), float64(1), testutil.ToFloat64(suite.metrics.SignupRequests.WithLabelValues(outcomeServerError)))
}

func (suite *HandlerTestSuite) TestHealth() {
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"status": "healthy"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestMetricsEndpoint() {
	suite.post(suite.signupReq, "application/json")

	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `signup_requests_total{outcome="created"} 1`)
}

func (suite *HandlerTestSuite) TestSignup_WrongMethod() {
	r := httptest.NewRequest(http.MethodGet, "/signup", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)

	assert.Equal(suite.T(), http.StatusMethodNotAllowed, w.Code)
	assert.False(suite.T(), suite.svc.called)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
