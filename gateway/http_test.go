package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newTestServer(t *testing.T, status int, response string) (*HTTP, *[]recordedRequest, func(...HTTPOption)) {
	t.Helper()

	var recorded []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded = append(recorded, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			header: r.Header.Clone(),
			body:   body,
		})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	gw, err := NewHTTP(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTP failed: %v", err)
	}

	rebuild := func(opts ...HTTPOption) {
		rebuilt, err := NewHTTP(srv.URL, opts...)
		if err != nil {
			t.Fatalf("NewHTTP failed: %v", err)
		}
		*gw = *rebuilt
	}
	return gw, &recorded, rebuild
}

func TestNewHTTPValidatesBaseURL(t *testing.T) {
	if _, err := NewHTTP(""); err == nil {
		t.Fatal("empty base URL must be refused")
	}
	if _, err := NewHTTP("///"); err == nil {
		t.Fatal("slash-only base URL must be refused")
	}

	gw, err := NewHTTP("http://api.example.com/")
	if err != nil {
		t.Fatalf("NewHTTP failed: %v", err)
	}
	if gw.baseURL != "http://api.example.com" {
		t.Fatalf("base URL = %q, trailing slash must be trimmed", gw.baseURL)
	}
}

func TestLoginRequestShape(t *testing.T) {
	gw, recorded, _ := newTestServer(t, 200, `{"requiresMFA":true,"userId":"u-1","mfaMethods":["email"]}`)

	resp, err := gw.Login(context.Background(), LoginRequest{
		Username:    "alice",
		Password:    "pw",
		DeviceTrust: "trust-1",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !resp.RequiresMFA || resp.UserID != "u-1" || len(resp.MFAMethods) != 1 {
		t.Fatalf("response = %+v", resp)
	}

	req := (*recorded)[0]
	if req.method != http.MethodPost || req.path != "/auth/login" {
		t.Fatalf("request = %s %s, want POST /auth/login", req.method, req.path)
	}
	if ct := req.header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var payload map[string]any
	if err := json.Unmarshal(req.body, &payload); err != nil {
		t.Fatalf("body decode failed: %v", err)
	}
	if payload["username"] != "alice" || payload["password"] != "pw" || payload["deviceTrustId"] != "trust-1" {
		t.Fatalf("payload = %v", payload)
	}
}

func TestLoginOmitsEmptyDeviceTrust(t *testing.T) {
	gw, recorded, _ := newTestServer(t, 200, `{"token":"t"}`)

	if _, err := gw.Login(context.Background(), LoginRequest{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal((*recorded)[0].body, &payload); err != nil {
		t.Fatalf("body decode failed: %v", err)
	}
	if _, present := payload["deviceTrustId"]; present {
		t.Fatal("empty device trust must be omitted from the wire payload")
	}
}

func TestEndpointPaths(t *testing.T) {
	gw, recorded, _ := newTestServer(t, 200, `{}`)
	ctx := context.Background()

	calls := []struct {
		invoke func() error
		method string
		path   string
	}{
		{func() error { _, err := gw.Register(ctx, RegisterRequest{}); return err }, "POST", "/auth/register"},
		{func() error { _, err := gw.RequestOTP(ctx, RequestOTPRequest{}); return err }, "POST", "/auth/request-otp"},
		{func() error { _, err := gw.VerifyOTP(ctx, VerifyOTPRequest{}); return err }, "POST", "/auth/verify-otp"},
		{func() error { _, err := gw.EnableMFA(ctx, "sms", EnableMFARequest{}); return err }, "POST", "/auth/enable-mfa-sms"},
		{func() error { _, err := gw.DisableMFAMethod(ctx, DisableMFARequest{}); return err }, "POST", "/auth/disable-mfa-method"},
		{func() error { _, err := gw.RevokeAllDevices(ctx, RevokeAllRequest{}); return err }, "POST", "/auth/revoke-all-devices"},
		{func() error { _, err := gw.ForgotPassword(ctx, ForgotPasswordRequest{}); return err }, "POST", "/auth/forgot-password"},
		{func() error { _, err := gw.VerifyResetCode(ctx, VerifyResetCodeRequest{}); return err }, "POST", "/auth/verify-reset-code"},
		{func() error { _, err := gw.ResetPassword(ctx, ResetPasswordRequest{}); return err }, "POST", "/auth/reset-password"},
	}

	for _, call := range calls {
		if err := call.invoke(); err != nil {
			t.Fatalf("%s failed: %v", call.path, err)
		}
	}

	for i, call := range calls {
		got := (*recorded)[i]
		if got.method != call.method || got.path != call.path {
			t.Errorf("call %d = %s %s, want %s %s", i, got.method, got.path, call.method, call.path)
		}
	}
}

func TestGETEndpoints(t *testing.T) {
	gw, recorded, _ := newTestServer(t, 200, `["email","app"]`)

	methods, err := gw.MFAMethods(context.Background(), "u 1")
	if err != nil {
		t.Fatalf("MFAMethods failed: %v", err)
	}
	if len(methods) != 2 || methods[0] != "email" {
		t.Fatalf("methods = %v", methods)
	}

	req := (*recorded)[0]
	if req.method != http.MethodGet {
		t.Fatalf("method = %s, want GET", req.method)
	}
	// The user id is path-escaped.
	if req.path != "/auth/mfa-methods/u 1" {
		t.Fatalf("path = %q", req.path)
	}
	if len(req.body) != 0 {
		t.Fatal("GET must carry no body")
	}
}

func TestTrustedDevicesDecodes(t *testing.T) {
	gw, recorded, _ := newTestServer(t, 200,
		`[{"deviceId":"d-1","name":"laptop","lastUsedAt":"2026-08-01T10:00:00Z"}]`)

	devices, err := gw.TrustedDevices(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("TrustedDevices failed: %v", err)
	}
	if len(devices) != 1 || devices[0].DeviceID != "d-1" || devices[0].Name != "laptop" {
		t.Fatalf("devices = %+v", devices)
	}
	if (*recorded)[0].path != "/auth/trusted-devices/u-1" {
		t.Fatalf("path = %q", (*recorded)[0].path)
	}
}

func TestRequestIDStamped(t *testing.T) {
	gw, recorded, _ := newTestServer(t, 200, `{}`)

	if _, err := gw.Login(context.Background(), LoginRequest{}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if (*recorded)[0].header.Get("X-Request-ID") == "" {
		t.Fatal("a request id must be generated when the context has none")
	}

	ctx := WithRequestID(context.Background(), "req-7")
	if _, err := gw.Login(ctx, LoginRequest{}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got := (*recorded)[1].header.Get("X-Request-ID"); got != "req-7" {
		t.Fatalf("request id = %q, want req-7", got)
	}
}

func TestBearerTokenInjection(t *testing.T) {
	gw, recorded, rebuild := newTestServer(t, 200, `{}`)

	if _, err := gw.RevokeAllDevices(context.Background(), RevokeAllRequest{}); err != nil {
		t.Fatalf("RevokeAllDevices failed: %v", err)
	}
	if (*recorded)[0].header.Get("Authorization") != "" {
		t.Fatal("no token source must mean no Authorization header")
	}

	token := ""
	rebuild(WithTokenSource(func(context.Context) (string, bool) {
		return token, token != ""
	}))

	if _, err := gw.RevokeAllDevices(context.Background(), RevokeAllRequest{}); err != nil {
		t.Fatalf("RevokeAllDevices failed: %v", err)
	}
	if (*recorded)[1].header.Get("Authorization") != "" {
		t.Fatal("absent token must mean no Authorization header")
	}

	token = "session-token"
	if _, err := gw.RevokeAllDevices(context.Background(), RevokeAllRequest{}); err != nil {
		t.Fatalf("RevokeAllDevices failed: %v", err)
	}
	if got := (*recorded)[2].header.Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("authorization = %q, want Bearer session-token", got)
	}
}

func TestNon2xxBecomesError(t *testing.T) {
	gw, _, _ := newTestServer(t, 401, `{"message":"bad credentials"}`)

	_, err := gw.Login(context.Background(), LoginRequest{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.StatusCode != 401 || apiErr.Endpoint != "/auth/login" {
		t.Fatalf("error = %+v", apiErr)
	}
	if apiErr.Message != "bad credentials" {
		t.Fatalf("message = %q, want the server text verbatim", apiErr.Message)
	}
	if apiErr.RequestID == "" {
		t.Fatal("error must carry the request id for correlation")
	}
}

func TestErrorBodyShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message_field", `{"message":"nope"}`, "nope"},
		{"error_field", `{"error":"nope"}`, "nope"},
		{"message_wins", `{"message":"first","error":"second"}`, "first"},
		{"empty_body", ``, ""},
		{"non_json", `<html>502</html>`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw, _, _ := newTestServer(t, 502, tc.body)

			_, err := gw.Login(context.Background(), LoginRequest{})
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if apiErr.Message != tc.want {
				t.Fatalf("message = %q, want %q", apiErr.Message, tc.want)
			}
		})
	}
}

func TestEmpty2xxBodyTolerated(t *testing.T) {
	gw, _, _ := newTestServer(t, 204, ``)

	resp, err := gw.ForgotPassword(context.Background(), ForgotPasswordRequest{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("empty 2xx body must not fail: %v", err)
	}
	if resp == nil {
		t.Fatal("expected a zero-value response")
	}
}

func TestConnectionFailureIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	gw, err := NewHTTP(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTP failed: %v", err)
	}
	srv.Close()

	_, err = gw.Login(context.Background(), LoginRequest{})
	if err == nil {
		t.Fatal("expected connection failure")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatal("connectivity failures must not masquerade as server responses")
	}
}

func TestRequestIDContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("bare context request id = %q, want empty", got)
	}

	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("request id = %q, want req-1", got)
	}
}
