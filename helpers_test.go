package authflow

import (
	"context"
	"testing"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
)

// fakeGateway scripts one response (or error) per endpoint and records the
// requests the flows actually sent.
type fakeGateway struct {
	registerResp *gateway.RegisterResponse
	registerErr  error
	registerReqs []gateway.RegisterRequest

	loginResp *gateway.LoginResponse
	loginErr  error
	loginReqs []gateway.LoginRequest

	requestOTPErr  error
	requestOTPReqs []gateway.RequestOTPRequest

	verifyOTPResp *gateway.VerifyOTPResponse
	verifyOTPErr  error
	verifyOTPReqs []gateway.VerifyOTPRequest

	enableErr   error
	enableCalls []string
	enableReqs  []gateway.EnableMFARequest

	methods    []string
	methodsErr error

	disableErr  error
	disableReqs []gateway.DisableMFARequest

	devices    []gateway.TrustedDevice
	devicesErr error

	revokeErr   error
	revokeCalls int

	forgotErr  error
	forgotReqs []gateway.ForgotPasswordRequest

	verifyResetResp *gateway.VerifyResetCodeResponse
	verifyResetErr  error
	verifyResetReqs []gateway.VerifyResetCodeRequest

	resetErr  error
	resetReqs []gateway.ResetPasswordRequest
}

func (f *fakeGateway) Register(_ context.Context, req gateway.RegisterRequest) (*gateway.RegisterResponse, error) {
	f.registerReqs = append(f.registerReqs, req)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerResp == nil {
		return &gateway.RegisterResponse{}, nil
	}
	return f.registerResp, nil
}

func (f *fakeGateway) Login(_ context.Context, req gateway.LoginRequest) (*gateway.LoginResponse, error) {
	f.loginReqs = append(f.loginReqs, req)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginResp == nil {
		return &gateway.LoginResponse{}, nil
	}
	return f.loginResp, nil
}

func (f *fakeGateway) RequestOTP(_ context.Context, req gateway.RequestOTPRequest) (*gateway.StatusResponse, error) {
	f.requestOTPReqs = append(f.requestOTPReqs, req)
	if f.requestOTPErr != nil {
		return nil, f.requestOTPErr
	}
	return &gateway.StatusResponse{Status: "sent"}, nil
}

func (f *fakeGateway) VerifyOTP(_ context.Context, req gateway.VerifyOTPRequest) (*gateway.VerifyOTPResponse, error) {
	f.verifyOTPReqs = append(f.verifyOTPReqs, req)
	if f.verifyOTPErr != nil {
		return nil, f.verifyOTPErr
	}
	if f.verifyOTPResp == nil {
		return &gateway.VerifyOTPResponse{Token: "test-token"}, nil
	}
	return f.verifyOTPResp, nil
}

func (f *fakeGateway) EnableMFA(_ context.Context, method string, req gateway.EnableMFARequest) (*gateway.StatusResponse, error) {
	f.enableCalls = append(f.enableCalls, method)
	f.enableReqs = append(f.enableReqs, req)
	if f.enableErr != nil {
		return nil, f.enableErr
	}
	return &gateway.StatusResponse{Status: "enabled"}, nil
}

func (f *fakeGateway) MFAMethods(context.Context, string) ([]string, error) {
	if f.methodsErr != nil {
		return nil, f.methodsErr
	}
	return f.methods, nil
}

func (f *fakeGateway) DisableMFAMethod(_ context.Context, req gateway.DisableMFARequest) (*gateway.StatusResponse, error) {
	f.disableReqs = append(f.disableReqs, req)
	if f.disableErr != nil {
		return nil, f.disableErr
	}
	return &gateway.StatusResponse{Status: "disabled"}, nil
}

func (f *fakeGateway) TrustedDevices(context.Context, string) ([]gateway.TrustedDevice, error) {
	if f.devicesErr != nil {
		return nil, f.devicesErr
	}
	return f.devices, nil
}

func (f *fakeGateway) RevokeAllDevices(context.Context, gateway.RevokeAllRequest) (*gateway.StatusResponse, error) {
	f.revokeCalls++
	if f.revokeErr != nil {
		return nil, f.revokeErr
	}
	return &gateway.StatusResponse{Status: "revoked"}, nil
}

func (f *fakeGateway) ForgotPassword(_ context.Context, req gateway.ForgotPasswordRequest) (*gateway.StatusResponse, error) {
	f.forgotReqs = append(f.forgotReqs, req)
	if f.forgotErr != nil {
		return nil, f.forgotErr
	}
	return &gateway.StatusResponse{Status: "sent"}, nil
}

func (f *fakeGateway) VerifyResetCode(_ context.Context, req gateway.VerifyResetCodeRequest) (*gateway.VerifyResetCodeResponse, error) {
	f.verifyResetReqs = append(f.verifyResetReqs, req)
	if f.verifyResetErr != nil {
		return nil, f.verifyResetErr
	}
	if f.verifyResetResp == nil {
		return &gateway.VerifyResetCodeResponse{}, nil
	}
	return f.verifyResetResp, nil
}

func (f *fakeGateway) ResetPassword(_ context.Context, req gateway.ResetPasswordRequest) (*gateway.StatusResponse, error) {
	f.resetReqs = append(f.resetReqs, req)
	if f.resetErr != nil {
		return nil, f.resetErr
	}
	return &gateway.StatusResponse{Status: "reset"}, nil
}

func httpError(status int, message string) *gateway.Error {
	return &gateway.Error{
		Endpoint:   "/auth/test",
		StatusCode: status,
		Message:    message,
	}
}

func newTestClient(t *testing.T, fake *fakeGateway) (*Client, *store.Memory) {
	t.Helper()

	creds := store.NewMemory()
	client, err := New().
		WithGateway(fake).
		WithStore(creds).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)

	return client, creds
}

func mustGet(t *testing.T, creds *store.Memory, kind store.Kind) (string, bool) {
	t.Helper()

	value, ok, err := creds.Get(context.Background(), kind)
	if err != nil {
		t.Fatalf("store get %s failed: %v", kind, err)
	}
	return value, ok
}

func mustSet(t *testing.T, creds *store.Memory, kind store.Kind, value string) {
	t.Helper()

	if err := creds.Set(context.Background(), kind, value); err != nil {
		t.Fatalf("store set %s failed: %v", kind, err)
	}
}
