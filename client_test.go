package authflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MrEthical07/authflow/gateway"
)

func TestRegisterSuccess(t *testing.T) {
	fake := &fakeGateway{
		registerResp: &gateway.RegisterResponse{
			UserID:  "u-77",
			Message: "check your inbox",
		},
	}
	client, _ := newTestClient(t, fake)

	result, err := client.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw",
		Phone:    "+15551234567",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.UserID != "u-77" || result.Message != "check your inbox" {
		t.Fatalf("result = %+v", result)
	}

	if got := fake.registerReqs[0]; got.Username != "alice" || got.Email != "alice@example.com" || got.Phone != "+15551234567" {
		t.Fatalf("request = %+v", got)
	}

	// Registration never authenticates by itself.
	if client.IsAuthenticated(context.Background()) {
		t.Fatal("register must not store a session token")
	}
}

func TestRegisterFailure(t *testing.T) {
	fake := &fakeGateway{
		registerErr: httpError(409, "username taken"),
	}
	client, _ := newTestClient(t, fake)

	_, err := client.Register(context.Background(), RegisterInput{Username: "alice"})
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("err = %v, want ErrRegistrationFailed", err)
	}
	if !strings.Contains(err.Error(), "username taken") {
		t.Fatalf("err text %q must carry the server message", err.Error())
	}

	snap := client.MetricsSnapshot()
	if snap.Counters[MetricRegisterFailure] != 1 || snap.Counters[MetricRegisterSuccess] != 0 {
		t.Fatalf("register counters = %v", snap.Counters)
	}
}
