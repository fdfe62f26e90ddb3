package authflow

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
)

func TestTrustedDevicesPassthrough(t *testing.T) {
	fake := &fakeGateway{
		devices: []gateway.TrustedDevice{
			{DeviceID: "d-1", Name: "laptop"},
			{DeviceID: "d-2", Name: "phone"},
		},
	}
	client, _ := newTestClient(t, fake)

	devices, err := client.TrustedDevices(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("TrustedDevices failed: %v", err)
	}
	if len(devices) != 2 || devices[0].DeviceID != "d-1" || devices[1].DeviceID != "d-2" {
		t.Fatalf("devices = %+v", devices)
	}
}

func TestTrustedDevicesFailure(t *testing.T) {
	fake := &fakeGateway{
		devicesErr: httpError(500, "registry unavailable"),
	}
	client, _ := newTestClient(t, fake)

	_, err := client.TrustedDevices(context.Background(), "u-1")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}

func TestRevokeAllClearsLocalTrust(t *testing.T) {
	fake := &fakeGateway{}
	client, creds := newTestClient(t, fake)
	mustSet(t, creds, store.KindSession, "live-session")
	mustSet(t, creds, store.KindDeviceTrust, "trust-9")

	if err := client.RevokeAllDevices(context.Background(), "u-1"); err != nil {
		t.Fatalf("RevokeAllDevices failed: %v", err)
	}
	if fake.revokeCalls != 1 {
		t.Fatalf("revoke calls = %d, want 1", fake.revokeCalls)
	}
	if _, ok := mustGet(t, creds, store.KindDeviceTrust); ok {
		t.Fatal("device-trust slot must be purged after revocation")
	}
	if token, ok := mustGet(t, creds, store.KindSession); !ok || token != "live-session" {
		t.Fatalf("session slot = %q/%v, must survive revocation", token, ok)
	}
}

func TestRevokeAllIdempotentWithoutLocalTrust(t *testing.T) {
	fake := &fakeGateway{}
	client, creds := newTestClient(t, fake)

	if err := client.RevokeAllDevices(context.Background(), "u-1"); err != nil {
		t.Fatalf("revocation with empty slot failed: %v", err)
	}
	if err := client.RevokeAllDevices(context.Background(), "u-1"); err != nil {
		t.Fatalf("repeated revocation failed: %v", err)
	}
	if fake.revokeCalls != 2 {
		t.Fatalf("revoke calls = %d, want 2", fake.revokeCalls)
	}
	if _, ok := mustGet(t, creds, store.KindDeviceTrust); ok {
		t.Fatal("device-trust slot must stay empty")
	}
}

func TestRevokeAllServerFailureKeepsLocalTrust(t *testing.T) {
	fake := &fakeGateway{
		revokeErr: httpError(500, "revocation failed"),
	}
	client, creds := newTestClient(t, fake)
	mustSet(t, creds, store.KindDeviceTrust, "trust-9")

	err := client.RevokeAllDevices(context.Background(), "u-1")
	if !errors.Is(err, ErrDeviceRevokeFailed) {
		t.Fatalf("err = %v, want ErrDeviceRevokeFailed", err)
	}
	// The server still honors the grant, so the local identifier stays.
	if trust, ok := mustGet(t, creds, store.KindDeviceTrust); !ok || trust != "trust-9" {
		t.Fatalf("device-trust slot = %q/%v, must be kept on server failure", trust, ok)
	}
}
