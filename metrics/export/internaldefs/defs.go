package internaldefs

import (
	authflow "github.com/MrEthical07/authflow"
)

// CounterDef defines a public type used by authflow APIs.
type CounterDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authflow APIs.
type HistogramDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication flow client.
var CounterDefs = []CounterDef{
	{ID: authflow.MetricLoginSuccess, Name: "authflow_login_success_total", Help: "Login attempts ending authenticated."},
	{ID: authflow.MetricLoginFailure, Name: "authflow_login_failure_total", Help: "Login attempts rejected or failed in transport."},
	{ID: authflow.MetricLoginMFARequired, Name: "authflow_login_mfa_required_total", Help: "Login attempts answered with an MFA challenge."},
	{ID: authflow.MetricOTPRequested, Name: "authflow_otp_requested_total", Help: "One-time code deliveries requested."},
	{ID: authflow.MetricOTPRequestFailed, Name: "authflow_otp_request_failed_total", Help: "One-time code delivery refusals."},
	{ID: authflow.MetricOTPVerifySuccess, Name: "authflow_otp_verify_success_total", Help: "Successful one-time code verifications."},
	{ID: authflow.MetricOTPVerifyFailure, Name: "authflow_otp_verify_failure_total", Help: "Rejected one-time code verifications."},
	{ID: authflow.MetricDeviceTrustGranted, Name: "authflow_device_trust_granted_total", Help: "Device-trust identifiers issued and persisted."},
	{ID: authflow.MetricDeviceTrustAnomaly, Name: "authflow_device_trust_anomaly_total", Help: "Device-trust anomalies (grant refused or persistence failed)."},
	{ID: authflow.MetricMFAEnrolled, Name: "authflow_mfa_enrolled_total", Help: "MFA method enrollments."},
	{ID: authflow.MetricMFADisabled, Name: "authflow_mfa_disabled_total", Help: "MFA method disablements."},
	{ID: authflow.MetricMFAOperationFailed, Name: "authflow_mfa_operation_failed_total", Help: "Failed MFA management operations."},
	{ID: authflow.MetricDevicesRevoked, Name: "authflow_devices_revoked_total", Help: "Revoke-all-devices operations completed."},
	{ID: authflow.MetricResetRequested, Name: "authflow_reset_requested_total", Help: "Password recovery codes requested."},
	{ID: authflow.MetricResetCodeVerified, Name: "authflow_reset_code_verified_total", Help: "Password recovery codes verified."},
	{ID: authflow.MetricResetConfirmSuccess, Name: "authflow_reset_confirm_success_total", Help: "Completed password resets."},
	{ID: authflow.MetricResetConfirmFailure, Name: "authflow_reset_confirm_failure_total", Help: "Failed password recovery steps."},
	{ID: authflow.MetricLogout, Name: "authflow_logout_total", Help: "Logout operations."},
	{ID: authflow.MetricRegisterSuccess, Name: "authflow_register_success_total", Help: "Successful registrations."},
	{ID: authflow.MetricRegisterFailure, Name: "authflow_register_failure_total", Help: "Failed registrations."},
	{ID: authflow.MetricTransportError, Name: "authflow_transport_error_total", Help: "Unclassified transport failures."},
}

// HistogramDefs is an exported constant or variable used by the authentication flow client.
var HistogramDefs = []HistogramDef{
	{ID: authflow.MetricGatewayLatency, Name: "authflow_gateway_latency_seconds", Help: "Gateway round-trip latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication flow client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication flow client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
