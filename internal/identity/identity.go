// Package identity produces a fresh, plausible mobile-client identity for
// every outbound call. The upstream keys its anti-automation checks on
// device/session continuity, so identities are regenerated for every call
// and every retry attempt, never reused.
package identity

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

var okhttpUserAgents = []string{
	"okhttp/4.9.3",
	"okhttp/4.10.0",
	"okhttp/4.11.0",
	"okhttp/4.12.0",
	"okhttp/5.0.0-alpha.11",
}

var deviceModels = []string{
	"SM-G991B",
	"SM-A546E",
	"SM-M336B",
	"Redmi Note 12 Pro",
	"Redmi Note 11",
	"22101316UP",
	"CPH2381",
	"CPH2467",
	"RMX3686",
	"V2134",
	"Pixel 7",
	"Pixel 6a",
	"M2101K6I",
}

var deviceBrands = []string{
	"samsung",
	"xiaomi",
	"Redmi",
	"OnePlus",
	"OPPO",
	"realme",
	"vivo",
	"google",
	"motorola",
}

// compatibleComponents mirrors the feature-flag list the mobile client
// advertises with every request.
const compatibleComponents = "CONVENIENCE_FEE,SCHEDULED_DELIVERY,NO_EXCHANGE_NO_RETURN,AUTOSUGGESTION_PAGE,PIP_V1,NEW_FEE_STRUCTURE,SUPER_SAVER,PROMO_CASH"

// Identity is one randomized set of client-facing identifiers.
type Identity struct {
	DeviceID    string // 16 hex chars
	SessionID   string // 32 hex chars
	RequestID   string // 32 hex chars
	UserAgent   string
	DeviceModel string
	DeviceBrand string
}

// Fresh generates a new identity. Pure function of the process's random
// source; no shared state, safe under concurrency.
func Fresh() Identity {
	return Identity{
		DeviceID:    hexID(16),
		SessionID:   hexID(32),
		RequestID:   hexID(32),
		UserAgent:   okhttpUserAgents[rand.Intn(len(okhttpUserAgents))],
		DeviceModel: deviceModels[rand.Intn(len(deviceModels))],
		DeviceBrand: deviceBrands[rand.Intn(len(deviceBrands))],
	}
}

// hexID returns n hex characters of UUID-derived randomness.
func hexID(n int) string {
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strings.ReplaceAll(uuid.New().String(), "-", ""))
	}
	return b.String()[:n]
}

// Headers builds the full request header set for one call. Store headers
// are added only when storeID is non-empty. The behavioural headers
// (order counts, pass-user flag) are randomized to avoid a static
// fingerprint across calls.
func (id Identity) Headers(appVersion, host, storeID string) map[string]string {
	headers := map[string]string{
		"accept":                           "application/json",
		"access-control-allow-credentials": "true",
		"x-requested-with":                 "XMLHttpRequest",
		"sessionid":                        id.SessionID,
		"session_id":                       id.SessionID,
		"appversion":                       appVersion,
		"app_version":                      appVersion,
		"deviceuid":                        id.DeviceID,
		"device_uid":                       id.DeviceID,
		"platform":                         "android",
		"systemversion":                    "14",
		"system_version":                   "14",
		"source":                           "PLAY_STORE",
		"device_model":                     id.DeviceModel,
		"device_brand":                     id.DeviceBrand,
		"compatible_components":            compatibleComponents,
		"isinternaluser":                   "false",
		"is_internal_user":                 "false",
		"tobaccoconsentgiven":              "false",
		"tobacco_consent_given":            "false",
		"requestid":                        id.RequestID,
		"request_id":                       id.RequestID,
		"bundleversion":                    "v7",
		"bundle_version":                   "v7",
		"is_new_font":                      "true",
		"accept-encoding":                  "gzip",
		"user_gppo":                        fmt.Sprintf("%d", 1000+rand.Intn(4001)),
		"user_is_pass_user":                randBool(),
		"user_days_since_last_bought":      fmt.Sprintf("%d", 1+rand.Intn(30)),
		"user_order_number":                fmt.Sprintf("%d", 1+rand.Intn(50)),
		"user_variant_hash":                fmt.Sprintf("%d", 10+rand.Intn(90)),
		"connection":                       "Keep-Alive",
		"user-agent":                       id.UserAgent,
		"host":                             host,
	}

	if storeID != "" {
		headers["storeid"] = storeID
		headers["store_id"] = storeID
		headers["lastselectedstoreid"] = storeID
		headers["last_selected_store_id"] = storeID
	}

	return headers
}

func randBool() string {
	if rand.Intn(2) == 0 {
		return "true"
	}
	return "false"
}
