package identity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]+$`)

func TestFresh_IDShapes(t *testing.T) {
	id := Fresh()

	assert.Len(t, id.DeviceID, 16)
	assert.Len(t, id.SessionID, 32)
	assert.Len(t, id.RequestID, 32)

	assert.Regexp(t, hexRe, id.DeviceID)
	assert.Regexp(t, hexRe, id.SessionID)
	assert.Regexp(t, hexRe, id.RequestID)
}

func TestFresh_DrawsFromFixedPools(t *testing.T) {
	id := Fresh()

	assert.Contains(t, okhttpUserAgents, id.UserAgent)
	assert.Contains(t, deviceModels, id.DeviceModel)
	assert.Contains(t, deviceBrands, id.DeviceBrand)
}

func TestFresh_IdentitiesAreIndependent(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := Fresh()
		require.False(t, seen[id.SessionID], "session id reused")
		seen[id.SessionID] = true
	}
}

func TestHeaders_CoreFields(t *testing.T) {
	id := Fresh()
	headers := id.Headers("24.7.1", "api.zepto.co.in", "")

	assert.Equal(t, id.SessionID, headers["sessionid"])
	assert.Equal(t, id.SessionID, headers["session_id"])
	assert.Equal(t, id.DeviceID, headers["deviceuid"])
	assert.Equal(t, id.RequestID, headers["request_id"])
	assert.Equal(t, "24.7.1", headers["appversion"])
	assert.Equal(t, "android", headers["platform"])
	assert.Equal(t, "api.zepto.co.in", headers["host"])

	_, hasStore := headers["storeid"]
	assert.False(t, hasStore, "store headers must be absent without a store id")
}

func TestHeaders_StoreVariants(t *testing.T) {
	headers := Fresh().Headers("24.7.1", "api.zepto.co.in", "store-42")

	for _, key := range []string{"storeid", "store_id", "lastselectedstoreid", "last_selected_store_id"} {
		assert.Equal(t, "store-42", headers[key])
	}
}
