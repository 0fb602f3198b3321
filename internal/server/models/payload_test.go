package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodePayload decodes a raw body the way the http surface does, with
// numbers preserved as json.Number
func decodePayload(t *testing.T, body string) Payload {
	t.Helper()
	payload := Payload{}
	decoder := json.NewDecoder(bytes.NewReader([]byte(body)))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&payload))
	return payload
}

func TestPayloadGetStringDistinguishesAbsentAndNull(t *testing.T) {
	payload := decodePayload(t, `{"hostname": null, "name": "edge-fw-01"}`)

	value, isSet, err := payload.GetString("name")
	require.NoError(t, err)
	assert.True(t, isSet)
	require.NotNil(t, value)
	assert.Equal(t, "edge-fw-01", *value)

	// null means clear
	value, isSet, err = payload.GetString("hostname")
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.Nil(t, value)

	// absent means leave unchanged
	value, isSet, err = payload.GetString("ip_address")
	require.NoError(t, err)
	assert.False(t, isSet)
	assert.Nil(t, value)

	_, _, err = payload.GetInt64("name")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrorInvalidInput)
}

func TestPayloadGetClearableString(t *testing.T) {
	value, isSet, err := decodePayload(t, `{"description": "5 failed logins"}`).GetClearableString("description")
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.Equal(t, "5 failed logins", value)

	// the backing columns cannot hold NULL, so null clears to empty
	value, isSet, err = decodePayload(t, `{"description": null}`).GetClearableString("description")
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.Equal(t, "", value)

	_, isSet, err = decodePayload(t, `{}`).GetClearableString("description")
	require.NoError(t, err)
	assert.False(t, isSet)

	_, _, err = decodePayload(t, `{"description": 4}`).GetClearableString("description")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrorInvalidInput)
}

func TestPayloadGetInt64(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expected      *int64
		expectedIsSet bool
		isValid       bool
	}{
		{name: "integer", body: `{"asset_id": 3}`, expected: ptrInt64(3), expectedIsSet: true, isValid: true},
		{name: "null clears", body: `{"asset_id": null}`, expectedIsSet: true, isValid: true},
		{name: "absent", body: `{}`, isValid: true},
		{name: "fractional number", body: `{"asset_id": 3.5}`, expectedIsSet: true},
		{name: "string", body: `{"asset_id": "3"}`, expectedIsSet: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, isSet, err := decodePayload(t, tt.body).GetInt64("asset_id")
			assert.Equal(t, tt.expectedIsSet, isSet)
			if !tt.isValid {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrorInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestPayloadGetInt64Slice(t *testing.T) {
	values, isSet, err := decodePayload(t, `{"role_ids": [1, 2, 3]}`).GetInt64Slice("role_ids")
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.Equal(t, []int64{1, 2, 3}, values)

	// a null list empties the membership
	values, isSet, err = decodePayload(t, `{"role_ids": null}`).GetInt64Slice("role_ids")
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.Equal(t, []int64{}, values)

	_, isSet, err = decodePayload(t, `{}`).GetInt64Slice("role_ids")
	require.NoError(t, err)
	assert.False(t, isSet)

	_, _, err = decodePayload(t, `{"role_ids": [1, "2"]}`).GetInt64Slice("role_ids")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrorInvalidInput)

	_, _, err = decodePayload(t, `{"role_ids": [1.5]}`).GetInt64Slice("role_ids")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrorInvalidInput)
}

func TestPayloadGetSeverity(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected gateway.Severity
		isValid  bool
	}{
		{name: "canonical label", body: `{"severity": "high"}`, expected: gateway.SeverityHigh, isValid: true},
		{name: "legacy numeric string", body: `{"severity": "5"}`, expected: gateway.SeverityHigh, isValid: true},
		{name: "legacy numeric", body: `{"severity": 3}`, expected: gateway.SeverityMedium, isValid: true},
		{name: "unknown label", body: `{"severity": "severe"}`},
		{name: "out of range numeric", body: `{"severity": 9}`},
		{name: "boolean", body: `{"severity": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, isSet, err := decodePayload(t, tt.body).GetSeverity("severity")
			assert.True(t, isSet)
			if !tt.isValid {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrorInvalidInput)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, severity)
			assert.Equal(t, tt.expected, *severity)
		})
	}
}

func TestPayloadGetRaw(t *testing.T) {
	raw, isSet, err := decodePayload(t, `{"raw_payload": {"src": "10.0.0.4", "attempts": 12}}`).GetRaw("raw_payload")
	require.NoError(t, err)
	assert.True(t, isSet)
	assert.JSONEq(t, `{"src": "10.0.0.4", "attempts": 12}`, string(raw))
}

func TestRequireString(t *testing.T) {
	payload := decodePayload(t, `{"name": "edge-fw-01", "environment": ""}`)

	value, err := requireString(payload, "name")
	require.NoError(t, err)
	assert.Equal(t, "edge-fw-01", value)

	for _, key := range []string{"environment", "asset_type"} {
		_, err := requireString(payload, key)
		require.Error(t, err, key)
		assert.True(t, errors.Is(err, ErrorInvalidInput), key)
	}
}

func ptrInt64(v int64) *int64 {
	return &v
}
