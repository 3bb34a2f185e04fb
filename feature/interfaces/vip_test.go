package interfaces

import (
	"os"
	"testing"

	"opnsense-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const carpVIP = "0d6c1f7e-3a2b-4c5d-8e9f-a1b2c3d4e5f6"

func loadVIPs(t *testing.T) reconcile.Collection {
	t.Helper()
	data, err := os.ReadFile("testdata/vips.json")
	require.NoError(t, err)

	body, err := reconcile.ParseObject(data)
	require.NoError(t, err)

	raw, _ := body.Lookup(NewVIP().Endpoint().KeyPath)
	coll, err := reconcile.Ingest(raw)
	require.NoError(t, err)
	return coll
}

func TestVIP_Normalize(t *testing.T) {
	coll := loadVIPs(t)
	require.Len(t, coll, 2)

	got := NewVIP().Normalize(coll[0])
	assert.Equal(t, reconcile.Record{
		"uuid":             carpVIP,
		"address":          "192.168.1.1",
		"mode":             "carp",
		"cidr":             24,
		"expand":           true,
		"bind":             true,
		"gateway":          "",
		"password":         "s3cret",
		"vhid":             5,
		"advertising_base": 1,
		"advertising_skew": 0,
		"description":      "lan gateway",
		"interface":        "lan",
	}, got)

	alias := NewVIP().Normalize(coll[1])
	assert.Equal(t, false, alias["expand"])
	assert.Nil(t, alias["vhid"])
}

func TestVIP_InversionRoundTrip(t *testing.T) {
	vip := NewVIP()

	for _, expand := range []bool{true, false} {
		desired, err := vip.Desired(map[string]any{"address": "10.0.0.1", "interface": "lan", "expand": expand})
		require.NoError(t, err)

		payload, err := vip.Payload(desired, nil)
		require.NoError(t, err)
		if expand {
			assert.Equal(t, "0", payload["noexpand"])
		} else {
			assert.Equal(t, "1", payload["noexpand"])
		}

		obj := reconcile.NewObject()
		obj.Set("noexpand", payload["noexpand"])
		assert.Equal(t, expand, vip.Normalize(reconcile.Entry{Data: obj})["expand"])
	}
}

func TestVIP_Validate(t *testing.T) {
	vip := NewVIP()

	tests := []struct {
		name    string
		params  map[string]any
		wantErr string
	}{
		{"Valid", map[string]any{"address": "10.0.0.1", "interface": "lan", "vhid": 1, "advertising_skew": 254}, ""},
		{"VHIDLow", map[string]any{"address": "10.0.0.1", "interface": "lan", "vhid": 0}, "vhid"},
		{"VHIDHigh", map[string]any{"address": "10.0.0.1", "interface": "lan", "vhid": 256}, "vhid"},
		{"BaseLow", map[string]any{"address": "10.0.0.1", "interface": "lan", "advertising_base": 0}, "advertising_base"},
		{"SkewHigh", map[string]any{"address": "10.0.0.1", "interface": "lan", "advertising_skew": 255}, "advertising_skew"},
		{"Address", map[string]any{"address": "10.0.0.256", "interface": "lan"}, "10.0.0.256"},
		{"Mode", map[string]any{"address": "10.0.0.1", "interface": "lan", "mode": "bridge"}, "bridge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desired, err := vip.Desired(tt.params)
			require.NoError(t, err)

			err = vip.Validate(desired)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVIP_PasswordChangeHiddenFromDiff(t *testing.T) {
	vip := NewVIP()
	desired, err := vip.Desired(map[string]any{
		"address": "192.168.1.1", "cidr": 24, "mode": "carp", "vhid": 5,
		"interface": "lan", "description": "lan gateway", "password": "rotated",
	})
	require.NoError(t, err)

	res := reconcile.Decide(loadVIPs(t), vip, reconcile.Request{
		Desired: desired, MatchFields: vip.DefaultMatchFields(), State: reconcile.StatePresent,
	})
	assert.Equal(t, reconcile.Update, res.Decision)
	assert.Equal(t, carpVIP, res.Existing.UUID())
	assert.NotContains(t, res.Diff.Before, "password")
	assert.NotContains(t, res.Diff.After, "password")

	desired["password"] = "s3cret"
	res = reconcile.Decide(loadVIPs(t), vip, reconcile.Request{
		Desired: desired, MatchFields: vip.DefaultMatchFields(), State: reconcile.StatePresent,
	})
	assert.Equal(t, reconcile.NoChange, res.Decision)
}

func TestVIP_Payload(t *testing.T) {
	vip := NewVIP()
	desired, err := vip.Desired(map[string]any{"addr": "10.0.0.1", "bits": "24", "int": "lan", "bind": false, "desc": "x"})
	require.NoError(t, err)

	payload, err := vip.Payload(desired, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"subnet":      "10.0.0.1",
		"mode":        "ipalias",
		"subnet_bits": "24",
		"noexpand":    "0",
		"nobind":      "1",
		"gateway":     "",
		"password":    "",
		"vhid":        "",
		"advbase":     "1",
		"advskew":     "0",
		"descr":       "x",
		"interface":   "lan",
	}, payload)
}
