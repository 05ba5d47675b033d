package hub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrgList(t *testing.T) {
	raw := []byte(`{
		"status": 0,
		"result": {
			"nonScratchOrgs": [
				{"alias": "prod", "username": "admin@corp.example", "orgId": "00D1", "isDevHub": true, "connectedStatus": "Connected"},
				{"alias": "", "username": "dev@corp.example", "orgId": "00D2", "isDevHub": false, "connectedStatus": "Connected"}
			]
		}
	}`)

	accounts, err := ParseOrgList(raw)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "prod", accounts[0].Alias)
	assert.True(t, accounts[0].IsHub)
	assert.Equal(t, "dev@corp.example", accounts[1].Username)
}

func TestParseOrgListBadStatus(t *testing.T) {
	_, err := ParseOrgList([]byte(`{"status": 1, "result": {"nonScratchOrgs": []}}`))
	assert.Error(t, err)
}

func TestParseOrgListBadJSON(t *testing.T) {
	_, err := ParseOrgList([]byte(`not json`))
	assert.Error(t, err)
}

func TestFilterConnectedHubs(t *testing.T) {
	accounts := []AccountRecord{
		{Username: "hub@x", IsHub: true, ConnectedStatus: "Connected"},
		{Username: "stale@x", IsHub: true, ConnectedStatus: "RefreshTokenAuthError"},
		{Username: "plain@x", IsHub: false, ConnectedStatus: "Connected"},
		{Username: "hub2@x", IsHub: true, ConnectedStatus: "connected"},
	}

	hubs := FilterConnectedHubs(accounts)
	require.Len(t, hubs, 2)
	assert.Equal(t, "hub@x", hubs[0].Username)
	assert.Equal(t, "hub2@x", hubs[1].Username)
}

func TestBuildAliasChoices(t *testing.T) {
	hubs := []AccountRecord{
		{Alias: "prod", Username: "admin@corp.example"},
		{Alias: "", Username: "longer.name@corp.example"},
	}

	choices := BuildAliasChoices(hubs)
	require.Len(t, choices, 3)

	// Labels are padded to a common column width.
	labelWidth := len("longer.name@corp.example")
	assert.True(t, strings.HasPrefix(choices[0].DisplayName, "prod"+strings.Repeat(" ", labelWidth-len("prod"))))
	assert.Equal(t, "admin@corp.example", choices[0].Value)
	assert.Equal(t, "longer.name@corp.example", choices[1].Value)

	sentinel := choices[len(choices)-1]
	assert.Equal(t, NotApplicableValue, sentinel.Value)
	assert.Equal(t, "None of the above", sentinel.DisplayName)
}

func TestBuildAliasChoicesEmptyStillHasSentinel(t *testing.T) {
	choices := BuildAliasChoices(nil)
	require.Len(t, choices, 1)
	assert.Equal(t, NotApplicableValue, choices[0].Value)
}
