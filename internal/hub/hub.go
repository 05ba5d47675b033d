// Package hub discovers the user's authenticated org accounts through the
// org-management CLI and shapes them into interview choices.
package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"sprout/internal/shell"
)

// Discovery failures, surfaced to the user with authenticate-first guidance.
var (
	ErrNoAccounts = errors.New("no authenticated accounts found")
	ErrNoHubs     = errors.New("no connected hub accounts found")
)

// AccountRecord is one authenticated, non-ephemeral account as reported by
// the org-management CLI.
type AccountRecord struct {
	Alias           string `json:"alias"`
	Username        string `json:"username"`
	ID              string `json:"orgId"`
	IsHub           bool   `json:"isDevHub"`
	ConnectedStatus string `json:"connectedStatus"`
}

// Connected reports whether the account's session is currently usable.
func (r AccountRecord) Connected() bool {
	return strings.EqualFold(r.ConnectedStatus, "Connected")
}

// AliasChoice is interview option data derived from an AccountRecord. It is
// recomputed on every setup run and never persisted.
type AliasChoice struct {
	DisplayName string
	Value       string
	ShortLabel  string
}

// NotApplicableValue is the sentinel choice value meaning "none of the
// above"; selecting it lets the user proceed without binding a hub.
const NotApplicableValue = "NOT_SPECIFIED"

// Directory is the surface the setup tasks need from the org-management CLI.
type Directory interface {
	ScanAuthenticatedAccounts(ctx context.Context) ([]AccountRecord, error)
}

// CLIDirectory shells out to the org-management CLI and parses its JSON
// output.
type CLIDirectory struct {
	exec shell.Executor
	log  zerolog.Logger
}

func NewCLIDirectory(exec shell.Executor, log zerolog.Logger) *CLIDirectory {
	return &CLIDirectory{exec: exec, log: log}
}

type orgListResponse struct {
	Status int `json:"status"`
	Result struct {
		NonScratchOrgs []AccountRecord `json:"nonScratchOrgs"`
	} `json:"result"`
}

// ScanAuthenticatedAccounts enumerates every authenticated non-ephemeral
// account known to the CLI.
func (d *CLIDirectory) ScanAuthenticatedAccounts(ctx context.Context) ([]AccountRecord, error) {
	res := d.exec.Run(ctx, "sf", "org", "list", "--json")
	if res.Err != nil {
		return nil, fmt.Errorf("running org list: %w", res.Err)
	}
	accounts, err := ParseOrgList([]byte(res.Stdout))
	if err != nil {
		return nil, err
	}
	d.log.Debug().Int("accounts", len(accounts)).Msg("scanned authenticated accounts")
	return accounts, nil
}

// ParseOrgList decodes the CLI's JSON response into account records.
func ParseOrgList(raw []byte) ([]AccountRecord, error) {
	var resp orgListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parsing org list output: %w", err)
	}
	if resp.Status != 0 {
		return nil, fmt.Errorf("org list reported status %d", resp.Status)
	}
	return resp.Result.NonScratchOrgs, nil
}

// FilterConnectedHubs keeps only accounts that are hub-capable and currently
// connected.
func FilterConnectedHubs(accounts []AccountRecord) []AccountRecord {
	var hubs []AccountRecord
	for _, a := range accounts {
		if a.IsHub && a.Connected() {
			hubs = append(hubs, a)
		}
	}
	return hubs
}

// BuildAliasChoices turns hub records into ordered interview choices with
// alias and username columns padded for alignment, followed by the "none of
// the above" sentinel.
func BuildAliasChoices(hubs []AccountRecord) []AliasChoice {
	width := 0
	for _, h := range hubs {
		label := h.Alias
		if label == "" {
			label = h.Username
		}
		if len(label) > width {
			width = len(label)
		}
	}

	choices := make([]AliasChoice, 0, len(hubs)+1)
	for _, h := range hubs {
		label := h.Alias
		if label == "" {
			label = h.Username
		}
		choices = append(choices, AliasChoice{
			DisplayName: fmt.Sprintf("%-*s  %s", width, label, h.Username),
			Value:       h.Username,
			ShortLabel:  label,
		})
	}
	choices = append(choices, AliasChoice{
		DisplayName: "None of the above",
		Value:       NotApplicableValue,
		ShortLabel:  "none",
	})
	return choices
}
