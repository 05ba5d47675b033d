// Package setup defines the wizard's pre-flight checks as task batches. The
// run-loop's initializing phase runs the git validation batch to completion
// before the account discovery batch begins.
package setup

import (
	"context"
	"time"

	"sprout/internal/hub"
	"sprout/internal/task"
	"sprout/internal/vcs"
)

// Task context keys. The context is discarded after the initializing phase;
// CollectResults copies these out first.
const (
	KeyRemote     = "remoteInfo"
	KeyAccounts   = "accounts"
	KeyHubs       = "hubs"
	KeyHubChoices = "hubChoices"
)

// Results is what later phases keep from the setup task context.
type Results struct {
	Remote     vcs.RemoteInfo
	Accounts   []hub.AccountRecord
	HubChoices []hub.AliasChoice
}

// CollectResults copies the useful setup outputs out of a finished task
// context.
func CollectResults(tc task.Context) Results {
	r := Results{}
	if v, ok := tc[KeyRemote].(vcs.RemoteInfo); ok {
		r.Remote = v
	}
	if v, ok := tc[KeyAccounts].([]hub.AccountRecord); ok {
		r.Accounts = v
	}
	if v, ok := tc[KeyHubChoices].([]hub.AliasChoice); ok {
		r.HubChoices = v
	}
	return r
}

// GitValidationTasks builds the first pre-flight batch: git must be on the
// PATH, and when a remote URI is configured it must be reachable and contain
// commits. Both failures are fatal to the run.
func GitValidationTasks(git vcs.Gateway, remoteURI string, delay time.Duration) []task.Descriptor {
	return []task.Descriptor{
		{
			Title: "Looking for Git",
			Run: func(ctx context.Context, tc task.Context) ([]task.Descriptor, error) {
				if !git.IsToolInstalled() {
					return nil, vcs.ErrToolMissing
				}
				return nil, nil
			},
		},
		{
			Title: "Validating the remote repository",
			Enabled: func(tc task.Context) bool {
				return remoteURI != ""
			},
			Run: func(ctx context.Context, tc task.Context) ([]task.Descriptor, error) {
				info, err := git.CheckRemote(ctx, remoteURI, delay)
				if err != nil {
					return nil, err
				}
				tc[KeyRemote] = info
				return nil, nil
			},
		},
	}
}

// HubDiscoveryTasks builds the second pre-flight batch: enumerate the
// authenticated accounts, keep the connected hubs, and shape them into
// interview choices. Each subtask reads what the previous one wrote into the
// shared context.
func HubDiscoveryTasks(dir hub.Directory) []task.Descriptor {
	return []task.Descriptor{
		{
			Title: "Scanning connected accounts",
			Run: func(ctx context.Context, tc task.Context) ([]task.Descriptor, error) {
				accounts, err := dir.ScanAuthenticatedAccounts(ctx)
				if err != nil {
					return nil, err
				}
				if len(accounts) == 0 {
					return nil, hub.ErrNoAccounts
				}
				tc[KeyAccounts] = accounts
				return nil, nil
			},
		},
		{
			Title: "Identifying hub accounts",
			Run: func(ctx context.Context, tc task.Context) ([]task.Descriptor, error) {
				accounts, _ := tc[KeyAccounts].([]hub.AccountRecord)
				hubs := hub.FilterConnectedHubs(accounts)
				if len(hubs) == 0 {
					return nil, hub.ErrNoHubs
				}
				tc[KeyHubs] = hubs
				return nil, nil
			},
		},
		{
			Title: "Building hub alias list",
			Run: func(ctx context.Context, tc task.Context) ([]task.Descriptor, error) {
				hubs, _ := tc[KeyHubs].([]hub.AccountRecord)
				tc[KeyHubChoices] = hub.BuildAliasChoices(hubs)
				return nil, nil
			},
		},
	}
}
