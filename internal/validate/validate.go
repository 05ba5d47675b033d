// Package validate holds the field-level predicates used by interview
// questions. Each validator returns an error describing the rejection so
// prompts can redisplay it verbatim.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var gitRemoteURI = regexp.MustCompile(`^(https?|git|ssh)://[^\s]+$|^git@[^\s:]+:[^\s]+$`)

// GitRemoteURI checks that input looks like a usable git remote URI
// (http(s)/git/ssh scheme or scp-like git@host:path form).
func GitRemoteURI(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("remote URI is required")
	}
	if !gitRemoteURI.MatchString(input) {
		return fmt.Errorf("%q is not a valid git remote URI", input)
	}
	return nil
}

// LocalPath rejects paths the materializer cannot safely expand: tilde
// shortcuts, embedded whitespace, quotes, and shell wildcards.
func LocalPath(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("path is required")
	}
	if strings.HasPrefix(input, "~") {
		return fmt.Errorf("tilde expansion is not supported; use an absolute or relative path")
	}
	if strings.ContainsAny(input, " \t\n") {
		return fmt.Errorf("path must not contain whitespace")
	}
	if strings.ContainsAny(input, `"'`) {
		return fmt.Errorf("path must not contain quotes")
	}
	if strings.ContainsAny(input, "*?[]") {
		return fmt.Errorf("path must not contain wildcards")
	}
	return nil
}

// ProjectName checks that name starts with a letter or digit and contains
// only letters, digits, hyphens, and underscores.
func ProjectName(input string) error {
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9][a-zA-Z0-9\-_]*$`, input)
	if !matched {
		return fmt.Errorf("%q is not a valid project name", input)
	}
	return nil
}
