package moderation

import (
	"fmt"
	"strings"

	modelDB "github.com/geocontent/backend/lib/models/db"
)

type Status string

const (
	Pending         Status = modelDB.StatusPending
	Verified        Status = modelDB.StatusVerified
	DeleteRequested Status = modelDB.StatusDeleteRequested
	Rejected        Status = modelDB.StatusRejected
)

// Visible reports whether revisions in this status may be served to end
// users.
func (s Status) Visible() bool {
	return s == Verified
}

var transitions = map[Status][]Status{
	Pending:         {Verified, Rejected},
	Verified:        {DeleteRequested},
	DeleteRequested: {Verified, Rejected},
}

func CanTransition(from Status, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DeletePolicy decides what a confirmed deletion removes.
type DeletePolicy string

const (
	// PolicyRevert rejects the revision and falls back to the nearest
	// earlier verified revision.
	PolicyRevert DeletePolicy = "revert"
	// PolicyCascade deletes the whole chain.
	PolicyCascade DeletePolicy = "cascade"
)

func ParseDeletePolicy(value string) (DeletePolicy, error) {
	switch DeletePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyRevert:
		return PolicyRevert, nil
	case PolicyCascade:
		return PolicyCascade, nil
	default:
		return "", fmt.Errorf("unknown delete policy %q", value)
	}
}
