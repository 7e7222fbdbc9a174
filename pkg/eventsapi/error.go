package eventsapi

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

// FailedEntry is one per-target failure reported in a batch response.
type FailedEntry struct {
	TargetID string
	Code     string
	Message  string
}

func (e FailedEntry) String() string {
	return fmt.Sprintf(`target "%s": %s: %s`, e.TargetID, e.Code, e.Message)
}

// FailedEntryError represents an EventBridge batch call that returned
// HTTP success but reported one or more failed entries.
type FailedEntryError struct {
	Op      string
	Entries []FailedEntry
}

func (e FailedEntryError) Error() string {
	parts := make([]string, 0, len(e.Entries))
	for _, entry := range e.Entries {
		parts = append(parts, entry.String())
	}
	return fmt.Sprintf("%s failed: %s", e.Op, strings.Join(parts, "; "))
}

func newFailedEntryError(op string, entries []FailedEntry) FailedEntryError {
	return FailedEntryError{Op: op, Entries: entries}
}

func putTargetsFailures(in []types.PutTargetsResultEntry) []FailedEntry {
	out := make([]FailedEntry, 0, len(in))
	for _, v := range in {
		out = append(out, FailedEntry{
			TargetID: aws.ToString(v.TargetId),
			Code:     aws.ToString(v.ErrorCode),
			Message:  aws.ToString(v.ErrorMessage),
		})
	}
	return out
}

func removeTargetsFailures(in []types.RemoveTargetsResultEntry) []FailedEntry {
	out := make([]FailedEntry, 0, len(in))
	for _, v := range in {
		out = append(out, FailedEntry{
			TargetID: aws.ToString(v.TargetId),
			Code:     aws.ToString(v.ErrorCode),
			Message:  aws.ToString(v.ErrorMessage),
		})
	}
	return out
}
