package eventsapi

import (
	"fmt"
	"strings"
)

// RuleState is the scheduling state of a rule.
type RuleState string

const (
	RuleStateEnabled  RuleState = "ENABLED"
	RuleStateDisabled RuleState = "DISABLED"
)

func (v RuleState) String() string {
	return string(v)
}

// ParseRuleState converts a caller-supplied state, case-insensitively,
// to a RuleState.
func ParseRuleState(value string) (RuleState, error) {
	switch RuleState(strings.ToUpper(value)) {
	case RuleStateEnabled:
		return RuleStateEnabled, nil
	case RuleStateDisabled:
		return RuleStateDisabled, nil
	default:
		return "", fmt.Errorf(`the state must be either %s or %s`, RuleStateEnabled, RuleStateDisabled)
	}
}

// Rule is a named recurring schedule entry in the EventBridge rule store.
type Rule struct {
	Name               string    `json:"name"`
	ARN                string    `json:"arn,omitempty"`
	ScheduleExpression string    `json:"scheduleExpression"`
	State              RuleState `json:"state"`
	Description        string    `json:"description,omitempty"`
}

// TargetInput is the invocation payload delivered to the executor
// when a rule fires. It is always serialized as a structured object,
// the rule name must never be concatenated into a raw JSON string.
type TargetInput struct {
	ID string `json:"id"`
}
