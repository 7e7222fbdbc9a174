// Package eventsapi contains a typed client for the EventBridge rule API.
// The operations are not complete and can be extended as needed.
// Requests can be sent by any client that implements the API interface,
// the AWS SDK eventbridge.Client is the default implementation.
package eventsapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

// API is the subset of the EventBridge SDK surface used by the Client.
// Tests substitute it with a fake.
type API interface {
	PutRule(ctx context.Context, params *eventbridge.PutRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutRuleOutput, error)
	DescribeRule(ctx context.Context, params *eventbridge.DescribeRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DescribeRuleOutput, error)
	ListRules(ctx context.Context, params *eventbridge.ListRulesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error)
	PutTargets(ctx context.Context, params *eventbridge.PutTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutTargetsOutput, error)
	RemoveTargets(ctx context.Context, params *eventbridge.RemoveTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error)
	DeleteRule(ctx context.Context, params *eventbridge.DeleteRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error)
}

// Client wraps the EventBridge rule operations with the domain model.
type Client struct {
	api API
}

// NewClient creates a Client on top of an EventBridge API implementation.
func NewClient(api API) Client {
	return Client{api: api}
}

// PutRule creates the rule, or replaces an existing rule of the same name,
// and returns the rule's ARN.
func (c Client) PutRule(ctx context.Context, name, scheduleExpression string, state RuleState) (string, error) {
	out, err := c.api.PutRule(ctx, &eventbridge.PutRuleInput{
		Name:               aws.String(name),
		ScheduleExpression: aws.String(scheduleExpression),
		State:              types.RuleState(state),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.RuleArn), nil
}

// Rule fetches a single rule's full description.
func (c Client) Rule(ctx context.Context, name string) (*Rule, error) {
	out, err := c.api.DescribeRule(ctx, &eventbridge.DescribeRuleInput{Name: aws.String(name)})
	if err != nil {
		return nil, err
	}
	return &Rule{
		Name:               aws.ToString(out.Name),
		ARN:                aws.ToString(out.Arn),
		ScheduleExpression: aws.ToString(out.ScheduleExpression),
		State:              RuleState(out.State),
		Description:        aws.ToString(out.Description),
	}, nil
}

// ListRules lists rules, first page only.
func (c Client) ListRules(ctx context.Context) ([]*Rule, error) {
	out, err := c.api.ListRules(ctx, &eventbridge.ListRulesInput{})
	if err != nil {
		return nil, err
	}
	rules := make([]*Rule, 0, len(out.Rules))
	for _, r := range out.Rules {
		rules = append(rules, &Rule{
			Name:               aws.ToString(r.Name),
			ARN:                aws.ToString(r.Arn),
			ScheduleExpression: aws.ToString(r.ScheduleExpression),
			State:              RuleState(r.State),
			Description:        aws.ToString(r.Description),
		})
	}
	return rules, nil
}

// AttachTarget binds the executor to the rule. The rule name doubles as the
// target id, so a rule always has exactly one target.
func (c Client) AttachTarget(ctx context.Context, rule, executorARN string, input TargetInput) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return err
	}
	out, err := c.api.PutTargets(ctx, &eventbridge.PutTargetsInput{
		Rule: aws.String(rule),
		Targets: []types.Target{
			{
				Id:    aws.String(rule),
				Arn:   aws.String(executorARN),
				Input: aws.String(string(inputJSON)),
			},
		},
	})
	if err != nil {
		return err
	}
	if out.FailedEntryCount > 0 {
		return newFailedEntryError("put targets", putTargetsFailures(out.FailedEntries))
	}
	return nil
}

// DetachTarget removes the rule's sole target. Removal is forced so that
// targets of managed rules are detached too.
func (c Client) DetachTarget(ctx context.Context, rule string) error {
	out, err := c.api.RemoveTargets(ctx, &eventbridge.RemoveTargetsInput{
		Rule:  aws.String(rule),
		Ids:   []string{rule},
		Force: true,
	})
	if err != nil {
		return err
	}
	if out.FailedEntryCount > 0 {
		return newFailedEntryError("remove targets", removeTargetsFailures(out.FailedEntries))
	}
	return nil
}

// DeleteRule deletes the rule. The rule's target must be detached first,
// deletion with an attached target is disallowed.
func (c Client) DeleteRule(ctx context.Context, name string) error {
	_, err := c.api.DeleteRule(ctx, &eventbridge.DeleteRuleInput{
		Name:  aws.String(name),
		Force: true,
	})
	return err
}
