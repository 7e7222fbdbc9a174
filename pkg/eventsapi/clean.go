package eventsapi

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// CleanAllRules detaches and deletes every rule from the first listing page.
// Useful for E2E tests. Failures are collected per rule, a failing rule does
// not stop the sweep.
func CleanAllRules(ctx context.Context, c Client) error {
	rules, err := c.ListRules(ctx)
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, rule := range rules {
		if err := c.DetachTarget(ctx, rule.Name); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if err := c.DeleteRule(ctx, rule.Name); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
