// Package lambdaapi resolves the invocation identity of Lambda functions.
package lambdaapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// API is the subset of the Lambda SDK surface used for identity resolution.
// Tests substitute it with a fake.
type API interface {
	GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
}

// ResolveFunctionARN looks up a function by name and returns its ARN.
func ResolveFunctionARN(ctx context.Context, api API, name string) (string, error) {
	out, err := api.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(name)})
	if err != nil {
		return "", err
	}
	if out.Configuration == nil || out.Configuration.FunctionArn == nil {
		return "", fmt.Errorf(`function "%s" has no configuration in the lookup response`, name)
	}
	return aws.ToString(out.Configuration.FunctionArn), nil
}
