package lambdaapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alarmhub/alarm-scheduler/pkg/lambdaapi"
)

type fakeAPI struct {
	in  []*awslambda.GetFunctionInput
	out *awslambda.GetFunctionOutput
	err error
}

func (f *fakeAPI) GetFunction(_ context.Context, params *awslambda.GetFunctionInput, _ ...func(*awslambda.Options)) (*awslambda.GetFunctionOutput, error) {
	f.in = append(f.in, params)
	return f.out, f.err
}

func TestResolveFunctionARN(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{out: &awslambda.GetFunctionOutput{
		Configuration: &lambdatypes.FunctionConfiguration{
			FunctionArn: aws.String("arn:aws:lambda:eu-west-1:111122223333:function:alarmsExecuter-dev"),
		},
	}}

	arn, err := lambdaapi.ResolveFunctionARN(context.Background(), api, "alarmsExecuter-dev")
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:lambda:eu-west-1:111122223333:function:alarmsExecuter-dev", arn)
	require.Len(t, api.in, 1)
	assert.Equal(t, "alarmsExecuter-dev", aws.ToString(api.in[0].FunctionName))
}

func TestResolveFunctionARNLookupError(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{err: errors.New("function not found")}

	_, err := lambdaapi.ResolveFunctionARN(context.Background(), api, "alarmsExecuter-dev")
	assert.ErrorContains(t, err, "function not found")
}

func TestResolveFunctionARNMissingConfiguration(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{out: &awslambda.GetFunctionOutput{}}

	_, err := lambdaapi.ResolveFunctionARN(context.Background(), api, "alarmsExecuter-dev")
	assert.ErrorContains(t, err, "no configuration")
}
