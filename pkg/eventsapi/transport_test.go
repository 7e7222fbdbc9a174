package eventsapi_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alarmhub/alarm-scheduler/pkg/eventsapi"
)

// newMockedAPI creates a real EventBridge SDK client with a mocked HTTP
// transport, so the wire encoding of the requests is exercised too.
func newMockedAPI() (*eventbridge.Client, *httpmock.MockTransport) {
	transport := httpmock.NewMockTransport()
	cfg := aws.Config{
		Region:      "eu-west-1",
		Credentials: credentials.NewStaticCredentialsProvider("accessKeyID", "secretKey", ""),
		HTTPClient:  &http.Client{Transport: transport},
	}
	api := eventbridge.NewFromConfig(cfg, func(o *eventbridge.Options) {
		o.BaseEndpoint = aws.String("https://events.mock")
	})
	return api, transport
}

func TestPutRuleWire(t *testing.T) {
	t.Parallel()
	api, transport := newMockedAPI()

	var gotTarget string
	var gotBody []byte
	transport.RegisterResponder(http.MethodPost, `=~^https://events\.mock/`, func(req *http.Request) (*http.Response, error) {
		gotTarget = req.Header.Get("X-Amz-Target")
		gotBody, _ = io.ReadAll(req.Body)
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
			"RuleArn": "arn:aws:events:eu-west-1:111122223333:rule/job-1",
		})
	})

	c := eventsapi.NewClient(api)
	arn, err := c.PutRule(context.Background(), "job-1", "cron(30 9 * * ? *)", eventsapi.RuleStateEnabled)
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:events:eu-west-1:111122223333:rule/job-1", arn)
	assert.Equal(t, "AWSEvents.PutRule", gotTarget)
	assert.JSONEq(t, `{"Name":"job-1","ScheduleExpression":"cron(30 9 * * ? *)","State":"ENABLED"}`, string(gotBody))
}

func TestDescribeRuleWire(t *testing.T) {
	t.Parallel()
	api, transport := newMockedAPI()

	transport.RegisterResponder(http.MethodPost, `=~^https://events\.mock/`, func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("X-Amz-Target") != "AWSEvents.DescribeRule" {
			return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
		}
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
			"Name":               "job-1",
			"Arn":                "arn:aws:events:eu-west-1:111122223333:rule/job-1",
			"ScheduleExpression": "cron(30 9 * * ? *)",
			"State":              "ENABLED",
		})
	})

	c := eventsapi.NewClient(api)
	rule, err := c.Rule(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", rule.Name)
	assert.Equal(t, "cron(30 9 * * ? *)", rule.ScheduleExpression)
	assert.Equal(t, eventsapi.RuleStateEnabled, rule.State)
}

func TestDescribeRuleWireError(t *testing.T) {
	t.Parallel()
	api, transport := newMockedAPI()

	transport.RegisterResponder(http.MethodPost, `=~^https://events\.mock/`, func(_ *http.Request) (*http.Response, error) {
		return httpmock.NewJsonResponse(http.StatusBadRequest, map[string]any{
			"__type":  "ResourceNotFoundException",
			"message": "Rule job-9 does not exist on EventBus default.",
		})
	})

	c := eventsapi.NewClient(api)
	_, err := c.Rule(context.Background(), "job-9")
	require.Error(t, err)
	assert.ErrorContains(t, err, "does not exist")
}
