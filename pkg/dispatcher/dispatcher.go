// Package dispatcher validates incoming scheduling requests and dispatches
// them to the EventBridge rule API.
//
// A request is an API Gateway proxy event: POST only, JSON body with an
// "action" field (create, query, update, delete) plus action-specific
// parameters. Every branch produces a response; validation failures and
// service failures both map to HTTP 400, only a method mismatch maps to 405.
package dispatcher

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/alarmhub/alarm-scheduler/pkg/eventsapi"
	"github.com/alarmhub/alarm-scheduler/pkg/lambdaapi"
	"github.com/alarmhub/alarm-scheduler/pkg/schedule"
)

// DefaultExecutorName is the base name of the downstream executor function.
// The active environment name is appended on lookup, e.g. "alarmsExecuter-dev".
const DefaultExecutorName = "alarmsExecuter"

// Recognized actions.
const (
	ActionCreate = "create"
	ActionQuery  = "query"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Caller-facing messages, kept stable, they are part of the API contract.
const (
	msgWrongMethod   = "Please use POST httpMethod for this endPoint"
	msgUnknownAction = "The action on the body request should be: create, query, delete or update."
	msgEmptyID       = "The id on the body request cannot be empty"
	msgMissingDate   = "You must provide a date for the event"
	msgMissingUpdate = "You must provide a date or a state to update the event"
	msgRuleDeleted   = "Rule deleted successfully"
)

// Dispatcher routes scheduling requests to the rule store. It holds no
// state between invocations, every operation round-trips to the service.
type Dispatcher struct {
	rules     eventsapi.Client
	functions lambdaapi.API
	env       string
	executor  string
	logger    zerolog.Logger
}

// Option modifies the Dispatcher created by New.
type Option func(*Dispatcher)

// WithExecutorName overrides the executor function base name.
func WithExecutorName(name string) Option {
	return func(d *Dispatcher) {
		d.executor = name
	}
}

// WithLogger sets the logger, the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher. The rule client, the function identity API and
// the environment name are injected, nothing is read from ambient state.
func New(rules eventsapi.Client, functions lambdaapi.API, env string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		rules:     rules,
		functions: functions,
		env:       env,
		executor:  DefaultExecutorName,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle processes one API Gateway proxy event.
// The returned error is always nil, failures are encoded in the response.
func (d *Dispatcher) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	d.logger.Debug().Str("httpMethod", req.HTTPMethod).Msg("received event")

	// Method is checked before the body is touched, a non-POST request
	// gets 405 even with an unparsable body.
	if req.HTTPMethod != http.MethodPost {
		return response(http.StatusMethodNotAllowed, msgWrongMethod), nil
	}

	body := make(map[string]any)
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return d.errorResponse(ValidationError{Message: err.Error()}), nil
	}

	// The body arrives loosely typed, a numeric-looking id is a JSON
	// number, so every parameter is coerced to its string form.
	action := cast.ToString(body["action"])
	id := cast.ToString(body["id"])
	date := cast.ToString(body["date"])
	state := cast.ToString(body["state"])

	switch action {
	case ActionCreate, ActionQuery, ActionUpdate, ActionDelete:
		// recognized
	default:
		return d.errorResponse(ValidationError{Message: msgUnknownAction}), nil
	}

	d.logger.Info().Str("action", action).Str("id", id).Msg("dispatching request")

	executorARN, err := lambdaapi.ResolveFunctionARN(ctx, d.functions, d.executor+"-"+d.env)
	if err != nil {
		return d.errorResponse(ServiceError{Err: err}), nil
	}

	switch action {
	case ActionCreate:
		return d.create(ctx, id, date, executorARN), nil
	case ActionQuery:
		return d.query(ctx, id), nil
	case ActionUpdate:
		return d.update(ctx, id, date, state), nil
	default:
		return d.delete(ctx, id), nil
	}
}

func (d *Dispatcher) create(ctx context.Context, id, date, executorARN string) events.APIGatewayProxyResponse {
	if id == "" {
		return d.errorResponse(ValidationError{Message: msgEmptyID})
	}
	if date == "" {
		return d.errorResponse(ValidationError{Message: msgMissingDate})
	}
	if err := schedule.ValidateName(id); err != nil {
		return d.errorResponse(ValidationError{Message: err.Error()})
	}
	day, err := schedule.ParseDate(date)
	if err != nil {
		return d.errorResponse(ValidationError{Message: err.Error()})
	}

	arn, err := d.rules.PutRule(ctx, id, schedule.CronExpression(day), eventsapi.RuleStateEnabled)
	if err != nil {
		return d.errorResponse(ServiceError{Err: err})
	}
	if err := d.rules.AttachTarget(ctx, id, executorARN, eventsapi.TargetInput{ID: id}); err != nil {
		return d.errorResponse(ServiceError{Err: err})
	}
	return response(http.StatusOK, "New Rule created successfully: "+arn)
}

func (d *Dispatcher) query(ctx context.Context, id string) events.APIGatewayProxyResponse {
	if id == "" {
		rules, err := d.rules.ListRules(ctx)
		if err != nil {
			return d.errorResponse(ServiceError{Err: err})
		}
		return response(http.StatusOK, rules)
	}

	if err := schedule.ValidateName(id); err != nil {
		return d.errorResponse(ValidationError{Message: err.Error()})
	}
	rule, err := d.rules.Rule(ctx, id)
	if err != nil {
		return d.errorResponse(ServiceError{Err: err})
	}
	return response(http.StatusOK, rule)
}

func (d *Dispatcher) update(ctx context.Context, id, date, state string) events.APIGatewayProxyResponse {
	if id == "" {
		return d.errorResponse(ValidationError{Message: msgEmptyID})
	}
	if date == "" && state == "" {
		return d.errorResponse(ValidationError{Message: msgMissingUpdate})
	}
	if err := schedule.ValidateName(id); err != nil {
		return d.errorResponse(ValidationError{Message: err.Error()})
	}

	var expression string
	if date != "" {
		day, err := schedule.ParseDate(date)
		if err != nil {
			return d.errorResponse(ValidationError{Message: err.Error()})
		}
		expression = schedule.CronExpression(day)
	}

	var newState eventsapi.RuleState
	if state != "" {
		parsed, err := eventsapi.ParseRuleState(state)
		if err != nil {
			return d.errorResponse(ValidationError{Message: err.Error()})
		}
		newState = parsed
	}

	// Read-modify-write: unspecified fields fall back to the rule's current
	// values. There is no optimistic lock, a racing update is last-write-wins.
	current, err := d.rules.Rule(ctx, id)
	if err != nil {
		return d.errorResponse(ServiceError{Err: err})
	}
	if expression == "" {
		expression = current.ScheduleExpression
	}
	if newState == "" {
		newState = current.State
	}

	arn, err := d.rules.PutRule(ctx, id, expression, newState)
	if err != nil {
		return d.errorResponse(ServiceError{Err: err})
	}
	return response(http.StatusOK, "Rule updated successfully: "+arn)
}

func (d *Dispatcher) delete(ctx context.Context, id string) events.APIGatewayProxyResponse {
	if id == "" {
		return d.errorResponse(ValidationError{Message: msgEmptyID})
	}
	if err := schedule.ValidateName(id); err != nil {
		return d.errorResponse(ValidationError{Message: err.Error()})
	}

	// The rule cannot be deleted while its target is attached, so a failed
	// detach stops here and the delete call is never issued.
	if err := d.rules.DetachTarget(ctx, id); err != nil {
		return d.errorResponse(ServiceError{Err: err})
	}
	if err := d.rules.DeleteRule(ctx, id); err != nil {
		return d.errorResponse(ServiceError{Err: err})
	}
	return response(http.StatusOK, msgRuleDeleted)
}

func (d *Dispatcher) errorResponse(err error) events.APIGatewayProxyResponse {
	switch err.(type) {
	case ValidationError:
		d.logger.Warn().Err(err).Msg("request rejected")
	default:
		d.logger.Error().Err(err).Msg("service call failed")
	}
	return response(http.StatusBadRequest, err.Error())
}

// response encodes the body as JSON and attaches the CORS headers.
// Plain messages become JSON string literals, as the API always did.
func response(code int, body any) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		// Marshaling a message or the rule model cannot fail, but a response
		// is produced even if it somehow does.
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Headers: corsHeaders(), Body: `"internal error"`}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Headers:    corsHeaders(),
		Body:       string(encoded),
	}
}

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Headers": "*",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST",
	}
}
