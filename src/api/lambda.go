package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BielosX/wombat/poke-proxy/src/proxy"
	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

type LambdaHandlers struct {
	fetcher Fetcher
	sugar   *zap.SugaredLogger
}

func NewLambdaHandlers(fetcher Fetcher, sugar *zap.SugaredLogger) *LambdaHandlers {
	return &LambdaHandlers{
		fetcher: fetcher,
		sugar:   sugar,
	}
}

// HandleFetch serves direct invocations with a JSON proxy.Request payload.
func (h *LambdaHandlers) HandleFetch(ctx context.Context, request proxy.Request) (*proxy.Result, error) {
	return h.fetcher.FetchPokemon(ctx, request)
}

// HandleHTTP serves API Gateway HTTP API events. The id comes from the {id}
// path parameter or the id query parameter.
func (h *LambdaHandlers) HandleHTTP(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	id := event.PathParameters["id"]
	if id == "" {
		id = event.QueryStringParameters["id"]
	}
	request, err := ParseRequest(id, event.QueryStringParameters["revalidate"])
	if err != nil {
		return h.errorResponse(err)
	}
	result, err := h.fetcher.FetchPokemon(ctx, request)
	if err != nil {
		return h.errorResponse(err)
	}
	body, err := json.Marshal(result)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Cache-Control": cacheControl(request),
		},
		Body: string(body),
	}, nil
}

func (h *LambdaHandlers) errorResponse(err error) (events.APIGatewayV2HTTPResponse, error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		h.sugar.Errorf("Unexpected error: %s", err)
	}
	body, marshalErr := json.Marshal(ErrorBody{Error: err.Error()})
	if marshalErr != nil {
		return events.APIGatewayV2HTTPResponse{}, marshalErr
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}
