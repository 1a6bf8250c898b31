package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/pkg/response"
)

var tracer = otel.Tracer(constants.AppProductService)

// Client reads products from the product service over http.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type productEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Product response.Product `json:"product"`
	} `json:"data"`
}

func (cl *Client) FindProductById(c context.Context, id uuid.UUID) (response.Product, error) {
	c, span := tracer.Start(
		c,
		"CatalogClient FindProductById",
		trace.WithAttributes(attribute.String(log.KeyProductID, id.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient FindProductById").
		Str(log.KeyProductID, id.String()).
		Logger()

	url := fmt.Sprintf("%s/products/%s", cl.baseURL, id.String())
	logger = logger.With().Str(log.KeyRequestURL, url).Str(log.KeyProcess, "requesting product").Logger()
	req, err := http.NewRequestWithContext(c, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	req.Header.Set(inHttp.HeaderContentType, inHttp.HeaderValueJson)
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Set(inHttp.HeaderRequestID, requestId)
	}

	logger.Trace().Msg("requesting product")
	resp, err := cl.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed requesting product with error=%w", inErrors.NewDependencyError("catalog", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		err = fmt.Errorf("failed requesting product with error=%w", inErrors.NewNotFoundError("product", id.String()))
	case resp.StatusCode != http.StatusOK:
		err = fmt.Errorf(
			"failed requesting product with error=%w",
			inErrors.NewDependencyError("catalog", errors.New(resp.Status)),
		)
	}
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "decoding response body").Logger()
	envelope := productEnvelope{}
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		err = fmt.Errorf("failed decoding response body with error=%w", inErrors.NewDependencyError("catalog", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("found product")

	return envelope.Data.Product, nil
}
