// Package handler serves the derivation engine over HTTP.
package handler

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"budget-engine/internal/engine"
	"budget-engine/internal/model"
	"budget-engine/internal/policyregistry"
)

const (
	pathCalculate = "/calculate"
	pathHealth    = "/healthz"
)

type Handler struct {
	engine          *engine.Engine
	registry        *policyregistry.Registry
	defaults        model.CalculationOptions
	registryTimeout time.Duration
	logger          *zap.Logger
}

// New returns a handler. A nil registry leaves missing thresholds to the
// built-in policy. Options a request leaves unset take defaults.
func New(e *engine.Engine, registry *policyregistry.Registry, defaults model.CalculationOptions, registryTimeout time.Duration, logger *zap.Logger) *Handler {
	return &Handler{
		engine:          e,
		registry:        registry,
		defaults:        defaults,
		registryTimeout: registryTimeout,
		logger:          logger,
	}
}

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case pathCalculate:
		h.handleCalculation(ctx)
	case pathHealth:
		h.handleHealth(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() && !ctx.IsHead() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(`{"status":"ok"}`)
}

func (h *Handler) handleCalculation(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "Request body is required")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req.Options = h.withDefaults(req.Options)
	if h.registry != nil {
		rctx, cancel := context.WithTimeout(context.Background(), h.registryTimeout)
		req.Snapshot = h.registry.Resolve(rctx, req.Snapshot)
		cancel()
	}

	resp := h.engine.Process(&req)

	meta := resp.CalculationMetadata
	h.logger.Info("calculation completed",
		zap.String("calculation_id", meta.CalculationID),
		zap.String("tenant_id", meta.TenantID),
		zap.String("outcome", meta.CalculationOutcome),
		zap.Int64("duration_ms", meta.CalculationDurationMs),
		zap.Int("edits", len(req.Edits)),
		zap.Int("messages", len(resp.CalculationResult.Messages)),
	)

	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

// withDefaults fills unset options from the server config. Everything else,
// negative period counts included, is left to the engine.
func (h *Handler) withDefaults(o model.CalculationOptions) model.CalculationOptions {
	if o.Periods == 0 {
		o.Periods = h.defaults.Periods
	}
	if o.FirstFinancialYear == 0 {
		o.FirstFinancialYear = h.defaults.FirstFinancialYear
	}
	return o
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
