package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"budget-engine/internal/engine"
	"budget-engine/internal/model"
	"budget-engine/internal/narrative"
	"budget-engine/internal/policyregistry"
	"budget-engine/internal/rag"
)

func newHandler(reg *policyregistry.Registry) *Handler {
	return New(
		engine.New(narrative.DefaultFormatter),
		reg,
		model.CalculationOptions{Periods: 3, FirstFinancialYear: 2025},
		time.Second,
		zap.NewNop(),
	)
}

func do(t *testing.T, h *Handler, method, path string, body []byte) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	h.Handle(&ctx)
	return &ctx
}

func TestHealth(t *testing.T) {
	ctx := do(t, newHandler(nil), fasthttp.MethodGet, "/healthz", nil)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
}

func TestUnknownPath(t *testing.T) {
	ctx := do(t, newHandler(nil), fasthttp.MethodGet, "/nope", nil)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestCalculateRejectsWrongMethod(t *testing.T) {
	ctx := do(t, newHandler(nil), fasthttp.MethodGet, "/calculate", nil)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestCalculateRejectsMalformedBody(t *testing.T) {
	h := newHandler(nil)

	for name, body := range map[string]string{
		"empty":         "",
		"not json":      "{",
		"type mismatch": `{"snapshot":{"finance":{"in_year_deficit":"lots"}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			ctx := do(t, h, fasthttp.MethodPost, "/calculate", []byte(body))
			require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

			var er model.ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &er))
			assert.Equal(t, fasthttp.StatusBadRequest, er.Status)
			assert.NotEmpty(t, er.Message)
		})
	}
}

func TestCalculateAppliesDefaultsAndEdits(t *testing.T) {
	req := model.CalculationRequest{
		TenantID: "council-a",
		Snapshot: model.DefaultSnapshot(),
		Edits: []model.Edit{{
			EditID:     "e1",
			EditName:   "update_finance",
			Properties: json.RawMessage(`{"reserve_support":5.5}`),
		}},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	ctx := do(t, newHandler(nil), fasthttp.MethodPost, "/calculate", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))

	assert.Equal(t, "council-a", resp.CalculationMetadata.TenantID)
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.NotEmpty(t, resp.CalculationMetadata.CalculationID)

	result := resp.CalculationResult
	require.Len(t, result.Edits, 1)
	assert.True(t, result.Edits[0].Applied)
	assert.Equal(t, 5.5, result.Snapshot.Finance.ReserveSupport)
	assert.NotEmpty(t, result.Changes)

	// periods and first year come from the handler defaults
	require.Len(t, result.Derivation.Projection, 3)
	assert.Equal(t, "25/26", result.Derivation.Projection[0].Period)
}

func TestCalculateNegativePeriodsMeansNoPeriods(t *testing.T) {
	body, err := json.Marshal(model.CalculationRequest{
		Snapshot: model.DefaultSnapshot(),
		Options:  model.CalculationOptions{Periods: -1},
	})
	require.NoError(t, err)

	ctx := do(t, newHandler(nil), fasthttp.MethodPost, "/calculate", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Empty(t, resp.CalculationResult.Derivation.Projection)
}

func TestCalculateResolvesThresholdsFromRegistry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/thresholds/"+rag.FamilyReserves {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"family":"reserves","red":2,"amber":3,"polarity":"descending"}`))
	}))
	defer srv.Close()

	reg := policyregistry.New(srv.URL, time.Second, zap.NewNop())
	defer reg.Close()

	body, err := json.Marshal(model.CalculationRequest{Snapshot: model.DefaultSnapshot()})
	require.NoError(t, err)

	ctx := do(t, newHandler(reg), fasthttp.MethodPost, "/calculate", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))

	reserves := resp.CalculationResult.Derivation.Rag[rag.FamilyReserves]
	assert.Equal(t, 2.0, reserves.Thresholds.Red)
	// 3.36 / 8.8 * 12 is above the remote amber line
	assert.Equal(t, model.Green, reserves.Label)
	assert.Equal(t, rag.DefaultPolicy()[rag.FamilyDeficit], resp.CalculationResult.Snapshot.Thresholds[rag.FamilyDeficit])
}
