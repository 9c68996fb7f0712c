package edits

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-engine/internal/model"
)

func edit(name, props string) *model.Edit {
	return &model.Edit{EditID: "e1", EditName: name, Properties: json.RawMessage(props)}
}

func TestUpdateFinanceMergesPartialProperties(t *testing.T) {
	h, ok := Get("update_finance")
	require.True(t, ok)

	state := model.DefaultSnapshot()
	e := edit("update_finance", `{"in_year_deficit": 10.5, "reserve_support": 4}`)

	assert.Empty(t, h.Validate(&state, e))
	assert.Equal(t, 8.8, state.Finance.InYearDeficit, "validate must not change state")

	assert.Empty(t, h.Apply(&state, e))
	assert.Equal(t, 10.5, state.Finance.InYearDeficit)
	assert.Equal(t, 4.0, state.Finance.ReserveSupport)
	assert.Equal(t, 6.0, state.Finance.OpeningReserves, "absent fields keep their value")
}

func TestUpdateLeversTogglesAndWarns(t *testing.T) {
	h, _ := Get("update_levers")
	state := model.DefaultSnapshot()
	e := edit("update_levers", `{"step_down": true, "reduce_agency": 140}`)

	msgs := h.Validate(&state, e)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.LevelWarning, msgs[0].Level)
	assert.Equal(t, "PERCENT_OUT_OF_RANGE", msgs[0].Code)

	h.Apply(&state, e)
	assert.True(t, state.Levers.StepDown)
	assert.Equal(t, 140.0, state.Levers.ReduceAgency)
}

func TestTypeMismatchIsCritical(t *testing.T) {
	cases := map[string]string{
		"wrong type":      `{"agency_rate": "high"}`,
		"unknown field":   `{"agency_rat": 20}`,
		"not an object":   `[1, 2]`,
		"empty":           ``,
		"null properties": `null`,
	}
	h, _ := Get("update_workforce")

	for name, props := range cases {
		t.Run(name, func(t *testing.T) {
			state := model.DefaultSnapshot()
			msgs := h.Validate(&state, edit("update_workforce", props))
			require.Len(t, msgs, 1)
			assert.Equal(t, model.LevelCritical, msgs[0].Level)
			assert.Equal(t, "INVALID_PROPERTIES", msgs[0].Code)
		})
	}
}

func TestNegativeAmountsWarn(t *testing.T) {
	h, _ := Get("update_placements")
	state := model.DefaultSnapshot()

	msgs := h.Validate(&state, edit("update_placements", `{"actual": -3, "cost_pressure": -1}`))
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, "NEGATIVE_VALUE", m.Code)
	}
}

func TestDeliveryBreakdownOver100(t *testing.T) {
	h, _ := Get("update_efficiencies")
	state := model.DefaultSnapshot()

	msgs := h.Validate(&state, edit("update_efficiencies", `{"delivery": {"ongoing": 90, "one_off": 8, "undelivered": 15}}`))
	require.Len(t, msgs, 1)
	assert.Equal(t, "DELIVERY_EXCEEDS_100", msgs[0].Code)
}

func TestSetThresholds(t *testing.T) {
	h, _ := Get("set_thresholds")
	original := map[string]model.RagThresholds{"deficit": {Red: 8, Amber: 4, Polarity: model.Ascending}}
	state := model.DefaultSnapshot()
	state.Thresholds = original

	e := edit("set_thresholds", `{"reserves": {"red": 3, "amber": 9, "polarity": "descending"}, "uasc": {"red": 3, "amber": 1.5}}`)
	assert.Empty(t, h.Validate(&state, e))
	assert.Empty(t, h.Apply(&state, e))

	assert.Equal(t, model.RagThresholds{Red: 3, Amber: 9, Polarity: model.Descending}, state.Thresholds["reserves"])
	assert.Equal(t, model.Ascending, state.Thresholds["uasc"].Polarity)
	assert.Contains(t, state.Thresholds, "deficit")
	assert.Len(t, original, 1, "caller's map must not be modified")
}

func TestSetThresholdsKeepsFamilyPolarity(t *testing.T) {
	h, _ := Get("set_thresholds")
	state := model.DefaultSnapshot()
	state.Thresholds = map[string]model.RagThresholds{"custom": {Red: 1, Amber: 2, Polarity: model.Descending}}

	e := edit("set_thresholds", `{"reserves": {"red": 6, "amber": 12}, "custom": {"red": 3, "amber": 4}}`)
	assert.Empty(t, h.Validate(&state, e))
	assert.Empty(t, h.Apply(&state, e))

	assert.Equal(t, model.RagThresholds{Red: 6, Amber: 12, Polarity: model.Descending}, state.Thresholds["reserves"])
	assert.Equal(t, model.Descending, state.Thresholds["custom"].Polarity)
}

func TestSetThresholdsRejectsUnknownPolarity(t *testing.T) {
	h, _ := Get("set_thresholds")
	state := model.DefaultSnapshot()

	msgs := h.Validate(&state, edit("set_thresholds", `{"reserves": {"red": 3, "amber": 9, "polarity": "sideways"}}`))
	require.Len(t, msgs, 1)
	assert.Equal(t, "INVALID_POLARITY", msgs[0].Code)
}

func TestSetThresholdsWarnsWhenInverted(t *testing.T) {
	h, _ := Get("set_thresholds")
	state := model.DefaultSnapshot()

	msgs := h.Validate(&state, edit("set_thresholds", `{"deficit": {"red": 2, "amber": 5}}`))
	require.Len(t, msgs, 1)
	assert.Equal(t, "THRESHOLDS_INVERTED", msgs[0].Code)
}

func TestSetRefreshDate(t *testing.T) {
	h, _ := Get("set_refresh_date")
	state := model.DefaultSnapshot()

	bad := h.Validate(&state, edit("set_refresh_date", `{"refresh_date": "24/02/2026"}`))
	require.Len(t, bad, 1)
	assert.Equal(t, "INVALID_REFRESH_DATE", bad[0].Code)

	good := edit("set_refresh_date", `{"refresh_date": "2026-03-31"}`)
	assert.Empty(t, h.Validate(&state, good))
	h.Apply(&state, good)
	assert.Equal(t, "2026-03-31", state.RefreshDate)
}

func TestUnknownEdit(t *testing.T) {
	_, ok := Get("close_ledger")
	assert.False(t, ok)
}
