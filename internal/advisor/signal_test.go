package advisor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_MarshalJSON(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{action: ActionBuy, want: `"BUY"`},
		{action: ActionSell, want: `"SELL"`},
		{action: ActionHold, want: `"HOLD"`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.action)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestTimeframe_MarshalJSON(t *testing.T) {
	tests := []struct {
		tf   Timeframe
		want string
	}{
		{tf: TimeframeShort, want: `"短期"`},
		{tf: TimeframeMedium, want: `"中期"`},
		{tf: TimeframeImmediate, want: `"立即"`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.tf)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestRiskRating_MarshalJSON(t *testing.T) {
	tests := []struct {
		rating RiskRating
		want   string
	}{
		{rating: RiskRatingLow, want: `"低"`},
		{rating: RiskRatingMedium, want: `"中等"`},
		{rating: RiskRatingHigh, want: `"高"`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.rating)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestRiskProfile_Multiplier(t *testing.T) {
	tests := []struct {
		name    string
		profile RiskProfile
		want    float64
	}{
		{name: "low", profile: RiskLow, want: 0.5},
		{name: "medium", profile: RiskMedium, want: 1.0},
		{name: "high", profile: RiskHigh, want: 1.5},
		{name: "unknown falls back to medium", profile: RiskProfile("yolo"), want: 1.0},
		{name: "empty falls back to medium", profile: RiskProfile(""), want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.Multiplier())
		})
	}
}

func TestRiskProfile_Valid(t *testing.T) {
	assert.True(t, RiskLow.Valid())
	assert.True(t, RiskMedium.Valid())
	assert.True(t, RiskHigh.Valid())
	assert.False(t, RiskProfile("aggressive").Valid())
	assert.False(t, RiskProfile("").Valid())
	assert.False(t, RiskProfile("Medium").Valid())
}

func TestSignal_JSONShape(t *testing.T) {
	sig := Signal{
		Symbol:       "BTC",
		Name:         "Bitcoin",
		CurrentPrice: 65000,
		Action:       ActionBuy,
		Confidence:   80,
		Timeframe:    TimeframeShort,
		RiskLevel:    RiskRatingMedium,
		Disclaimer:   Disclaimer,
	}

	raw, err := json.Marshal(sig)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "BUY", decoded["action"])
	assert.Equal(t, "短期", decoded["timeframe"])
	assert.Equal(t, "中等", decoded["risk_level"])
	assert.Equal(t, Disclaimer, decoded["disclaimer"])
	assert.Contains(t, decoded, "investment_range")
	assert.Contains(t, decoded, "target_prices")
}
