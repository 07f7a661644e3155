package validation

import (
	"net/http/httptest"
	"testing"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    domain.Mode
		wantErr bool
	}{
		{"absent uses default", "/api/v1/timeseries", domain.ModeHourly, false},
		{"five minute", "/api/v1/timeseries?mode=5min", domain.ModeFiveMinute, false},
		{"hourly", "/api/v1/timeseries?mode=hourly", domain.ModeHourly, false},
		{"padded", "/api/v1/timeseries?mode=%205min%20", domain.ModeFiveMinute, false},
		{"unknown", "/api/v1/timeseries?mode=daily", "", true},
		{"wrong case", "/api/v1/timeseries?mode=Hourly", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := ParseMode(httptest.NewRequest("GET", tt.target, nil), domain.ModeHourly)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidMode)
				var fields *apperrors.ValidationErrors
				require.ErrorAs(t, err, &fields)
				assert.Equal(t, []string{"Must be one of: 5min, hourly"}, fields.Errors["mode"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := NewValidator().
		OneOf("mode", "5min", []string{"5min", "hourly"}).
		OneOf("empty", "", []string{"x"})
	assert.False(t, v.HasErrors())

	v.OneOf("mode", "weekly", []string{"5min", "hourly"})
	require.True(t, v.HasErrors())
	assert.Equal(t, []string{"Must be one of: 5min, hourly"}, v.Errors().Errors["mode"])
}
