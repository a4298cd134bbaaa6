package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole", 995, "995.00"},
		{"one decimal", 20.5, "20.50"},
		{"rounds up", 12.3456, "12.35"},
		{"half rounds away from zero", 0.125, "0.13"},
		{"negative", -10, "-10.00"},
		{"zero", 0, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("$1500.00")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, v)

	v, err = ParseAmount(" 12.35 ")
	require.NoError(t, err)
	assert.Equal(t, 12.35, v)

	_, err = ParseAmount("twelve")
	assert.Error(t, err)
}
