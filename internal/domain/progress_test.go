package domain_test

import (
	"testing"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBMI(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		want     float64
		wantNil  bool
	}{
		{name: "reference case", weightKg: 76, heightCm: 175, want: 24.82},
		{name: "round half up", weightKg: 80, heightCm: 180, want: 24.69},
		{name: "tall light", weightKg: 55, heightCm: 190, want: 15.24},
		{name: "missing weight", weightKg: 0, heightCm: 175, wantNil: true},
		{name: "missing height", weightKg: 76, heightCm: 0, wantNil: true},
		{name: "negative height", weightKg: 76, heightCm: -175, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeBMI(tt.weightKg, tt.heightCm)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 0.001)
		})
	}
}
