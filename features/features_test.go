package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTemp(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want float64
	}{
		{"domain minimum", -8, 0.0},
		{"domain maximum", 41, 1.0},
		{"midpoint", 16.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeTemp(tt.temp), 1e-9)
		})
	}
}

func TestNormalizeTempNoClamping(t *testing.T) {
	// Out-of-domain inputs map outside [0,1] rather than saturating.
	assert.Less(t, NormalizeTemp(-20), 0.0)
	assert.Greater(t, NormalizeTemp(50), 1.0)
}

func TestNormalizeHumidity(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeHumidity(0))
	assert.Equal(t, 1.0, NormalizeHumidity(100))
	assert.InDelta(t, 0.5, NormalizeHumidity(50), 1e-9)
}

func TestNormalizeWindspeed(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeWindspeed(0))
	assert.Equal(t, 1.0, NormalizeWindspeed(67))
}

func TestVectorOrderAndValues(t *testing.T) {
	raw := Raw{
		Season:     1,
		Yr:         1,
		Mnth:       1,
		Hr:         10,
		Weekday:    3,
		Weathersit: 2,
		Temp:       10,
		Hum:        50,
		Windspeed:  0,
		Holiday:    false,
		Workingday: true,
	}

	v := raw.Vector(BasisNormalized)
	assert.Len(t, v, VectorLen)

	tempN := NormalizeTemp(10)
	humN := NormalizeHumidity(50)

	assert.Equal(t, []float64{
		1, 1, 1, 10, 3, 2,
		tempN, humN, 0,
		0, 1,
		tempN * 2,
		tempN * humN,
	}, v)
}

func TestVectorRawBasis(t *testing.T) {
	raw := Raw{Season: 2, Yr: 1, Mnth: 6, Hr: 8, Weekday: 1, Weathersit: 3, Temp: 20, Hum: 80, Windspeed: 13.4, Workingday: true}

	v := raw.Vector(BasisRaw)

	// Base features stay normalized; only the interaction terms switch basis.
	assert.InDelta(t, NormalizeTemp(20), v[6], 1e-9)
	assert.InDelta(t, NormalizeHumidity(80), v[7], 1e-9)
	assert.InDelta(t, 20.0*3.0, v[11], 1e-9)
	assert.InDelta(t, 20.0*80.0, v[12], 1e-9)
}
