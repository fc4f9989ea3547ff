// Package features rescales raw weather inputs into the ranges the model was
// trained on and assembles the fixed-order feature vector it consumes.
package features

// InteractionBasis selects which temp/humidity values feed the two interaction
// terms. The trainer historically used raw values while the serving path used
// normalized ones; both are supported so the skew can be reconciled deliberately.
type InteractionBasis int

const (
	// BasisNormalized multiplies the rescaled temp/humidity (serving default).
	BasisNormalized InteractionBasis = iota
	// BasisRaw multiplies the values as supplied (training default).
	BasisRaw
)

// VectorLen is the number of features the model consumes.
const VectorLen = 13

// NormalizeTemp rescales a Celsius temperature from [-8, 41] to [0, 1].
// Out-of-domain inputs are not clamped and map outside [0, 1].
func NormalizeTemp(t float64) float64 {
	return (t + 8) / 49
}

// NormalizeHumidity rescales a percentage humidity to [0, 1].
func NormalizeHumidity(h float64) float64 {
	return h / 100
}

// NormalizeWindspeed rescales a windspeed against the dataset maximum of 67.
func NormalizeWindspeed(w float64) float64 {
	return w / 67
}

// Raw carries the eleven model inputs as the client supplied them.
type Raw struct {
	Season     float64
	Yr         float64
	Mnth       float64
	Hr         float64
	Weekday    float64
	Weathersit float64
	Temp       float64
	Hum        float64
	Windspeed  float64
	Holiday    bool
	Workingday bool
}

// Vector assembles the 13-value input in training order:
// season, yr, mnth, hr, weekday, weathersit, temp, hum, windspeed (last three
// normalized), holiday, workingday, temp*weathersit, temp*hum.
func (r Raw) Vector(basis InteractionBasis) []float64 {
	tempN := NormalizeTemp(r.Temp)
	humN := NormalizeHumidity(r.Hum)
	windN := NormalizeWindspeed(r.Windspeed)

	interTemp, interHum := tempN, humN
	if basis == BasisRaw {
		interTemp, interHum = r.Temp, r.Hum
	}

	return []float64{
		r.Season,
		r.Yr,
		r.Mnth,
		r.Hr,
		r.Weekday,
		r.Weathersit,
		tempN,
		humN,
		windN,
		boolToFloat(r.Holiday),
		boolToFloat(r.Workingday),
		interTemp * r.Weathersit,
		interTemp * interHum,
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
