package avatar

// Metrics converts lengths expressed in display-independent units to
// physical pixels.
type Metrics interface {
	// DIPToPixels converts a length in density-independent pixels (dp).
	DIPToPixels(dp float64) float64
	// SPToPixels converts a length in scale-independent pixels (sp), used
	// for text sizes.
	SPToPixels(sp float64) float64
}

// DisplayMetrics describes a screen. Density is the number of physical
// pixels per dp (1 for a 160 dpi screen). ScaledDensity is Density
// multiplied by the font scale chosen by the user.
type DisplayMetrics struct {
	Density       float64
	ScaledDensity float64
}

// DefaultDisplayMetrics is a baseline screen, where 1dp = 1sp = 1px.
var DefaultDisplayMetrics = DisplayMetrics{Density: 1, ScaledDensity: 1}

// NewDisplayMetrics returns the metrics for a screen with the given density
// and font scale.
func NewDisplayMetrics(density, fontScale float64) DisplayMetrics {
	return DisplayMetrics{Density: density, ScaledDensity: density * fontScale}
}

// DIPToPixels implements Metrics.
func (m DisplayMetrics) DIPToPixels(dp float64) float64 {
	return dp * m.Density
}

// SPToPixels implements Metrics.
func (m DisplayMetrics) SPToPixels(sp float64) float64 {
	return sp * m.ScaledDensity
}

// resolve converts v with convert, except for the Auto sentinel and when no
// conversion is configured.
func resolve(v float64, convert func(float64) float64) float64 {
	if v < 0 || convert == nil {
		return v
	}
	return convert(v)
}
