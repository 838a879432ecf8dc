package reportviz

import "fmt"

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ColorForSeries assigns palette colors by series position, not by series name,
// so the same name can get a different color when series are reordered.
func ColorForSeries(index int) string {
	n := len(defaultColors)
	return defaultColors[(index%n+n)%n]
}

const (
	// MaxHeatIntensity keeps the hottest cell translucent so its label stays legible.
	MaxHeatIntensity = 0.85
	heatBaseRGB      = "79, 70, 229"
	NeutralHeatFill  = "#F3F4F6"
)

// heatFill maps a normalized intensity to a cell fill.
func heatFill(intensity float64) string {
	if intensity <= 0 {
		return NeutralHeatFill
	}
	return fmt.Sprintf("rgba(%s, %.2f)", heatBaseRGB, intensity)
}
