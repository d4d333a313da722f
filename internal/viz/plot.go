package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinema/internal/scenario"
)

// PlotTrace renders a finished run as a static chart with a metrics footer.
func PlotTrace(name string, result *scenario.Result) string {
	values := make([]float64, len(result.Trace))
	velocities := make([]float64, len(result.Trace))
	for i, s := range result.Trace {
		values[i] = s.Value
		velocities[i] = s.Velocity
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(name)) + "\n")

	if len(result.Trace) == 0 {
		b.WriteString("(empty trace)\n")
		return b.String()
	}

	if len(values) > 1 {
		b.WriteString(asciigraph.Plot(values,
			asciigraph.Height(12), asciigraph.Width(72), asciigraph.Caption("value")) + "\n\n")
		b.WriteString(asciigraph.Plot(velocities,
			asciigraph.Height(6), asciigraph.Width(72), asciigraph.Caption("velocity")) + "\n\n")
	}

	last := result.Trace[len(result.Trace)-1]
	b.WriteString(fmt.Sprintf("samples: %d  duration: %.3fs  settled: %v  final: %.4f\n",
		len(result.Trace), last.T, result.Settled, last.Value))
	for name, val := range result.Metrics {
		b.WriteString(fmt.Sprintf("  %s: %.4f\n", name, val))
	}
	return b.String()
}
