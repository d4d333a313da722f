package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/kinema/internal/scenario"
)

type ExportData struct {
	Name       string             `json:"name"`
	Law        string             `json:"law"`
	FPS        int                `json:"fps"`
	Samples    int                `json:"samples"`
	Settled    bool               `json:"settled"`
	Times      []float64          `json:"times"`
	Values     []float64          `json:"values"`
	Velocities []float64          `json:"velocities"`
	Statuses   []string           `json:"statuses"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(name, law string, fps int, result *scenario.Result) ExportData {
	data := ExportData{
		Name:       name,
		Law:        law,
		FPS:        fps,
		Samples:    len(result.Trace),
		Settled:    result.Settled,
		Times:      make([]float64, len(result.Trace)),
		Values:     make([]float64, len(result.Trace)),
		Velocities: make([]float64, len(result.Trace)),
		Statuses:   make([]string, len(result.Trace)),
		Metrics:    result.Metrics,
	}
	for i, s := range result.Trace {
		data.Times[i] = s.T
		data.Values[i] = s.Value
		data.Velocities[i] = s.Velocity
		data.Statuses[i] = s.Status.String()
	}
	return data
}

func ExportJSON(path, name, law string, fps int, result *scenario.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, name, law, fps, result)
}

func ExportJSONStdout(name, law string, fps int, result *scenario.Result) error {
	return writeJSON(os.Stdout, name, law, fps, result)
}

func writeJSON(w io.Writer, name, law string, fps int, result *scenario.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(name, law, fps, result))
}
