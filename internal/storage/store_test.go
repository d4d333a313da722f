package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/kinema/internal/motion"
	"github.com/san-kum/kinema/internal/scenario"
)

func sampleResult() *scenario.Result {
	return &scenario.Result{
		Trace: []scenario.Sample{
			{T: 0.0, Value: 0.0, Velocity: 0.0, Status: motion.StatusForward},
			{T: 0.016667, Value: 0.05, Velocity: 3.0, Status: motion.StatusForward},
			{T: 0.033333, Value: 0.11, Velocity: 3.4, Status: motion.StatusCompleted},
		},
		Metrics: map[string]float64{"overshoot": 0.04},
		Settled: true,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("wobbly", "spring", 60, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Name != "wobbly" {
		t.Errorf("expected name 'wobbly', got '%s'", meta.Name)
	}
	if meta.FPS != 60 {
		t.Errorf("expected fps 60, got %d", meta.FPS)
	}
	if meta.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", meta.Samples)
	}
	if !meta.Settled {
		t.Error("expected settled run")
	}
	if meta.Metrics["overshoot"] != 0.04 {
		t.Errorf("expected overshoot 0.04, got %f", meta.Metrics["overshoot"])
	}

	times, values, velocities, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(times) != 3 || len(values) != 3 || len(velocities) != 3 {
		t.Errorf("expected 3 rows, got %d/%d/%d", len(times), len(values), len(velocities))
	}
	if values[2] != 0.11 {
		t.Errorf("expected final value 0.11, got %f", values[2])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("gentle", "spring", 60, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("gentle", "spring", 60, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(dir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "trace.csv")); os.IsNotExist(err) {
		t.Error("trace.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, "gentle", "spring", 60, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}
