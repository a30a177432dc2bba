package classifier

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func testArtifact() *Artifact {
	return &Artifact{
		Name:    "diabetes",
		Kind:    KindLogistic,
		Weights: []float64{0.2, 0.04, -0.01, 0.001, -0.002, 0.09, 0.9, 0.03},
		Bias:    -6.5,
		Created: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testArtifact()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	a, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if a.Name != "diabetes" {
		t.Errorf("Expected name diabetes, got %q", a.Name)
	}
	if a.Kind != KindLogistic {
		t.Errorf("Expected logistic kind, got %q", a.Kind)
	}
	if a.Version != FormatVersion {
		t.Errorf("Expected version %d, got %d", FormatVersion, a.Version)
	}
	if len(a.Weights) != 8 {
		t.Errorf("Expected 8 weights, got %d", len(a.Weights))
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("definitely not gob"))); err == nil {
		t.Error("Expected error decoding garbage")
	}
}

func TestDecodeWrongVersion(t *testing.T) {
	a := testArtifact()
	a.Version = FormatVersion + 1

	// Encode normalizes Version 0 but passes non-zero versions through
	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Error("Expected version rejection")
	}
}

func TestEncodeRejectsEmptyWeights(t *testing.T) {
	a := testArtifact()
	a.Weights = nil
	if err := Encode(&bytes.Buffer{}, a); err == nil {
		t.Error("Expected error for artifact without weights")
	}
}

func TestDecodeRejectsScalerMismatch(t *testing.T) {
	a := testArtifact()
	a.Scaler = &Scaler{Mean: []float64{1, 2}, Scale: []float64{1, 1}}
	if err := Encode(&bytes.Buffer{}, a); err == nil {
		t.Error("Expected error for scaler/weights length mismatch")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diabetes.model")

	if err := Save(path, testArtifact()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	label, _, err := a.Model().Predict([]float64{6, 148, 72, 35, 0, 33.6, 0.627, 50})
	if err != nil {
		t.Fatalf("Predict on loaded model failed: %v", err)
	}
	if label != 0 && label != 1 {
		t.Errorf("Label must be binary, got %d", label)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.model")); err == nil {
		t.Error("Expected error for missing file")
	}
}
