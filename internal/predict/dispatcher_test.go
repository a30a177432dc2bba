package predict

import (
	"errors"
	"strings"
	"testing"

	"github.com/cliniclab/medscreen/internal/classifier"
	"github.com/cliniclab/medscreen/internal/disease"
)

// fakeClassifier returns canned outputs and counts invocations
type fakeClassifier struct {
	label int
	score float64
	err   error
	calls int
}

func (f *fakeClassifier) Predict(features []float64) (int, float64, error) {
	f.calls++
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.label, f.score, nil
}

// fakeSource serves classifiers from a map, absent diseases report false
type fakeSource map[disease.Disease]Classifier

func (f fakeSource) Classifier(d disease.Disease) (Classifier, bool) {
	c, ok := f[d]
	return c, ok
}

// diabetesModel builds a real 8-feature logistic model so dispatcher tests
// exercise the same classifier type production uses
func diabetesModel() *classifier.LinearModel {
	return &classifier.LinearModel{
		Kind:    classifier.KindLogistic,
		Weights: []float64{0.12, 0.035, -0.013, 0.001, -0.0012, 0.09, 0.95, 0.015},
		Bias:    -8.4,
	}
}

func TestPredictDiabetesVector(t *testing.T) {
	dp := New(fakeSource{disease.Diabetes: diabetesModel()})

	features := []float64{6, 148, 72, 35, 0, 33.6, 0.627, 50}
	result, err := dp.Predict(disease.Diabetes, features)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if result.Disease != disease.Diabetes {
		t.Errorf("Expected diabetes result, got %s", result.Disease)
	}
	if result.Message != "The person is diabetic" && result.Message != "The person is not diabetic" {
		t.Errorf("Result message %q is not a diabetes outcome", result.Message)
	}
	if result.Positive != (result.Label == 1) {
		t.Errorf("Positive flag disagrees with label: %+v", result)
	}
}

func TestPredictMessageMapping(t *testing.T) {
	tests := []struct {
		label   int
		message string
	}{
		{1, "The person is having heart disease"},
		{0, "The person does not have any heart disease"},
	}

	for _, tt := range tests {
		dp := New(fakeSource{disease.HeartDisease: &fakeClassifier{label: tt.label, score: 0.5}})
		result, err := dp.Predict(disease.HeartDisease, make([]float64, 13))
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if result.Message != tt.message {
			t.Errorf("Label %d: expected %q, got %q", tt.label, tt.message, result.Message)
		}
	}
}

func TestPredictModelUnavailable(t *testing.T) {
	heart := &fakeClassifier{label: 1, score: 0.9}
	dp := New(fakeSource{
		disease.Diabetes:   &fakeClassifier{label: 0, score: 0.2},
		disease.Parkinsons: &fakeClassifier{label: 1, score: 0.8},
	})

	_, err := dp.Predict(disease.HeartDisease, make([]float64, 13))
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("Expected ErrModelUnavailable, got %v", err)
	}
	if heart.calls != 0 {
		t.Errorf("No inference should run for an absent model, got %d calls", heart.calls)
	}

	// The two loaded diseases keep working
	if _, err := dp.Predict(disease.Diabetes, make([]float64, 8)); err != nil {
		t.Errorf("Diabetes prediction should still work: %v", err)
	}
	if _, err := dp.Predict(disease.Parkinsons, make([]float64, 22)); err != nil {
		t.Errorf("Parkinsons prediction should still work: %v", err)
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	dp := New(fakeSource{disease.Diabetes: diabetesModel()})

	_, err := dp.Predict(disease.Diabetes, []float64{1, 2, 3})
	var dimErr *classifier.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Expected DimensionError, got %v", err)
	}
	if dimErr.Want != 8 || dimErr.Got != 3 {
		t.Errorf("Expected want=8 got=3, got %+v", dimErr)
	}

	// The dispatcher stays serviceable after a rejected request
	if _, err := dp.Predict(disease.Diabetes, []float64{6, 148, 72, 35, 0, 33.6, 0.627, 50}); err != nil {
		t.Errorf("Predict should succeed after a mismatch: %v", err)
	}
}

func TestPredictUnknownDisease(t *testing.T) {
	dp := New(fakeSource{})

	_, err := dp.Predict(disease.Disease("gout"), []float64{1})
	if err == nil {
		t.Fatal("Expected an error for an unknown disease")
	}
	if !strings.Contains(err.Error(), "unknown disease") {
		t.Errorf("Expected unknown disease error, got %v", err)
	}
	if errors.Is(err, ErrModelUnavailable) {
		t.Error("Unknown disease should not report as model unavailable")
	}
}

func TestPredictIdempotent(t *testing.T) {
	dp := New(fakeSource{disease.Diabetes: diabetesModel()})
	features := []float64{2, 120, 70, 20, 80, 28.1, 0.3, 33}

	first, err := dp.Predict(disease.Diabetes, features)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := dp.Predict(disease.Diabetes, features)
		if err != nil {
			t.Fatalf("Repeat predict failed: %v", err)
		}
		if *next != *first {
			t.Fatalf("Repeat %d diverged: %+v vs %+v", i, next, first)
		}
	}
}
