// Package classifier implements the loaded, in-memory form of a model
// artifact: a binary linear decision model with an optional embedded
// standardization step. Both supported algorithm kinds share the same
// decision function d = w.x + b with label 1 iff d > 0; they differ only in
// how the reported score is derived.
package classifier

import (
	"fmt"
	"math"
)

// Kind names the training algorithm an artifact came from
type Kind string

const (
	// KindLogistic is a logistic regression model; the score is sigmoid(d).
	KindLogistic Kind = "logistic"
	// KindLinearSVM is a linear support vector machine; the score is the raw margin.
	KindLinearSVM Kind = "linear_svm"
)

func (k Kind) valid() bool {
	return k == KindLogistic || k == KindLinearSVM
}

// Scaler standardizes a feature vector the way the model's training data was
// standardized: x' = (x - Mean) / Scale, element-wise.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

func (s *Scaler) apply(features []float64) []float64 {
	scaled := make([]float64, len(features))
	for i, v := range features {
		div := s.Scale[i]
		if div == 0 {
			div = 1
		}
		scaled[i] = (v - s.Mean[i]) / div
	}
	return scaled
}

// LinearModel is a loaded binary classifier. It is immutable after
// construction; Predict never mutates it, so a single instance can serve
// any number of requests.
type LinearModel struct {
	Kind    Kind
	Weights []float64
	Bias    float64
	Scaler  *Scaler
}

// DimensionError reports a feature vector whose length does not match the
// model's trained feature count. Submitting a mismatched vector is a caller
// error but must never crash the process.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("feature vector has %d values, model expects %d", e.Got, e.Want)
}

// Features returns the feature vector length the model was trained on
func (m *LinearModel) Features() int {
	return len(m.Weights)
}

// Predict runs inference on a single feature vector and returns the binary
// class label (0 or 1) together with a score. For logistic models the score
// is the positive-class probability; for linear SVM models it is the signed
// distance from the separating hyperplane.
func (m *LinearModel) Predict(features []float64) (int, float64, error) {
	if len(features) != len(m.Weights) {
		return 0, 0, &DimensionError{Want: len(m.Weights), Got: len(features)}
	}

	x := features
	if m.Scaler != nil {
		x = m.Scaler.apply(features)
	}

	decision := m.Bias
	for i, w := range m.Weights {
		decision += w * x[i]
	}

	label := 0
	if decision > 0 {
		label = 1
	}

	score := decision
	if m.Kind == KindLogistic {
		score = sigmoid(decision)
	}
	return label, score, nil
}

func sigmoid(d float64) float64 {
	return 1 / (1 + math.Exp(-d))
}

// validate checks structural invariants shared by Decode and the pack tools
func (m *LinearModel) validate() error {
	if !m.Kind.valid() {
		return fmt.Errorf("unknown model kind %q", m.Kind)
	}
	if len(m.Weights) == 0 {
		return fmt.Errorf("model has no weights")
	}
	if m.Scaler != nil {
		if len(m.Scaler.Mean) != len(m.Weights) || len(m.Scaler.Scale) != len(m.Weights) {
			return fmt.Errorf("scaler length %d/%d does not match %d weights",
				len(m.Scaler.Mean), len(m.Scaler.Scale), len(m.Weights))
		}
	}
	for i, w := range m.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight %d is not finite", i)
		}
	}
	return nil
}
