// Package predict maps a disease and an ordered feature vector to a screening
// outcome. The dispatcher holds no state of its own: every call resolves the
// classifier through its Source, runs it, and translates the binary label into
// the fixed result sentence for that disease.
package predict

import (
	"errors"
	"fmt"

	"github.com/cliniclab/medscreen/internal/classifier"
	"github.com/cliniclab/medscreen/internal/disease"
)

// ErrModelUnavailable is returned when the requested disease has no loaded
// classifier. Callers distinguish it from input errors with errors.Is.
var ErrModelUnavailable = errors.New("model unavailable")

// Classifier scores one ordered feature vector
type Classifier interface {
	Predict(features []float64) (label int, score float64, err error)
}

// Source resolves the classifier for a disease, reporting false when none is
// loaded. The model store satisfies this through a small adapter; tests
// substitute fakes.
type Source interface {
	Classifier(d disease.Disease) (Classifier, bool)
}

// SourceFunc adapts a lookup function to the Source interface
type SourceFunc func(d disease.Disease) (Classifier, bool)

func (f SourceFunc) Classifier(d disease.Disease) (Classifier, bool) {
	return f(d)
}

// ModelLookup is the slice of the model store the dispatcher needs
type ModelLookup interface {
	Model(d disease.Disease) (*classifier.LinearModel, bool)
}

// StoreSource adapts a model store to the Source interface
func StoreSource(lookup ModelLookup) Source {
	return SourceFunc(func(d disease.Disease) (Classifier, bool) {
		m, ok := lookup.Model(d)
		if !ok {
			return nil, false
		}
		return m, true
	})
}

// Result is one completed screening outcome
type Result struct {
	Disease  disease.Disease
	Label    int
	Positive bool
	Score    float64
	Message  string
}

// Dispatcher routes prediction requests to the classifier for each disease
type Dispatcher struct {
	source Source
}

// New returns a dispatcher backed by the given classifier source
func New(source Source) *Dispatcher {
	return &Dispatcher{source: source}
}

// Predict runs the classifier for d on features. It never attempts inference
// when the model is unavailable, and it passes classifier errors such as a
// feature count mismatch through unchanged. Predict is safe for concurrent
// use and the same inputs always produce the same result.
func (dp *Dispatcher) Predict(d disease.Disease, features []float64) (*Result, error) {
	if _, err := disease.Parse(string(d)); err != nil {
		return nil, err
	}

	clf, ok := dp.source.Classifier(d)
	if !ok {
		return nil, fmt.Errorf("%s: %w", d, ErrModelUnavailable)
	}

	label, score, err := clf.Predict(features)
	if err != nil {
		return nil, err
	}

	return &Result{
		Disease:  d,
		Label:    label,
		Positive: label == 1,
		Score:    score,
		Message:  d.ResultMessage(label),
	}, nil
}
