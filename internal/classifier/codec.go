package classifier

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"
)

// FormatVersion is bumped whenever the artifact layout changes incompatibly
const FormatVersion = 1

// Artifact is the on-disk form of a trained model: the gob encoding of this
// struct is what a .model file contains.
type Artifact struct {
	Version int
	Name    string // disease identifier the model was trained for
	Kind    Kind
	Weights []float64
	Bias    float64
	Scaler  *Scaler
	Created time.Time
}

// Model builds the runnable classifier from the artifact
func (a *Artifact) Model() *LinearModel {
	return &LinearModel{
		Kind:    a.Kind,
		Weights: a.Weights,
		Bias:    a.Bias,
		Scaler:  a.Scaler,
	}
}

// Encode writes the artifact as gob
func Encode(w io.Writer, a *Artifact) error {
	if a.Version == 0 {
		a.Version = FormatVersion
	}
	if err := a.Model().validate(); err != nil {
		return fmt.Errorf("invalid artifact %q: %w", a.Name, err)
	}
	return gob.NewEncoder(w).Encode(a)
}

// Decode reads a gob artifact and rejects malformed or incompatible ones.
// A rejected artifact must leave the caller free to continue with the
// remaining models.
func Decode(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if a.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported artifact version %d (expected %d)", a.Version, FormatVersion)
	}
	if err := a.Model().validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Save writes the artifact to a file
func Save(path string, a *Artifact) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, a)
}

// Load reads an artifact from a file
func Load(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
