package disease

import "fmt"

// Disease identifies one of the supported screening targets
type Disease string

const (
	Diabetes     Disease = "diabetes"
	HeartDisease Disease = "heart_disease"
	Parkinsons   Disease = "parkinsons"
)

// All returns the supported diseases in menu order
func All() []Disease {
	return []Disease{Diabetes, HeartDisease, Parkinsons}
}

// Parse converts a raw identifier (typically a URL path segment) to a Disease
func Parse(s string) (Disease, error) {
	switch Disease(s) {
	case Diabetes, HeartDisease, Parkinsons:
		return Disease(s), nil
	}
	return "", fmt.Errorf("unknown disease: %q", s)
}

// definition carries the presentation data for one disease screen
type definition struct {
	title    string
	icon     string
	positive string
	negative string
}

var definitions = map[Disease]definition{
	Diabetes: {
		title:    "Diabetes Prediction",
		icon:     "activity",
		positive: "The person is diabetic",
		negative: "The person is not diabetic",
	},
	HeartDisease: {
		title:    "Heart Disease Prediction",
		icon:     "heart",
		positive: "The person is having heart disease",
		negative: "The person does not have any heart disease",
	},
	Parkinsons: {
		title:    "Parkinsons Prediction",
		icon:     "person",
		positive: "The person has Parkinson's disease",
		negative: "The person does not have Parkinson's disease",
	},
}

// Title returns the screen title for the disease
func (d Disease) Title() string {
	return definitions[d].title
}

// Icon returns the menu icon name used by the frontend
func (d Disease) Icon() string {
	return definitions[d].icon
}

// ResultMessage maps a binary class label to the display sentence
func (d Disease) ResultMessage(label int) string {
	if label == 1 {
		return definitions[d].positive
	}
	return definitions[d].negative
}
