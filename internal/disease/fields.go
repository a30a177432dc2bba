package disease

// Field describes one numeric form input. Min and Max are nil when the
// dataset places no bound on that side (e.g. parkinsons spread1 is negative).
type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Default float64  `json:"default"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    float64  `json:"step"`
}

func bound(v float64) *float64 { return &v }

// Fields returns the ordered input fields for the disease. The order is the
// feature order the corresponding classifier was trained on; callers must
// not reorder it when assembling a feature vector.
func (d Disease) Fields() []Field {
	return fieldSpecs[d]
}

// FeatureCount returns the expected feature vector length for the disease
func (d Disease) FeatureCount() int {
	return len(fieldSpecs[d])
}

var fieldSpecs = map[Disease][]Field{
	Diabetes: {
		{Name: "pregnancies", Label: "Number of Pregnancies", Default: 2, Min: bound(0), Step: 1},
		{Name: "glucose", Label: "Glucose Level", Default: 120, Min: bound(0), Step: 1},
		{Name: "blood_pressure", Label: "Blood Pressure", Default: 70, Min: bound(0), Step: 1},
		{Name: "skin_thickness", Label: "Skin Thickness", Default: 20, Min: bound(0), Step: 1},
		{Name: "insulin", Label: "Insulin Level", Default: 79, Min: bound(0), Step: 1},
		{Name: "bmi", Label: "BMI", Default: 28, Min: bound(0), Step: 0.1},
		{Name: "diabetes_pedigree", Label: "Diabetes Pedigree Function", Default: 0.5, Min: bound(0), Step: 0.01},
		{Name: "age", Label: "Age", Default: 45, Min: bound(0), Step: 1},
	},
	HeartDisease: {
		{Name: "age", Label: "Age", Default: 54, Min: bound(0), Step: 1},
		{Name: "sex", Label: "Sex (0 = female, 1 = male)", Default: 1, Min: bound(0), Max: bound(1), Step: 1},
		{Name: "chest_pain", Label: "Chest Pain type (0-3)", Default: 3, Min: bound(0), Max: bound(3), Step: 1},
		{Name: "resting_bp", Label: "Resting Blood Pressure", Default: 130, Min: bound(0), Step: 1},
		{Name: "cholesterol", Label: "Serum Cholesterol (mg/dl)", Default: 250, Min: bound(0), Step: 1},
		{Name: "fasting_blood_sugar", Label: "Fasting Blood Sugar > 120 mg/dl (0/1)", Default: 0, Min: bound(0), Max: bound(1), Step: 1},
		{Name: "rest_ecg", Label: "Resting ECG result", Default: 1, Min: bound(0), Max: bound(2), Step: 1},
		{Name: "max_heart_rate", Label: "Maximum Heart Rate achieved", Default: 150, Min: bound(0), Step: 1},
		{Name: "exercise_angina", Label: "Exercise Induced Angina (0/1)", Default: 0, Min: bound(0), Max: bound(1), Step: 1},
		{Name: "st_depression", Label: "ST depression induced by exercise", Default: 1, Min: bound(0), Step: 0.1},
		{Name: "st_slope", Label: "Slope of the peak exercise ST segment", Default: 2, Min: bound(0), Max: bound(2), Step: 1},
		{Name: "major_vessels", Label: "Major vessels colored by flourosopy (0-3)", Default: 0, Min: bound(0), Max: bound(3), Step: 1},
		{Name: "thalassemia", Label: "Thalassemia (0 normal, 1 fixed defect, 2 reversible defect)", Default: 2, Min: bound(0), Max: bound(2), Step: 1},
	},
	Parkinsons: {
		{Name: "mdvp_fo", Label: "MDVP:Fo(Hz)", Default: 119.992, Min: bound(0), Step: 0.001},
		{Name: "mdvp_fhi", Label: "MDVP:Fhi(Hz)", Default: 157.302, Min: bound(0), Step: 0.001},
		{Name: "mdvp_flo", Label: "MDVP:Flo(Hz)", Default: 74.997, Min: bound(0), Step: 0.001},
		{Name: "jitter_percent", Label: "MDVP:Jitter(%)", Default: 0.00784, Min: bound(0), Step: 0.000001},
		{Name: "jitter_abs", Label: "MDVP:Jitter(Abs)", Default: 0.00007, Min: bound(0), Step: 0.0000001},
		{Name: "jitter_rap", Label: "MDVP:RAP", Default: 0.0037, Min: bound(0), Step: 0.000001},
		{Name: "jitter_ppq", Label: "MDVP:PPQ", Default: 0.00401, Min: bound(0), Step: 0.000001},
		{Name: "jitter_ddp", Label: "Jitter:DDP", Default: 0.00631, Min: bound(0), Step: 0.000001},
		{Name: "shimmer", Label: "MDVP:Shimmer", Default: 0.24, Min: bound(0), Step: 0.01},
		{Name: "shimmer_db", Label: "MDVP:Shimmer(dB)", Default: 2, Min: bound(0), Step: 0.1},
		{Name: "shimmer_apq3", Label: "Shimmer:APQ3", Default: 0.11, Min: bound(0), Step: 0.01},
		{Name: "shimmer_apq5", Label: "Shimmer:APQ5", Default: 0.16, Min: bound(0), Step: 0.01},
		{Name: "mdvp_apq", Label: "MDVP:APQ", Default: 0.14, Min: bound(0), Step: 0.01},
		{Name: "shimmer_dda", Label: "Shimmer:DDA", Default: 0.17, Min: bound(0), Step: 0.01},
		{Name: "nhr", Label: "NHR", Default: 0.022, Min: bound(0), Step: 0.0001},
		{Name: "hnr", Label: "HNR", Default: 21, Min: bound(0), Step: 0.1},
		{Name: "rpde", Label: "RPDE", Default: 0.65, Min: bound(0), Step: 0.01},
		{Name: "dfa", Label: "DFA", Default: 0.71, Min: bound(0), Step: 0.01},
		{Name: "spread1", Label: "spread1", Default: -4, Step: 0.1},
		{Name: "spread2", Label: "spread2", Default: 2, Step: 0.1},
		{Name: "d2", Label: "D2", Default: 2.1, Min: bound(0), Step: 0.01},
		{Name: "ppe", Label: "PPE", Default: 0.2, Min: bound(0), Step: 0.01},
	},
}
