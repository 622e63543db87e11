package classifier

// Disease names reported by the classifier.
const (
	DiseaseYellowLeaf   = "Yellow Leaf Disease"
	DiseaseFruitRot     = "Fruit Rot (Koleroga)"
	DiseaseHealthy      = "Healthy"
	DiseaseHealthyLeaf  = "Healthy Leaf"
	DiseaseHealthyFruit = "Healthy Fruit"
)

// Infection status labels.
const (
	StatusInfected = "Infected"
	StatusHealthy  = "Healthy"
)

// ModelResult is the outcome of a single model's inference on an image.
type ModelResult struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
}

// Validation describes the outcome of the image content pre-check.
type Validation struct {
	IsValid    bool    `json:"is_valid"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Diagnosis aggregates per-model results for one uploaded image. A nil
// entry means that model was not run for the requested detection type.
type Diagnosis struct {
	Validation Validation   `json:"validation"`
	YellowLeaf *ModelResult `json:"yellow_leaf,omitempty"`
	FruitRot   *ModelResult `json:"fruit_rot,omitempty"`
}

// Recommendation carries the treatment advice attached to a diagnosis.
type Recommendation struct {
	Treatment  string
	Severity   string
	Preventive string
}

// ValidateImage is the image content pre-check. Color heuristics proved
// unreliable at telling diseased plant tissue apart from brown or beige
// non-plant objects, so the check always passes and the UI carries a
// warning instead. A plant-vs-non-plant binary classifier would be the
// real fix here.
func ValidateImage(sample []float32) Validation {
	return Validation{
		IsValid:    true,
		Confidence: 75.0,
		Reason:     "Image validation bypassed - user responsibility",
	}
}

// Diagnose runs the requested models against a preprocessed sample and
// classifies each result against the infection threshold. Confidence is
// reported as a percentage for whichever side of the threshold won.
func (c *Classifier) Diagnose(sample []float32, kind DiseaseKind) (*Diagnosis, error) {
	d := &Diagnosis{Validation: ValidateImage(sample)}

	if kind == YellowLeaf || kind == Both {
		prob, err := c.Predict(sample, YellowLeaf)
		if err != nil {
			return nil, err
		}
		d.YellowLeaf = classify(float64(prob), DiseaseYellowLeaf, DiseaseHealthyLeaf)
	}

	if kind == FruitRot || kind == Both {
		prob, err := c.Predict(sample, FruitRot)
		if err != nil {
			return nil, err
		}
		d.FruitRot = classify(float64(prob), DiseaseFruitRot, DiseaseHealthyFruit)
	}

	return d, nil
}

func classify(prob float64, infected, healthy string) *ModelResult {
	if prob > InfectionThreshold {
		return &ModelResult{
			Disease:    infected,
			Confidence: round2(prob * 100),
			Status:     StatusInfected,
		}
	}
	return &ModelResult{
		Disease:    healthy,
		Confidence: round2((1 - prob) * 100),
		Status:     StatusHealthy,
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// Primary picks the overall verdict for a diagnosis: the infected result
// with the highest confidence, or Healthy with the best healthy confidence
// when neither model flagged an infection.
func (d *Diagnosis) Primary() (disease string, confidence float64) {
	maxConfidence := 0.0
	for _, r := range []*ModelResult{d.YellowLeaf, d.FruitRot} {
		if r == nil {
			continue
		}
		if r.Status == StatusInfected && r.Confidence > maxConfidence {
			maxConfidence = r.Confidence
			disease = r.Disease
		}
	}
	if disease != "" {
		return disease, maxConfidence
	}

	for _, r := range []*ModelResult{d.YellowLeaf, d.FruitRot} {
		if r != nil && r.Confidence > confidence {
			confidence = r.Confidence
		}
	}
	return DiseaseHealthy, confidence
}

// RecommendationFor returns the treatment advice for a disease verdict.
// Severity escalates with confidence for the two known diseases; anything
// unrecognized is treated as healthy.
func RecommendationFor(disease string, confidence float64) Recommendation {
	switch disease {
	case DiseaseYellowLeaf:
		severity := "mild"
		if confidence > 85 {
			severity = "moderate"
		}
		return Recommendation{
			Treatment:  "Apply Bordeaux mixture (1%) or Copper oxychloride (0.3%). Ensure proper drainage and avoid waterlogging.",
			Severity:   severity,
			Preventive: "Maintain soil pH between 5.5-6.5. Apply organic manure regularly. Ensure adequate spacing between plants.",
		}
	case DiseaseFruitRot:
		severity := "moderate"
		if confidence > 90 {
			severity = "severe"
		}
		return Recommendation{
			Treatment:  "Spray Carbendazim (0.1%) or Mancozeb (0.25%). Remove and destroy infected fruits immediately.",
			Severity:   severity,
			Preventive: "Improve air circulation. Avoid overhead irrigation. Apply prophylactic sprays during monsoon.",
		}
	default:
		return Recommendation{
			Treatment:  "No treatment required. Your crop looks healthy!",
			Severity:   "None",
			Preventive: "Continue regular monitoring. Maintain good cultural practices.",
		}
	}
}
