package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		prob           float64
		wantDisease    string
		wantStatus     string
		wantConfidence float64
	}{
		{"clearly infected", 0.92, DiseaseYellowLeaf, StatusInfected, 92.0},
		{"clearly healthy", 0.08, DiseaseHealthyLeaf, StatusHealthy, 92.0},
		{"exactly at threshold counts as healthy", 0.5, DiseaseHealthyLeaf, StatusHealthy, 50.0},
		{"just above threshold", 0.5001, DiseaseYellowLeaf, StatusInfected, 50.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := classify(tt.prob, DiseaseYellowLeaf, DiseaseHealthyLeaf)
			assert.Equal(t, tt.wantDisease, r.Disease)
			assert.Equal(t, tt.wantStatus, r.Status)
			assert.InDelta(t, tt.wantConfidence, r.Confidence, 0.001)
		})
	}
}

func TestPrimaryPicksHighestInfected(t *testing.T) {
	d := &Diagnosis{
		YellowLeaf: &ModelResult{Disease: DiseaseYellowLeaf, Confidence: 72.5, Status: StatusInfected},
		FruitRot:   &ModelResult{Disease: DiseaseFruitRot, Confidence: 88.0, Status: StatusInfected},
	}

	disease, confidence := d.Primary()
	assert.Equal(t, DiseaseFruitRot, disease)
	assert.InDelta(t, 88.0, confidence, 0.001)
}

func TestPrimaryAllHealthy(t *testing.T) {
	d := &Diagnosis{
		YellowLeaf: &ModelResult{Disease: DiseaseHealthyLeaf, Confidence: 95.0, Status: StatusHealthy},
		FruitRot:   &ModelResult{Disease: DiseaseHealthyFruit, Confidence: 81.0, Status: StatusHealthy},
	}

	disease, confidence := d.Primary()
	assert.Equal(t, DiseaseHealthy, disease)
	assert.InDelta(t, 95.0, confidence, 0.001)
}

func TestPrimarySingleModel(t *testing.T) {
	d := &Diagnosis{
		FruitRot: &ModelResult{Disease: DiseaseFruitRot, Confidence: 66.0, Status: StatusInfected},
	}

	disease, confidence := d.Primary()
	assert.Equal(t, DiseaseFruitRot, disease)
	assert.InDelta(t, 66.0, confidence, 0.001)
}

func TestRecommendationSeverity(t *testing.T) {
	tests := []struct {
		name         string
		disease      string
		confidence   float64
		wantSeverity string
	}{
		{"yellow leaf mild", DiseaseYellowLeaf, 70, "mild"},
		{"yellow leaf moderate", DiseaseYellowLeaf, 90, "moderate"},
		{"fruit rot moderate", DiseaseFruitRot, 80, "moderate"},
		{"fruit rot severe", DiseaseFruitRot, 95, "severe"},
		{"healthy has no severity", DiseaseHealthy, 99, "None"},
		{"unknown falls back to healthy", "Stem Bleeding", 99, "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RecommendationFor(tt.disease, tt.confidence)
			assert.Equal(t, tt.wantSeverity, rec.Severity)
			assert.NotEmpty(t, rec.Treatment)
			assert.NotEmpty(t, rec.Preventive)
		})
	}
}

func TestValidateImageAlwaysPasses(t *testing.T) {
	v := ValidateImage(make([]float32, InputSize))
	assert.True(t, v.IsValid)
	assert.InDelta(t, 75.0, v.Confidence, 0.001)
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind("yellow_leaf"))
	assert.True(t, ValidKind("fruit_rot"))
	assert.True(t, ValidKind("both"))
	assert.False(t, ValidKind("stem_bleeding"))
	assert.False(t, ValidKind(""))
}
