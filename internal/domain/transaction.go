package domain

// Decision values produced by the fraud classifier. Anything other than
// DecisionFraud is treated as legitimate; unknown values never fail a run.
const (
	DecisionFraud      = "fraud"
	DecisionLegitimate = "legitimate"
)

// DefaultConfidence is assumed when a prediction carries no confidence score.
const DefaultConfidence = 0.5

// GroundTruthRecord is one labeled transaction supplied per evaluation call.
// Records are never persisted individually.
type GroundTruthRecord struct {
	TransactionID string  `json:"transaction_id"`
	IsFraud       bool    `json:"is_fraud"`
	Amount        float64 `json:"amount"`
}

// PredictionRecord is one model output. It is paired with a GroundTruthRecord
// by position: index i of both collections refers to the same transaction.
type PredictionRecord struct {
	TransactionID string   `json:"transaction_id"`
	Decision      string   `json:"decision"`
	Confidence    *float64 `json:"confidence,omitempty"` // expected in [0,1], not enforced
}

// PredictedFraud reports whether the model flagged the transaction.
func (p *PredictionRecord) PredictedFraud() bool {
	return p.Decision == DecisionFraud
}

// ConfidenceOrDefault returns the confidence score, or DefaultConfidence
// when the field was absent from the input.
func (p *PredictionRecord) ConfidenceOrDefault() float64 {
	if p.Confidence == nil {
		return DefaultConfidence
	}
	return *p.Confidence
}

// LabeledBatch pairs ground truth with predictions for one evaluation run,
// e.g. one frame from a scoring-agent feed.
type LabeledBatch struct {
	GroundTruth []GroundTruthRecord `json:"ground_truth"`
	Predictions []PredictionRecord  `json:"predictions"`
}
