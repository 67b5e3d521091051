package generation

import (
	"math/rand"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/idhash"
)

// Default generation parameters, matching the amounts typical of card fraud:
// legitimate purchases around $100, fraudulent charges around $1000.
const (
	DefaultNumTransactions      = 1000
	DefaultFraudRate            = 0.1
	DefaultBaseLegitimateAmount = 100.0
	DefaultBaseFraudAmount      = 1000.0
)

// Config controls synthetic dataset generation.
type Config struct {
	DatasetID            string
	NumTransactions      int
	FraudRate            float64 // target fraud share, [0,1]
	BaseLegitimateAmount float64
	BaseFraudAmount      float64
	Seed                 int64
}

// Generator produces labeled synthetic transaction batches together with
// simulated model output at a configurable accuracy. All randomness comes
// from a single seeded source, so runs are reproducible.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a generator, applying defaults for zero-value fields.
func NewGenerator(cfg Config) *Generator {
	if cfg.DatasetID == "" {
		cfg.DatasetID = "synthetic"
	}
	if cfg.NumTransactions <= 0 {
		cfg.NumTransactions = DefaultNumTransactions
	}
	if cfg.FraudRate <= 0 {
		cfg.FraudRate = DefaultFraudRate
	}
	if cfg.FraudRate > 1 {
		cfg.FraudRate = 1
	}
	if cfg.BaseLegitimateAmount <= 0 {
		cfg.BaseLegitimateAmount = DefaultBaseLegitimateAmount
	}
	if cfg.BaseFraudAmount <= 0 {
		cfg.BaseFraudAmount = DefaultBaseFraudAmount
	}

	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// GroundTruth generates the labeled transaction set. The first
// floor(n * fraud_rate) records are fraudulent; fraudulent amounts are
// inflated 3-10x, except a small share of deliberately tiny card tests.
func (g *Generator) GroundTruth() []domain.GroundTruthRecord {
	n := g.cfg.NumTransactions
	nFraud := int(float64(n) * g.cfg.FraudRate)

	records := make([]domain.GroundTruthRecord, 0, n)
	for i := 0; i < n; i++ {
		isFraud := i < nFraud

		var amount float64
		if isFraud {
			amount = g.cfg.BaseFraudAmount * (1 + 0.5*g.rng.NormFloat64())
			if amount < 1 {
				amount = 1
			}
			amount *= 3 + 7*g.rng.Float64()
			// 10% of fraud is tiny probe charges
			if g.rng.Float64() < 0.1 {
				amount = 0.01 + 0.99*g.rng.Float64()
			}
		} else {
			amount = g.cfg.BaseLegitimateAmount * (0.5 + g.rng.Float64())
		}

		records = append(records, domain.GroundTruthRecord{
			TransactionID: idhash.ComputeTransactionID(g.cfg.DatasetID, int64(i), int64(amount*100)),
			IsFraud:       isFraud,
			Amount:        roundCents(amount),
		})
	}

	return records
}

// SimulateModel produces predictions for the given ground truth at the given
// accuracy: each record is classified correctly with probability accuracy.
// Fraud calls carry high confidence, legitimate calls low, so a well-scoring
// model separates the classes on ranking curves too.
func (g *Generator) SimulateModel(gt []domain.GroundTruthRecord, accuracy float64) []domain.PredictionRecord {
	preds := make([]domain.PredictionRecord, 0, len(gt))
	for _, rec := range gt {
		correct := g.rng.Float64() < accuracy
		predictFraud := rec.IsFraud == correct

		decision := domain.DecisionLegitimate
		var confidence float64
		if predictFraud {
			decision = domain.DecisionFraud
			confidence = 0.75 + 0.24*g.rng.Float64()
		} else {
			confidence = 0.01 + 0.34*g.rng.Float64()
		}

		preds = append(preds, domain.PredictionRecord{
			TransactionID: rec.TransactionID,
			Decision:      decision,
			Confidence:    &confidence,
		})
	}

	return preds
}

// Batch generates a full labeled batch: ground truth plus simulated model
// output at the given accuracy.
func (g *Generator) Batch(accuracy float64) domain.LabeledBatch {
	gt := g.GroundTruth()
	return domain.LabeledBatch{
		GroundTruth: gt,
		Predictions: g.SimulateModel(gt, accuracy),
	}
}

func roundCents(amount float64) float64 {
	return float64(int64(amount*100+0.5)) / 100
}
