package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// ComputeTransactionID computes a deterministic transaction_id using SHA256.
// Formula: SHA256(dataset_id|sequence|amount_cents)
// Returns hex-encoded hash (64 characters).
func ComputeTransactionID(datasetID string, sequence int64, amountCents int64) string {
	data := fmt.Sprintf("%s|%d|%d", datasetID, sequence, amountCents)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ShortTransactionID returns a compact base58 form of the same hash,
// suitable for log lines and generated datasets.
func ShortTransactionID(datasetID string, sequence int64, amountCents int64) string {
	data := fmt.Sprintf("%s|%d|%d", datasetID, sequence, amountCents)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:16])
}
