package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
)

type normalizedPlaceOrder struct {
	OwnerID int64            `json:"ownerId"`
	Lines   []normalizedLine `json:"lines"`
}

type normalizedLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// FingerprintPlaceOrder hashes the placement request without its idempotency key.
// Line order is significant because it fixes the lock acquisition order.
func FingerprintPlaceOrder(ownerID int64, lines []ordertypes.LineInput) (string, error) {
	normalized := normalizedPlaceOrder{OwnerID: ownerID, Lines: make([]normalizedLine, 0, len(lines))}
	for _, line := range lines {
		normalized.Lines = append(normalized.Lines, normalizedLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
