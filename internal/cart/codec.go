package cart

import (
	"encoding/json"
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
)

// StorageKey is the single key the cart is persisted under.
const StorageKey = "abbl-cart-storage"

// recordVersion is the current persisted schema version.
const recordVersion = 1

// record is the persisted form of the cart. Only items are stored.
type record struct {
	Version int               `json:"version"`
	Items   []domain.CartItem `json:"items"`

	// State is set by the legacy browser envelope {"state":{"items":[]},"version":0}.
	State *struct {
		Items []domain.CartItem `json:"items"`
	} `json:"state,omitempty"`
}

func encodeItems(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}

	data, err := json.Marshal(record{Version: recordVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return data, nil
}

// decodeItems reads a persisted record. A missing version is read as the
// current one; a newer version is rejected. The result holds at most one
// line per variant.
func decodeItems(data []byte) ([]domain.CartItem, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if r.Version > recordVersion {
		return nil, fmt.Errorf("record version[%d] is not supported", r.Version)
	}

	items := r.Items
	if r.State != nil {
		items = r.State.Items
	}

	// Lines for the same variant are merged by summing, as AddToCart does.
	merged := make([]domain.CartItem, 0, len(items))
	index := make(map[string]int, len(items))

	for i, item := range items {
		if item.VariantID == "" {
			return nil, fmt.Errorf("item[%d]: variantId is empty", i)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item[%s]: quantity[%d] is not positive", item.VariantID, item.Quantity)
		}

		if j, ok := index[item.VariantID]; ok {
			merged[j].Quantity += item.Quantity
			continue
		}
		index[item.VariantID] = len(merged)
		merged = append(merged, item)
	}

	return merged, nil
}
