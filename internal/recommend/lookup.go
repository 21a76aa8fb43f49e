package recommend

import (
	"context"
	"math/rand"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

// CopingTypeName is the fixed category tag every lookup filters by.
const CopingTypeName = "焦燥"

// LookupCoping queries the coping reference table once per duration, picking
// one matching record uniformly at random. Durations with zero matches are
// silently omitted, so the result may be shorter than the input; its order
// follows the input duration order.
func LookupCoping(ctx context.Context, repo storage.CopingMasterRepository, bucket int, durations []int, rng *rand.Rand) ([]internal.CopingMaster, error) {
	var selected []internal.CopingMaster
	for _, duration := range durations {
		records, err := repo.FindCoping(ctx, CopingTypeName, bucket, duration)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}
		selected = append(selected, records[rng.Intn(len(records))])
	}
	return selected, nil
}
