package round

import (
	"context"

	domround "github.com/teepals/roundsearch/internal/domain/round"
)

// Repository defines the storage contract for round writes and reads.
type Repository interface {
	Put(ctx context.Context, rd *domround.Round) error
	PutMulti(ctx context.Context, rounds []domround.Round) error
	Get(ctx context.Context, id string) (domround.Round, error)
	Delete(ctx context.Context, id string) error
}
