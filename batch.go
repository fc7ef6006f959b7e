// idgen - batch.go adapts the teacher's batch-generation convenience
// (snowflake.go's GenerateBatch) to the Pending-not-error design: instead
// of a generator-internal busy-wait loop holding its own lock across the
// whole batch, batch generation is expressed purely in terms of
// AsyncSnowflakeAdapter/AsyncUlidAdapter, so it works identically over
// any of the concurrency shells.

package idgen

import "context"

// snowflakeNextIDer is satisfied by *AsyncSnowflakeAdapter.
type snowflakeNextIDer interface {
	NextID(ctx context.Context) (SnowflakeID, error)
}

// GenerateSnowflakeBatch draws count IDs from adapter in sequence,
// checking ctx for cancellation every 100 IDs (matching the teacher's
// polling cadence) so a long batch can't outlive a cancelled request.
// Returns whatever was generated so far alongside the error on
// cancellation, mirroring the teacher's "partial batch on failure"
// contract.
func GenerateSnowflakeBatch(ctx context.Context, adapter snowflakeNextIDer, count int) ([]SnowflakeID, error) {
	if count <= 0 {
		return []SnowflakeID{}, nil
	}
	ids := make([]SnowflakeID, 0, count)
	for i := 0; i < count; i++ {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return ids, err
			}
		}
		id, err := adapter.NextID(ctx)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ulidNextIDer is satisfied by *AsyncUlidAdapter.
type ulidNextIDer interface {
	NextID(ctx context.Context) (UlidID, error)
}

// GenerateUlidBatch is the ULID analog of GenerateSnowflakeBatch.
func GenerateUlidBatch(ctx context.Context, adapter ulidNextIDer, count int) ([]UlidID, error) {
	if count <= 0 {
		return []UlidID{}, nil
	}
	ids := make([]UlidID, 0, count)
	for i := 0; i < count; i++ {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return ids, err
			}
		}
		id, err := adapter.NextID(ctx)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
