package workload

import (
	"context"

	"github.com/redis/rueidis"
)

const (
	fieldActive    = "active_projects"
	fieldCompleted = "completed_projects"
	fieldEarnings  = "total_earnings"
)

// RedisLedger keeps one hash per contractor so the rest of the platform can
// read the counters without going through this service.
type RedisLedger struct {
	client    rueidis.Client
	keyPrefix string
}

func NewRedisLedger(client rueidis.Client, keyPrefix string) *RedisLedger {
	return &RedisLedger{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisLedger) key(contractorID string) string {
	return r.keyPrefix + contractorID
}

func (r *RedisLedger) JobAssigned(ctx context.Context, contractorID string) error {
	cmd := r.client.B().Hincrby().
		Key(r.key(contractorID)).Field(fieldActive).Increment(1).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisLedger) JobCompleted(ctx context.Context, contractorID string, earnings float64) error {
	key := r.key(contractorID)

	for _, resp := range r.client.DoMulti(ctx,
		r.client.B().Hincrby().Key(key).Field(fieldActive).Increment(-1).Build(),
		r.client.B().Hincrby().Key(key).Field(fieldCompleted).Increment(1).Build(),
		r.client.B().Hincrbyfloat().Key(key).Field(fieldEarnings).Increment(earnings).Build(),
	) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}
