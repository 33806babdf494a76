package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/treepage/pkg/cache"
	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// RedisSource stores records under two keys: "<ns>:order", a list of ids
// in insertion order, and "<ns>:records", a hash from id to JSON.
type RedisSource struct {
	client  *redis.Client
	order   string
	records string
}

// NewRedisSource connects to dsn, given either as host:port or as a
// redis:// URL, retrying transient dial failures.
func NewRedisSource(ctx context.Context, dsn, namespace string) (*RedisSource, error) {
	opts := &redis.Options{Addr: dsn}
	if strings.HasPrefix(dsn, "redis://") || strings.HasPrefix(dsn, "rediss://") {
		parsed, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse redis url")
		}
		opts = parsed
	}
	client := redis.NewClient(opts)

	err := cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return cache.Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "ping %s", opts.Addr))
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisSource{
		client:  client,
		order:   namespace + ":order",
		records: namespace + ":records",
	}, nil
}

// Load returns every record in list order. Ids listed without a hash entry
// are skipped.
func (s *RedisSource) Load(ctx context.Context) ([]*hierarchy.Record, error) {
	ids, err := s.client.LRange(ctx, s.order, 0, -1).Result()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "lrange %s", s.order)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	vals, err := s.client.HMGet(ctx, s.records, ids...).Result()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "hmget %s", s.records)
	}

	out := make([]*hierarchy.Record, 0, len(ids))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var w row
		if err := json.Unmarshal([]byte(str), &w); err != nil {
			return nil, errs.Wrap(errs.ErrCodeCorruption, err, "record %s", ids[i])
		}
		r, err := w.record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Save upserts records. New ids are appended to the order list inside the
// same MULTI block as the hash writes.
func (s *RedisSource) Save(ctx context.Context, recs ...*hierarchy.Record) error {
	if err := checkSave(recs); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	exists := make([]*redis.BoolCmd, len(recs))
	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, r := range recs {
			exists[i] = p.HExists(ctx, s.records, r.ID())
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeSource, err, "check existing records")
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		added := make(map[string]bool)
		for i, r := range recs {
			v, err := json.Marshal(toRow(r))
			if err != nil {
				return fmt.Errorf("encode %s: %w", r.ID(), err)
			}
			p.HSet(ctx, s.records, r.ID(), v)
			if !exists[i].Val() && !added[r.ID()] {
				p.RPush(ctx, s.order, r.ID())
				added[r.ID()] = true
			}
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeSource, err, "save")
	}
	return nil
}

// Drop deletes both keys. Tests use it to clean up.
func (s *RedisSource) Drop(ctx context.Context) error {
	return s.client.Del(ctx, s.order, s.records).Err()
}

// Close closes the client.
func (s *RedisSource) Close() error {
	return s.client.Close()
}

var _ Source = (*RedisSource)(nil)
