package tokenstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 5 * time.Second

// Redis keeps the record in a hash so several machines can share one login.
type Redis struct {
	client *redis.Client
	key    string
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

func NewRedis(opts RedisOptions) *Redis {
	key := opts.Key
	if key == "" {
		key = "jobboard:session"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Redis{client: client, key: key}
}

func (r *Redis) Get() (Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Record{}, err
	}
	return recordFromHash(fields), nil
}

func (r *Redis) Set(record Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		pipe.HSet(ctx, r.key, recordToHash(record))
		return nil
	})
	return err
}

func (r *Redis) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.client.Del(ctx, r.key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func recordToHash(record Record) map[string]any {
	return map[string]any{
		"token":  record.Token,
		"userId": record.UserID,
		"email":  record.Email,
	}
}

func recordFromHash(fields map[string]string) Record {
	return Record{
		Token:  fields["token"],
		UserID: fields["userId"],
		Email:  fields["email"],
	}
}
