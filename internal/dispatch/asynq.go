package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vastorn-backend/internal/domain"
	"vastorn-backend/pkg/email"
	"vastorn-backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TypeEmailDeliver is the asynq task type for a single notification email.
const TypeEmailDeliver = "email:deliver"

func redisOpt(rdb *redis.Client) asynq.RedisClientOpt {
	opts := rdb.Options()
	return asynq.RedisClientOpt{
		Addr:      opts.Addr,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	}
}

// Queue is the Redis-backed dispatcher. Each notification becomes an
// asynq task processed by the embedded worker started in cmd/api.
type Queue struct {
	client *asynq.Client
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{client: asynq.NewClient(redisOpt(rdb))}
}

func (q *Queue) NotifyAdmin(sub *domain.ContactSubmission) {
	q.enqueue(job{Kind: KindAdminNotification, Submission: submissionData(sub)})
}

func (q *Queue) NotifyUser(sub *domain.ContactSubmission) {
	q.enqueue(job{Kind: KindUserAutoReply, Submission: submissionData(sub)})
}

func (q *Queue) enqueue(j job) {
	payload, err := json.Marshal(j)
	if err != nil {
		logger.Log.Error("Failed to encode notification job", "kind", j.Kind, "error", err)
		return
	}

	task := asynq.NewTask(TypeEmailDeliver, payload)
	if _, err := q.client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		// Enqueue failure is swallowed like any other delivery failure.
		logger.Log.Error("Failed to enqueue notification",
			"kind", j.Kind,
			"submission_id", j.Submission.ID,
			"error", err,
		)
	}
}

func (q *Queue) Close() {
	_ = q.client.Close()
}

// NewServer builds the asynq worker server that drains the queue.
func NewServer(rdb *redis.Client, concurrency int) *asynq.Server {
	if concurrency < 1 {
		concurrency = 1
	}
	return asynq.NewServer(redisOpt(rdb), asynq.Config{
		Concurrency: concurrency,
	})
}

// NewMux registers the email delivery handler.
func NewMux(mailer *email.Mailer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailDeliver, func(ctx context.Context, t *asynq.Task) error {
		var j job
		if err := json.Unmarshal(t.Payload(), &j); err != nil {
			return fmt.Errorf("bad payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := deliver(ctx, mailer, j); err != nil {
			logger.Log.Error("Notification delivery failed",
				"kind", j.Kind,
				"submission_id", j.Submission.ID,
				"error", err,
			)
			return err
		}
		return nil
	})
	return mux
}
