package dispatch

import (
	"context"
	"fmt"
	"sync"

	"vastorn-backend/internal/domain"
	"vastorn-backend/pkg/email"
	"vastorn-backend/pkg/logger"
)

// Notification kinds carried by a job.
const (
	KindAdminNotification = "admin_notification"
	KindUserAutoReply     = "user_auto_reply"
)

type job struct {
	Kind       string               `json:"kind"`
	Submission email.SubmissionData `json:"submission"`
}

func submissionData(sub *domain.ContactSubmission) email.SubmissionData {
	return email.SubmissionData{
		ID:          sub.ID.Hex(),
		Name:        sub.Name,
		Email:       sub.Email,
		Message:     sub.Message,
		IPAddress:   sub.IPAddress,
		SubmittedAt: sub.SubmittedAt,
	}
}

func deliver(ctx context.Context, mailer *email.Mailer, j job) error {
	switch j.Kind {
	case KindAdminNotification:
		return mailer.SendAdminNotification(ctx, j.Submission)
	case KindUserAutoReply:
		return mailer.SendUserAutoReply(ctx, j.Submission)
	default:
		return fmt.Errorf("unknown notification kind %q", j.Kind)
	}
}

// Pool is the in-process dispatcher: a buffered queue drained by a fixed
// set of worker goroutines. Delivery failures are logged and dropped;
// they never reach the HTTP caller.
type Pool struct {
	mailer *email.Mailer
	jobs   chan job
	wg     sync.WaitGroup
	once   sync.Once
}

func NewPool(mailer *email.Mailer, workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{
		mailer: mailer,
		jobs:   make(chan job, queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		if err := deliver(context.Background(), p.mailer, j); err != nil {
			logger.Log.Error("Notification delivery failed",
				"kind", j.Kind,
				"submission_id", j.Submission.ID,
				"error", err,
			)
		}
	}
}

func (p *Pool) NotifyAdmin(sub *domain.ContactSubmission) {
	p.enqueue(job{Kind: KindAdminNotification, Submission: submissionData(sub)})
}

func (p *Pool) NotifyUser(sub *domain.ContactSubmission) {
	p.enqueue(job{Kind: KindUserAutoReply, Submission: submissionData(sub)})
}

// enqueue never blocks; when the queue is full the job is dropped.
// Notifications are best-effort by contract.
func (p *Pool) enqueue(j job) {
	select {
	case p.jobs <- j:
	default:
		logger.Log.Warn("Notification queue full, dropping job",
			"kind", j.Kind,
			"submission_id", j.Submission.ID,
		)
	}
}

// Close stops accepting jobs and waits for in-flight deliveries.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.jobs) })
	p.wg.Wait()
}
