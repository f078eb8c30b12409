// queue.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/config"
)

const (
	// ContactNotifyTask is enqueued for each stored or attempted submission.
	ContactNotifyTask = "contact:notify"
)

// QueueNotifier hands notifications to the worker through Redis.
type QueueNotifier struct {
	client *asynq.Client
}

// NewQueueNotifier creates a QueueNotifier
func NewQueueNotifier(client *asynq.Client) *QueueNotifier {
	return &QueueNotifier{client: client}
}

// NewContactTask builds the task for n
func NewContactTask(n ContactNotification) (*asynq.Task, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(ContactNotifyTask, data), nil
}

// Notify enqueues the notification
func (q *QueueNotifier) Notify(ctx context.Context, n ContactNotification) error {
	task, err := NewContactTask(n)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Timeout(time.Minute)); err != nil {
		return fmt.Errorf("enqueue contact task: %w", err)
	}
	return nil
}

// Processor is plugged into the asynq worker loop.
type Processor struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewProcessor constructs a worker processor delivering through notifier
func NewProcessor(notifier Notifier, logger *zap.Logger) *Processor {
	return &Processor{notifier: notifier, logger: logger.Named("worker")}
}

// Handler registers the contact task handler.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(ContactNotifyTask, p.HandleContactTask)
	return mux
}

// HandleContactTask delivers one queued notification
func (p *Processor) HandleContactTask(ctx context.Context, task *asynq.Task) error {
	var n ContactNotification
	if err := json.Unmarshal(task.Payload(), &n); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := p.notifier.Notify(ctx, n); err != nil {
		p.logger.Warn("Contact notification failed",
			zap.String("submission_id", n.SubmissionID),
			zap.Error(err))
		return err
	}
	return nil
}

// RedisOpt returns the asynq connection options for cfg
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}
