package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/diretoriaja/portal/pkg/leaselock"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Tipos lists the collection jobs that can be triggered.
var Tipos = []string{
	"completa",
	"noticias",
	"instagram",
	"trending",
	"trending_twitter",
	"trending_google",
	"socials",
	"social_mentions",
}

// DefaultTipo is the job run when none is named.
const DefaultTipo = "completa"

// ErrNoBroker is returned when jobs are triggered without a broker.
var ErrNoBroker = errors.New("no message broker configured")

// ColetaJob is the message consumed by the collectors.
type ColetaJob struct {
	LogID       string    `json:"log_id"`
	Tipo        string    `json:"tipo"`
	DryRun      bool      `json:"dry_run"`
	RequestedAt time.Time `json:"requested_at"`
}

// Ack acknowledges a job that was handed to the broker.
type Ack struct {
	Status   string `json:"status"`
	Mensagem string `json:"mensagem"`
	LogID    string `json:"log_id"`
}

// Trigger publishes collection jobs. At most one job per type is accepted
// per cooldown window.
type Trigger struct {
	pub      Publisher
	locker   leaselock.Locker
	cooldown time.Duration
	now      func() time.Time
}

func NewTrigger(pub Publisher, locker leaselock.Locker, cooldown time.Duration) *Trigger {
	return &Trigger{pub: pub, locker: locker, cooldown: cooldown, now: time.Now}
}

func ValidTipo(tipo string) bool {
	return slices.Contains(Tipos, tipo)
}

// Trigger queues one job. It returns leaselock.ErrBusy while the type is
// cooling down, store.ErrValidation for unknown types and
// store.ErrUpstreamUnavailable when the broker cannot be reached.
func (t *Trigger) Trigger(ctx context.Context, tipo string, dryRun bool) (Ack, error) {
	if tipo == "" {
		tipo = DefaultTipo
	}
	if !ValidTipo(tipo) {
		return Ack{}, fmt.Errorf("unknown tipo %q: %w", tipo, store.ErrValidation)
	}
	if t.pub == nil {
		return Ack{}, fmt.Errorf("%w: %w", store.ErrUpstreamUnavailable, ErrNoBroker)
	}

	var lease leaselock.Lease
	if t.locker != nil && t.cooldown > 0 {
		l, err := t.locker.TryAcquire(ctx, "coleta:"+tipo, t.cooldown)
		if err != nil {
			return Ack{}, err
		}
		lease = l
	}

	logID, err := gonanoid.New()
	if err != nil {
		return Ack{}, err
	}

	body, err := json.Marshal(ColetaJob{
		LogID:       logID,
		Tipo:        tipo,
		DryRun:      dryRun,
		RequestedAt: t.now().UTC(),
	})
	if err != nil {
		return Ack{}, err
	}

	if err := t.pub.Publish(ctx, ColetaQueue, logID, body); err != nil {
		if lease.Key != "" {
			if rerr := t.locker.Release(context.WithoutCancel(ctx), lease); rerr != nil {
				logger.Warn("[Queue] Failed to release cooldown", "tipo", tipo, "err", rerr)
			}
		}
		return Ack{}, fmt.Errorf("publish %s: %w: %w", tipo, store.ErrUpstreamUnavailable, err)
	}

	logger.Info("[Queue] Collection job queued", "tipo", tipo, "log_id", logID, "dry_run", dryRun)
	return Ack{
		Status:   "iniciado",
		Mensagem: fmt.Sprintf("Coleta '%s' iniciada em background", tipo),
		LogID:    logID,
	}, nil
}
