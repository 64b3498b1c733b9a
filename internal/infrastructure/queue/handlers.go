package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// InvitationExpirer lo que el worker necesita del caso de uso de invitaciones.
type InvitationExpirer interface {
	ExpireOne(ctx context.Context, companyID, invitationID string, now time.Time) (bool, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// InvitationWorker procesa las tareas de expiración.
type InvitationWorker struct {
	uc  InvitationExpirer
	log *logger.Logger
	now func() time.Time
}

// NewInvitationWorker construye el worker.
func NewInvitationWorker(uc InvitationExpirer, log *logger.Logger) *InvitationWorker {
	return &InvitationWorker{uc: uc, log: log.Component("invitation_worker"), now: time.Now}
}

// ProcessExpire maneja TypeInvitationExpire. Un payload inválido no se reintenta.
func (w *InvitationWorker) ProcessExpire(ctx context.Context, t *asynq.Task) error {
	var p InvitationExpirePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil || p.InvitationID == "" || p.CompanyID == "" {
		return fmt.Errorf("payload inválido: %v: %w", err, asynq.SkipRetry)
	}
	expired, err := w.uc.ExpireOne(ctx, p.CompanyID, p.InvitationID, w.now())
	if err != nil {
		return fmt.Errorf("expirar invitación %s: %w", p.InvitationID, err)
	}
	w.log.Info().Str("invitation_id", p.InvitationID).Bool("expired", expired).Msg("invitation expire task")
	return nil
}

// ProcessSweep maneja TypeInvitationSweep.
func (w *InvitationWorker) ProcessSweep(ctx context.Context, _ *asynq.Task) error {
	n, err := w.uc.ExpireStale(ctx, w.now())
	if err != nil {
		return fmt.Errorf("barrido de invitaciones: %w", err)
	}
	if n > 0 {
		w.log.Info().Int64("expired", n).Msg("invitation sweep")
	}
	return nil
}

// HandlersRegistry agrupa los handlers por tipo de tarea.
type HandlersRegistry struct {
	mux *asynq.ServeMux
}

// NewHandlersRegistry construye el registro vacío.
func NewHandlersRegistry() *HandlersRegistry {
	return &HandlersRegistry{mux: asynq.NewServeMux()}
}

// Register asocia un handler a un tipo de tarea.
func (r *HandlersRegistry) Register(taskType string, handler asynq.Handler) {
	r.mux.Handle(taskType, handler)
}

// RegisterInvitationWorker registra las dos tareas de invitaciones.
func (r *HandlersRegistry) RegisterInvitationWorker(w *InvitationWorker) {
	r.Register(TypeInvitationExpire, asynq.HandlerFunc(w.ProcessExpire))
	r.Register(TypeInvitationSweep, asynq.HandlerFunc(w.ProcessSweep))
}

// Mux devuelve el ServeMux para asynq.Server.Run.
func (r *HandlersRegistry) Mux() *asynq.ServeMux {
	return r.mux
}

// RegisterSweep programa TypeInvitationSweep con la expresión cron dada (ej. "@every 1h").
func RegisterSweep(s *asynq.Scheduler, cronspec string) (string, error) {
	id, err := s.Register(cronspec, asynq.NewTask(TypeInvitationSweep, nil), asynq.MaxRetry(1))
	if err != nil {
		return "", fmt.Errorf("programar %s: %w", TypeInvitationSweep, err)
	}
	return id, nil
}
