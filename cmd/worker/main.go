// worker procesa las tareas asynq de invitaciones: expiración puntual (encolada al invitar)
// y barrido periódico de invitaciones pendientes vencidas.
//
// Uso: go run ./cmd/worker   (requiere REDIS_ADDR)
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/postgres"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/queue"
	"github.com/lop-gin/nexus-backoffice/pkg/config"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "worker"})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR es obligatorio para el worker")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// El worker no programa nuevas expiraciones: scheduler nil.
	invitationUC := usecase.NewInvitationUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewInvitationRepository(pool),
		postgres.NewEmployeeRepository(pool),
		postgres.NewRoleRepository(pool),
		nil,
		cfg.Invitation.TTL(),
		log,
	)

	registry := queue.NewHandlersRegistry()
	registry.RegisterInvitationWorker(queue.NewInvitationWorker(invitationUC, log))

	redisOpt := queue.RedisOpt(cfg.Redis)
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     5,
		ShutdownTimeout: 10 * time.Second,
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: time.UTC})
	entryID, err := queue.RegisterSweep(scheduler, cfg.Invitation.ExpireCron)
	if err != nil {
		log.Fatal().Err(err).Msg("programar barrido de invitaciones")
	}
	log.Info().Str("entry_id", entryID).Str("cron", cfg.Invitation.ExpireCron).Msg("barrido de invitaciones programado")

	if err := srv.Start(registry.Mux()); err != nil {
		log.Fatal().Err(err).Msg("iniciar servidor asynq")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler asynq")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, deteniendo worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("worker detenido")
}
