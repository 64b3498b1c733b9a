// seed siembra los datos de referencia del directorio: catálogo de módulos, roles predefinidos
// y el grid completo del rol Admin. Es idempotente: lo existente se respeta.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/postgres"
	"github.com/lop-gin/nexus-backoffice/pkg/config"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

type seeder struct {
	modules     repository.ModuleRepository
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	log         *logger.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	s := &seeder{
		modules:     postgres.NewModuleRepository(pool),
		roles:       postgres.NewRoleRepository(pool),
		permissions: postgres.NewPermissionRepository(pool),
		log:         log.Component("seed"),
	}
	if err := s.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed incompleto")
	}
	log.Info().Msg("seed completado")
}

func (s *seeder) run(ctx context.Context) error {
	modules, err := s.seedModules(ctx)
	if err != nil {
		return err
	}
	admin, err := s.seedRoles(ctx)
	if err != nil {
		return err
	}

	// Admin ve todo; el grid explícito sirve a empleados con rol Admin sin is_admin.
	grid := make(authz.Grid, len(modules))
	for _, m := range modules {
		grid[m.ID] = authz.AllCapabilities
	}
	if err := s.permissions.Replace(ctx, admin.ID, grid.Rows(admin.ID)); err != nil {
		return fmt.Errorf("grid de Admin: %w", err)
	}
	s.log.Info().Int("modules", len(modules)).Msg("grid de Admin actualizado")
	return nil
}

func (s *seeder) seedModules(ctx context.Context) ([]*entity.Module, error) {
	out := make([]*entity.Module, 0, len(entity.DefaultModules))
	for _, def := range entity.DefaultModules {
		existing, err := s.modules.GetByName(ctx, def.Name)
		if err != nil {
			return nil, fmt.Errorf("buscar módulo %s: %w", def.Name, err)
		}
		if existing != nil {
			out = append(out, existing)
			continue
		}
		m := &entity.Module{
			ID:          uuid.New().String(),
			Name:        def.Name,
			Description: def.Description,
			CreatedAt:   time.Now(),
		}
		if err := s.modules.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("crear módulo %s: %w", def.Name, err)
		}
		s.log.Info().Str("module", m.Name).Msg("módulo creado")
		out = append(out, m)
	}
	return out, nil
}

// seedRoles crea los roles reservados que falten y devuelve el rol Admin.
func (s *seeder) seedRoles(ctx context.Context) (*entity.Role, error) {
	var admin *entity.Role
	for _, name := range authz.PredefinedRoleNames() {
		role, err := s.roles.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("buscar rol %s: %w", name, err)
		}
		if role == nil {
			now := time.Now()
			role = &entity.Role{
				ID:           uuid.New().String(),
				Name:         name,
				Description:  "Rol predefinido",
				IsPredefined: true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.roles.Create(ctx, role); err != nil {
				return nil, fmt.Errorf("crear rol %s: %w", name, err)
			}
			s.log.Info().Str("role", name).Msg("rol predefinido creado")
		}
		if name == authz.RoleAdmin {
			admin = role
		}
	}
	return admin, nil
}
