package usecase

import (
	"context"
	"fmt"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

// ModuleService expone el catálogo de módulos (listModules).
type ModuleService struct {
	repo repository.ModuleRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(repo repository.ModuleRepository) *ModuleService {
	return &ModuleService{repo: repo}
}

// List devuelve todos los módulos.
func (s *ModuleService) List(ctx context.Context) ([]dto.ModuleResponse, error) {
	modules, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("module: listar: %w", err)
	}
	out := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, dto.ModuleResponse{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return out, nil
}
