package services

import (
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/platform/config"
	"github.com/SscSPs/todo_api/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Users and todos share one generator so ids stay unique across both collections.
	ids := utils.NewIDGenerator()

	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(
		repos.UserRepo,
		repos.RefreshTokenRepo,
		container.Token,
		utils.NewBcryptHasher(cfg.BcryptCost),
		ids,
	)
	container.Todo = NewTodoService(repos.TodoRepo, ids)

	return container
}
