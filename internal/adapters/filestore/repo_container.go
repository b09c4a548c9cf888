package filestore

import (
	"github.com/SscSPs/todo_api/internal/core/domain"
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
)

// NewRepositoryProvider opens (and on first run creates) the three JSON
// documents under dataDir and wires a repository onto each.
func NewRepositoryProvider(dataDir string) (portsrepo.RepositoryProvider, error) {
	users, err := OpenCollection[domain.User](dataDir, usersFile)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	todos, err := OpenCollection[domain.Todo](dataDir, todosFile)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	refreshTokens, err := OpenCollection[domain.RefreshToken](dataDir, refreshTokensFile)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}

	return portsrepo.RepositoryProvider{
		UserRepo:         newFileUserRepository(users),
		TodoRepo:         newFileTodoRepository(todos),
		RefreshTokenRepo: newFileRefreshTokenRepository(refreshTokens),
	}, nil
}
