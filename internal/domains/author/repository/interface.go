package repository

import (
	"magazine-backend/internal/domains/author/model"
	"magazine-backend/internal/shared/crud"
)

// RepositoryInterface is the author side of the shared CRUD contract.
type RepositoryInterface interface {
	crud.Repository[model.Author]
}
