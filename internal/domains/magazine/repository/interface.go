package repository

import (
	"magazine-backend/internal/domains/magazine/model"
	"magazine-backend/internal/shared/crud"
)

// RepositoryInterface is the magazine side of the shared CRUD contract.
// Create and Update also maintain the magazine_authors links.
type RepositoryInterface interface {
	crud.Repository[model.Magazine]
}
