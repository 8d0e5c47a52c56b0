package services

import (
	"database/sql"
	"errors"

	"weblarek/internal/domain"
	"weblarek/internal/repos"
)

var ErrNotFound = errors.New("not found")

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List() (domain.ProductList, error) {
	items, err := s.Prods.List()
	if err != nil {
		return domain.ProductList{}, err
	}
	return domain.ProductList{Total: len(items), Items: items}, nil
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}
