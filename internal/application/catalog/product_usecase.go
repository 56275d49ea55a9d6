// Package catalog contiene el alta y consulta mínima de productos: el
// ledger y el motor de ventas necesitan el referente (tamaño de paquete,
// divisibilidad, precios) antes de poder operar.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/dto"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/entity"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/domain/repository"
)

// ProductUseCase alta y consulta de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create valida y persiste un producto nuevo.
func (uc *ProductUseCase) Create(_ context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.PackSize < 1 {
		return nil, domain.ErrInvalidInput
	}
	if in.StandardPrice.IsNegative() || in.StaffPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		Name:          in.Name,
		PackSize:      in.PackSize,
		IsDivisible:   in.IsDivisible,
		MainUnit:      in.MainUnit,
		SubUnit:       in.SubUnit,
		StandardPrice: in.StandardPrice,
		StaffPrice:    in.StaffPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	return product, nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(_ context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return uc.productRepo.List(limit, offset)
}
