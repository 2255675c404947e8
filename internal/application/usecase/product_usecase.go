package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase catálogo de productos. Cost alimenta el costo unitario de los
// movimientos de venta.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create registra un producto para la empresa.
func (uc *ProductUseCase) Create(companyID, sku, name string, cost, price decimal.Decimal) (*entity.Product, error) {
	if name == "" || cost.IsNegative() || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       sku,
		Name:      name,
		Cost:      cost,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto de la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// List devuelve los productos de la empresa.
func (uc *ProductUseCase) List(companyID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByCompany(companyID, limit, offset)
}
