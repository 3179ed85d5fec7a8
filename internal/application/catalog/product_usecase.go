package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Create valida y persiste un producto nuevo.
// Retorna domain.ErrDuplicate si el SKU ya existe.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	verr := domain.NewValidationError()
	if in.SKU == "" {
		verr.Add("sku", "es requerido")
	}
	if in.Name == "" {
		verr.Add("name", "es requerido")
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		verr.Add("price", "debe ser mayor que cero")
	}
	if in.Stock < 0 {
		verr.Add("stock", "no puede ser negativo")
	}
	if verr.HasErrors() {
		return nil, verr
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("buscar categoría: %w", err)
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto. Retorna nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, descripción, categoría y precio. El stock no se
// edita aquí: lo mutan las ventas y el import CSV.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	verr := domain.NewValidationError()
	if in.Name == "" {
		verr.Add("name", "es requerido")
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		verr.Add("price", "debe ser mayor que cero")
	}
	if verr.HasErrors() {
		return nil, verr
	}
	if in.CategoryID != "" && in.CategoryID != product.CategoryID {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("buscar categoría: %w", err)
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}

	product.Name = in.Name
	product.Description = in.Description
	product.CategoryID = in.CategoryID
	product.Price = in.Price
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	total, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	list, err := uc.productRepo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Meta:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}
	for _, p := range list {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
