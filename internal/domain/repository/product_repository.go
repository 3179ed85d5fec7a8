package repository

import "github.com/tu-usuario/pos-movil/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustStock suma delta (puede ser negativo) al stock del producto de forma
	// guardada: si el resultado fuera negativo no modifica nada y retorna
	// domain.ErrInsufficientStock. Retorna domain.ErrNotFound si el producto no existe.
	AdjustStock(productID string, delta int) error
	List(limit, offset int) ([]*entity.Product, error)
	Count() (int, error)
	Delete(id string) error
}
