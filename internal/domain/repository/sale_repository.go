package repository

import (
	"time"

	"github.com/tu-usuario/pos-movil/internal/domain/entity"
)

// SaleFilter criterios para listar/contar ventas.
// UserID vacío = todas las ventas (solo admin); From/To acotan created_at.
type SaleFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Create/CreateItem/Delete/DeleteItemsBySaleID se usan dentro de la transacción
// del TxRunner; las lecturas pueden ir contra el pool.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
	Count(filter SaleFilter) (int, error)
	DeleteItemsBySaleID(saleID string) error
	Delete(id string) error
}
