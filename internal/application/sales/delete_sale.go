package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// DeleteSaleUseCase elimina una venta revirtiendo su efecto sobre el stock.
//
// Orden dentro de la tx: restaurar stock → borrar líneas → borrar venta.
// Las cantidades a restaurar salen de las líneas capturadas, así que el stock
// se repone antes de que esos registros desaparezcan; las líneas se borran
// antes que la venta por la FK sale_items.sale_id.
type DeleteSaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewDeleteSaleUseCase construye el caso de uso.
func NewDeleteSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// DeleteSale elimina la venta indicada. Un segundo delete sobre el mismo ID
// retorna ErrNotFound sin alterar stock. Un cajero solo puede eliminar sus
// propias ventas; un admin cualquiera.
func (uc *DeleteSaleUseCase) DeleteSale(ctx context.Context, principal domain.Principal, saleID string) error {
	if principal.IsZero() {
		return domain.ErrUnauthorized
	}
	if saleID == "" {
		return domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return fmt.Errorf("buscar venta: %w", err)
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if !principal.IsAdmin() && sale.UserID != principal.UserID {
		return domain.ErrForbidden
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return fmt.Errorf("buscar líneas de venta: %w", err)
	}

	return uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, item := range items {
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItemsBySaleID(saleID); err != nil {
			return err
		}
		return saleRepo.Delete(saleID)
	})
}
