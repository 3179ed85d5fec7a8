package sales

import (
	"context"

	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el procesador de
// ventas: venta + líneas + ajuste de stock se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptLine línea de venta con el nombre del producto, para el recibo PDF.
type ReceiptLine struct {
	Item        *entity.SaleItem
	ProductName string
}

// ReceiptGenerator genera la representación PDF del recibo de una venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []ReceiptLine) ([]byte, error)
}
