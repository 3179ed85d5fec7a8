package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadReceipt recupera la venta y genera el PDF del recibo.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
//   - domain.ErrForbidden        si un cajero pide el recibo de otra venta.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, principal domain.Principal, saleID string) ([]byte, string, error) {
	if principal.IsZero() {
		return nil, "", domain.ErrUnauthorized
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: buscar venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if !principal.IsAdmin() && sale.UserID != principal.UserID {
		return nil, "", domain.ErrForbidden
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: líneas de venta: %w", err)
	}
	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		name := item.ProductID
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, ReceiptLine{Item: item, ProductName: name})
	}

	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, _ = uc.customerRepo.GetByID(sale.CustomerID)
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, sale, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("recibo-%s.pdf", sale.ID)
	return pdf, filename, nil
}
