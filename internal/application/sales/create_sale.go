package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// CreateSaleUseCase crea una venta y descuenta el stock en una sola transacción.
//
// Secuencia dentro de la tx: insertar venta → insertar líneas → descontar stock
// por línea. Si cualquier paso falla (incluido stock insuficiente) el TxRunner
// hace rollback y no queda venta parcial ni descuento parcial visible.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// CreateSale valida el carrito, calcula el total y persiste atómicamente.
// Requiere un Principal resuelto: la venta se atribuye siempre al caller,
// nunca a un usuario arbitrario.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, principal domain.Principal, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if principal.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	// Defaults del contrato: medio de pago CASH, descuento 0 (zero value de decimal).
	if in.PaymentType == "" {
		in.PaymentType = entity.PaymentCash
	}

	// Validación por campo antes de tocar persistencia.
	if verr := validateCreateSale(in); verr.HasErrors() {
		return nil, verr
	}

	// Cliente opcional: si viene, debe existir.
	var customer *entity.Customer
	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("buscar cliente: %w", err)
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		customer = c
	}

	// Productos: deben existir (lectura fuera de la tx, solo validación).
	// El precio NO se relee del catálogo: se captura el del carrito para
	// preservar el historial de precios.
	subtotal := decimal.Zero
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("buscar producto %s: %w", item.ProductID, err)
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Invariante: total = Σ(price×qty) − discount, nunca negativo.
	if in.Discount.GreaterThan(subtotal) {
		verr := domain.NewValidationError()
		verr.Add("discount", "no puede exceder el subtotal de la venta")
		return nil, verr
	}
	total := subtotal.Sub(in.Discount)

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		UserID:      principal.UserID,
		CustomerID:  in.CustomerID,
		Total:       total,
		Discount:    in.Discount,
		PaymentType: in.PaymentType,
		CreatedAt:   now,
	}
	items := make([]*entity.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		// Descuento guardado: si algún producto quedaría en negativo, el repo
		// retorna ErrInsufficientStock y toda la transacción se revierte.
		for _, item := range items {
			if err := productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items, customer), nil
}

// validateCreateSale acumula errores por campo del carrito.
func validateCreateSale(in dto.CreateSaleRequest) *domain.ValidationError {
	verr := domain.NewValidationError()
	if len(in.Items) == 0 {
		verr.Add("items", "la venta debe tener al menos una línea")
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			verr.Add(fmt.Sprintf("items[%d].productId", i), "es requerido")
		}
		if item.Quantity <= 0 {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "debe ser un entero positivo")
		}
		if !item.Price.GreaterThan(decimal.Zero) {
			verr.Add(fmt.Sprintf("items[%d].price", i), "debe ser mayor que cero")
		}
	}
	if in.Discount.LessThan(decimal.Zero) {
		verr.Add("discount", "no puede ser negativo")
	}
	if !entity.ValidPaymentType(in.PaymentType) {
		verr.Add("paymentType", "debe ser CASH, CARD o MOBILE_PAY")
	}
	return verr
}
