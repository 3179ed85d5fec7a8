package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ListSalesUseCase consultas de lectura sobre ventas: listado paginado y detalle.
type ListSalesUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

// NewListSalesUseCase construye el caso de uso.
func NewListSalesUseCase(saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo, customerRepo: customerRepo}
}

// ListSales lista ventas con paginación (page × limit) y rango de fechas,
// ordenadas por created_at DESC. Un cajero ve solo sus ventas; un admin todas.
func (uc *ListSalesUseCase) ListSales(ctx context.Context, principal domain.Principal, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	if principal.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()

	filter := repository.SaleFilter{
		Limit:  in.Limit,
		Offset: in.Offset(),
	}
	if !principal.IsAdmin() {
		filter.UserID = principal.UserID
	}

	if in.From != "" {
		from, err := time.Parse(dateLayout, in.From)
		if err != nil {
			verr := domain.NewValidationError()
			verr.Add("from", "formato esperado YYYY-MM-DD")
			return nil, verr
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.Parse(dateLayout, in.To)
		if err != nil {
			verr := domain.NewValidationError()
			verr.Add("to", "formato esperado YYYY-MM-DD")
			return nil, verr
		}
		// Inclusivo: hasta el final del día indicado
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}

	total, err := uc.saleRepo.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("contar ventas: %w", err)
	}
	list, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}

	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(list)),
		Meta:  dto.PageResponse{Page: in.Page, Limit: in.Limit, Total: total},
	}
	for _, sale := range list {
		resp, err := uc.expand(sale)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *resp)
	}
	return out, nil
}

// GetSale devuelve una venta con líneas y cliente. Un cajero solo puede ver
// sus propias ventas.
func (uc *ListSalesUseCase) GetSale(ctx context.Context, principal domain.Principal, saleID string) (*dto.SaleResponse, error) {
	if principal.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, fmt.Errorf("buscar venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !principal.IsAdmin() && sale.UserID != principal.UserID {
		return nil, domain.ErrForbidden
	}
	return uc.expand(sale)
}

// expand carga líneas y cliente de una venta y arma la respuesta.
func (uc *ListSalesUseCase) expand(sale *entity.Sale) (*dto.SaleResponse, error) {
	items, err := uc.saleRepo.GetItemsBySaleID(sale.ID)
	if err != nil {
		return nil, fmt.Errorf("líneas de venta %s: %w", sale.ID, err)
	}
	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("cliente de venta %s: %w", sale.ID, err)
		}
	}
	return toSaleResponse(sale, items, customer), nil
}
