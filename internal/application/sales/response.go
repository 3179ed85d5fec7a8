package sales

import (
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
)

// toSaleResponse arma la respuesta de una venta con sus líneas y cliente.
func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, customer *entity.Customer) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:          sale.ID,
		UserID:      sale.UserID,
		Total:       sale.Total,
		Discount:    sale.Discount,
		PaymentType: sale.PaymentType,
		CreatedAt:   sale.CreatedAt,
		Items:       make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal(),
		})
	}
	if customer != nil {
		out.Customer = &dto.CustomerResponse{
			ID:        customer.ID,
			Name:      customer.Name,
			Email:     customer.Email,
			Phone:     customer.Phone,
			CreatedAt: customer.CreatedAt,
			UpdatedAt: customer.UpdatedAt,
		}
	}
	return out
}
