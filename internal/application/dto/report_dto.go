package dto

import "github.com/shopspring/decimal"

// TopProductDTO fila del widget de más vendidos.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO resumen del día y del mes en curso.
type DashboardSummaryDTO struct {
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	TodaySales   int             `json:"today_sales"`
	MonthRevenue decimal.Decimal `json:"month_revenue"`
	MonthSales   int             `json:"month_sales"`
	TopProducts  []TopProductDTO `json:"top_products"`
}
