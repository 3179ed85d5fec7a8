package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// Columnas esperadas del CSV de importación, en este orden.
// sku,name,description,category_id,price,stock
const importColumns = 6

// ImportProductsUseCase importa productos desde un CSV: crea los SKU nuevos y
// actualiza los existentes. Cada fila se procesa de forma independiente; una
// fila inválida se reporta y no detiene el resto.
type ImportProductsUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewImportProductsUseCase construye el caso de uso.
func NewImportProductsUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ImportProductsUseCase {
	return &ImportProductsUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ImportCSV lee el CSV (con fila de encabezado) y hace upsert por SKU.
// Retorna el conteo de creados/actualizados y los errores por fila (1-based,
// sin contar el encabezado).
func (uc *ImportProductsUseCase) ImportCSV(r io.Reader) (*dto.ImportProductsResponse, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// Encabezado
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("import: archivo vacío")
		}
		return nil, fmt.Errorf("import: leer encabezado: %w", err)
	}

	out := &dto.ImportProductsResponse{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			out.Errors = append(out.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}
		created, err := uc.importRow(record)
		if err != nil {
			out.Errors = append(out.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}
		if created {
			out.Created++
		} else {
			out.Updated++
		}
	}
	return out, nil
}

// importRow valida una fila y hace upsert por SKU. Retorna true si creó un
// producto nuevo, false si actualizó uno existente.
func (uc *ImportProductsUseCase) importRow(record []string) (bool, error) {
	if len(record) != importColumns {
		return false, fmt.Errorf("se esperaban %d columnas, llegaron %d", importColumns, len(record))
	}
	sku := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	description := strings.TrimSpace(record[2])
	categoryID := strings.TrimSpace(record[3])

	if sku == "" {
		return false, fmt.Errorf("sku es requerido")
	}
	if name == "" {
		return false, fmt.Errorf("name es requerido")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil || !price.GreaterThan(decimal.Zero) {
		return false, fmt.Errorf("price inválido: %q", record[4])
	}
	stock, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil || stock < 0 {
		return false, fmt.Errorf("stock inválido: %q", record[5])
	}
	if categoryID != "" {
		cat, err := uc.categoryRepo.GetByID(categoryID)
		if err != nil {
			return false, fmt.Errorf("buscar categoría: %w", err)
		}
		if cat == nil {
			return false, fmt.Errorf("categoría %s no existe", categoryID)
		}
	}

	existing, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return false, fmt.Errorf("buscar sku: %w", err)
	}
	now := time.Now()
	if existing == nil {
		return true, uc.productRepo.Create(&entity.Product{
			ID:          uuid.New().String(),
			CategoryID:  categoryID,
			SKU:         sku,
			Name:        name,
			Description: description,
			Price:       price,
			Stock:       stock,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	existing.Name = name
	existing.Description = description
	existing.CategoryID = categoryID
	existing.Price = price
	existing.UpdatedAt = now
	if err := uc.productRepo.Update(existing); err != nil {
		return false, err
	}
	// El CSV trae stock absoluto: se ajusta por la diferencia.
	if delta := stock - existing.Stock; delta != 0 {
		return false, uc.productRepo.AdjustStock(existing.ID, delta)
	}
	return false, nil
}
