package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/application/sales"
	"github.com/tu-usuario/pos-movil/internal/domain"
)

func newDeleteSaleUC(store *fakeStore) *sales.DeleteSaleUseCase {
	return sales.NewDeleteSaleUseCase(&fakeTxRunner{store: store}, &fakeSaleRepo{store: store})
}

// Vende 3 unidades y elimina la venta: el stock vuelve al valor original y
// no quedan ni la cabecera ni las líneas.
func TestDeleteSale_RestauraStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct("prod-a", 10)
	createUC := newCreateSaleUC(store)
	deleteUC := newDeleteSaleUC(store)

	out, err := createUC.CreateSale(context.Background(), cajeroPrincipal("caj-1"), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-a", Quantity: 3, Price: dec("10")}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, store.products["prod-a"].Stock)

	err = deleteUC.DeleteSale(context.Background(), cajeroPrincipal("caj-1"), out.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, store.products["prod-a"].Stock, "el stock debe quedar restaurado")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
}

// Un segundo delete del mismo ID es un 404 limpio, sin tocar stock.
func TestDeleteSale_DobleDelete_NotFound(t *testing.T) {
	store := newFakeStore()
	store.addProduct("prod-a", 10)
	createUC := newCreateSaleUC(store)
	deleteUC := newDeleteSaleUC(store)

	out, err := createUC.CreateSale(context.Background(), cajeroPrincipal("caj-1"), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-a", Quantity: 2, Price: dec("10")}},
	})
	require.NoError(t, err)
	require.NoError(t, deleteUC.DeleteSale(context.Background(), cajeroPrincipal("caj-1"), out.ID))

	err = deleteUC.DeleteSale(context.Background(), cajeroPrincipal("caj-1"), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, store.products["prod-a"].Stock, "el segundo delete no debe alterar stock")
}

// Dos deletes concurrentes del mismo ID: la segunda sesión alcanza a leer la
// venta antes de que la primera commitee, pero su DELETE borra 0 filas, la
// transacción revierte y el stock se restaura una sola vez.
func TestDeleteSale_DeleteConcurrente_NoInflaStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct("prod-a", 10)
	createUC := newCreateSaleUC(store)
	firstUC := newDeleteSaleUC(store)

	out, err := createUC.CreateSale(context.Background(), cajeroPrincipal("caj-1"), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-a", Quantity: 3, Price: dec("10")}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, store.products["prod-a"].Stock)

	// La segunda sesión hace sus lecturas previas sobre un snapshot tomado
	// antes del primer commit, pero su transacción escribe sobre el store vivo.
	stale := store.snapshot()
	secondUC := sales.NewDeleteSaleUseCase(&fakeTxRunner{store: store}, &fakeSaleRepo{store: stale})

	require.NoError(t, firstUC.DeleteSale(context.Background(), cajeroPrincipal("caj-1"), out.ID))
	require.Equal(t, 10, store.products["prod-a"].Stock)

	err = secondUC.DeleteSale(context.Background(), cajeroPrincipal("caj-1"), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el segundo delete debe reportar venta inexistente")
	assert.Equal(t, 10, store.products["prod-a"].Stock, "el stock no debe restaurarse dos veces")
}

// Un cajero no puede eliminar ventas de otro cajero; un admin sí.
func TestDeleteSale_Propiedad(t *testing.T) {
	store := newFakeStore()
	store.addProduct("prod-a", 10)
	createUC := newCreateSaleUC(store)
	deleteUC := newDeleteSaleUC(store)

	out, err := createUC.CreateSale(context.Background(), cajeroPrincipal("caj-1"), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-a", Quantity: 1, Price: dec("10")}},
	})
	require.NoError(t, err)

	err = deleteUC.DeleteSale(context.Background(), cajeroPrincipal("caj-2"), out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "cajero ajeno debe ser rechazado")
	assert.Len(t, store.sales, 1, "la venta debe seguir existiendo")

	require.NoError(t, deleteUC.DeleteSale(context.Background(), adminPrincipal(), out.ID))
	assert.Empty(t, store.sales)
}

func TestDeleteSale_SinPrincipal_Unauthorized(t *testing.T) {
	store := newFakeStore()
	deleteUC := newDeleteSaleUC(store)

	err := deleteUC.DeleteSale(context.Background(), domain.Principal{}, "cualquiera")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDeleteSale_IDVacio_InvalidInput(t *testing.T) {
	store := newFakeStore()
	deleteUC := newDeleteSaleUC(store)

	err := deleteUC.DeleteSale(context.Background(), adminPrincipal(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
