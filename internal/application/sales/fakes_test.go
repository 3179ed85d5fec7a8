package sales_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/pos-movil/internal/application/sales"
	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore estado compartido entre los repos fake. El TxRunner fake toma un
// snapshot antes de ejecutar y lo restaura si la función falla, imitando el
// rollback de la transacción real.
type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	items     map[string][]*entity.SaleItem // por saleID
	customers map[string]*entity.Customer

	// failAdjustOn fuerza un error en AdjustStock para el producto indicado,
	// para probar que la transacción revierte los pasos anteriores.
	failAdjustOn string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[string]*entity.Product),
		sales:     make(map[string]*entity.Sale),
		items:     make(map[string][]*entity.SaleItem),
		customers: make(map[string]*entity.Customer),
	}
}

func (s *fakeStore) addProduct(id string, stock int) {
	s.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Stock: stock}
}

func (s *fakeStore) addCustomer(id, name string) {
	s.customers[id] = &entity.Customer{ID: id, Name: name}
}

// snapshot copia profunda del estado mutable.
func (s *fakeStore) snapshot() *fakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := newFakeStore()
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.sales {
		sale := *v
		cp.sales[k] = &sale
	}
	for k, v := range s.items {
		list := make([]*entity.SaleItem, len(v))
		for i, it := range v {
			item := *it
			list[i] = &item
		}
		cp.items[k] = list
	}
	for k, v := range s.customers {
		c := *v
		cp.customers[k] = &c
	}
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.sales = snap.sales
	s.items = snap.items
	s.customers = snap.customers
}

// ── SaleRepository fake ───────────────────────────────────────────────────────

type fakeSaleRepo struct{ store *fakeStore }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *sale
	r.store.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *item
	r.store.items[item.SaleID] = append(r.store.items[item.SaleID], &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sale, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	src := r.store.items[saleID]
	list := make([]*entity.SaleItem, len(src))
	for i, it := range src {
		cp := *it
		list[i] = &cp
	}
	return list, nil
}

func (r *fakeSaleRepo) matches(sale *entity.Sale, filter repository.SaleFilter) bool {
	if filter.UserID != "" && sale.UserID != filter.UserID {
		return false
	}
	if filter.From != nil && sale.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && sale.CreatedAt.After(*filter.To) {
		return false
	}
	return true
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.Sale
	for _, sale := range r.store.sales {
		if r.matches(sale, filter) {
			cp := *sale
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (r *fakeSaleRepo) Count(filter repository.SaleFilter) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, sale := range r.store.sales {
		if r.matches(sale, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakeSaleRepo) DeleteItemsBySaleID(saleID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.items, saleID)
	return nil
}

// Delete imita la guarda de filas afectadas del repo real: si la venta ya no
// existe retorna ErrNotFound para que la transacción revierta.
func (r *fakeSaleRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.sales, id)
	return nil
}

// ── ProductRepository fake ────────────────────────────────────────────────────

type fakeProductRepo struct{ store *fakeStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := existing.Stock
	cp := *product
	cp.Stock = stock
	r.store.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) AdjustStock(productID string, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAdjustOn == productID {
		return errFakeDB
	}
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Count() (int, error)                               { return len(r.store.products), nil }
func (r *fakeProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

// ── CustomerRepository fake ───────────────────────────────────────────────────

type fakeCustomerRepo struct{ store *fakeStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(customer *entity.Customer) error           { return nil }
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Count() (int, error)                              { return len(r.store.customers), nil }
func (r *fakeCustomerRepo) Delete(id string) error                           { return nil }

// ── TxRunner fake ─────────────────────────────────────────────────────────────

// fakeTxRunner imita la semántica transaccional: si fn falla, restaura el
// snapshot previo del store.
type fakeTxRunner struct{ store *fakeStore }

var _ sales.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(&fakeSaleRepo{store: t.store}, &fakeProductRepo{store: t.store})
	if err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// ── Helpers comunes ───────────────────────────────────────────────────────────

var errFakeDB = &fakeDBError{}

type fakeDBError struct{}

func (e *fakeDBError) Error() string { return "fake: fallo de base de datos" }

func adminPrincipal() domain.Principal {
	return domain.Principal{UserID: "admin-1", Email: "admin@pos.test", Role: entity.RoleAdmin}
}

func cajeroPrincipal(id string) domain.Principal {
	return domain.Principal{UserID: id, Email: id + "@pos.test", Role: entity.RoleCajero}
}

func saleAt(store *fakeStore, id, userID string, at time.Time) {
	store.sales[id] = &entity.Sale{
		ID: id, UserID: userID, PaymentType: entity.PaymentCash, CreatedAt: at,
	}
}
