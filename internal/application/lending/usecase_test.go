package lending_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/dispatcher"
	"github.com/jhoicas/activos-api/internal/application/lending"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// memStore almacén en memoria para las pruebas de préstamos. El fakeTxRunner
// serializa los callbacks completos, igual que el FOR UPDATE real serializa
// las transiciones del item.
type memStore struct {
	mu     sync.Mutex
	users  []*entity.User
	items  []*entity.Item
	loans  []*entity.Loan
	notifs []*entity.Notification
	audits []*entity.AuditLog
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *u
	r.s.users = append(r.s.users, &c)
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }

func (r *memUserRepo) FirstByRole(role string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Role == role {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error { return nil }

func (r *memUserRepo) UpdateRole(userID, role string) error { return nil }

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (r *memUserRepo) Delete(id string) error { return nil }

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *it
	r.s.items = append(r.s.items, &c)
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ID == id {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }

func (r *memItemRepo) FindAvailableByProduct(productID string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ProductID == productID && it.Status == entity.ItemAvailable {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) CountAvailable(productID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, it := range r.s.items {
		if it.ProductID == productID && it.Status == entity.ItemAvailable {
			count++
		}
	}
	return count, nil
}

func (r *memItemRepo) FindAssignedTo(productID, employeeID string) (*entity.Item, error) {
	return nil, nil
}

func (r *memItemRepo) Update(it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.items {
		if existing.ID == it.ID {
			c := *it
			r.s.items[i] = &c
		}
	}
	return nil
}

func (r *memItemRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Item, error) {
	return nil, nil
}
func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) Delete(id string) error                         { return nil }

type memLoanRepo struct{ s *memStore }

func (r *memLoanRepo) Create(l *entity.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *l
	r.s.loans = append(r.s.loans, &c)
	return nil
}

func (r *memLoanRepo) GetByID(id string) (*entity.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.loans {
		if l.ID == id {
			c := *l
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memLoanRepo) GetForUpdate(id string) (*entity.Loan, error) { return r.GetByID(id) }

func (r *memLoanRepo) Update(l *entity.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.loans {
		if existing.ID == l.ID {
			c := *l
			r.s.loans[i] = &c
		}
	}
	return nil
}

func (r *memLoanRepo) ListByEmployee(employeeID string, limit, offset int) ([]*entity.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Loan
	for _, l := range r.s.loans {
		if l.EmployeeID == employeeID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memLoanRepo) List(limit, offset int) ([]*entity.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Loan, 0, len(r.s.loans))
	for _, l := range r.s.loans {
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

func (r *memLoanRepo) ListOverdue(limit, offset int) ([]*entity.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	var out []*entity.Loan
	for _, l := range r.s.loans {
		if l.Status == entity.LoanBorrowed && l.ExpectedReturnDate.Before(now) {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

type memNotifRepo struct{ s *memStore }

func (r *memNotifRepo) Create(n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *n
	r.s.notifs = append(r.s.notifs, &c)
	return nil
}

func (r *memNotifRepo) ListByRecipient(recipientID string, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *memNotifRepo) MarkRead(id, recipientID string) (bool, error) { return false, nil }

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *l
	r.s.audits = append(r.s.audits, &c)
	return nil
}

func (r *memAuditRepo) List(filter repository.AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error) {
	return nil, nil
}

type fakeTxRunner struct {
	s    *memStore
	txMu sync.Mutex
}

func (r *fakeTxRunner) RunLending(ctx context.Context, fn func(
	loans repository.LoanRepository,
	items repository.ItemRepository,
	notifs repository.NotificationRepository,
	audits repository.AuditLogRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(&memLoanRepo{r.s}, &memItemRepo{r.s}, &memNotifRepo{r.s}, &memAuditRepo{r.s})
}

var _ lending.TxRunner = (*fakeTxRunner)(nil)

type fixture struct {
	s  *memStore
	uc *lending.LoanUseCase
}

func newFixture() *fixture {
	s := &memStore{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	disp := dispatcher.New(&memUserRepo{s}, log)
	uc := lending.NewLoanUseCase(&fakeTxRunner{s: s}, &memUserRepo{s}, &memLoanRepo{s}, disp)
	return &fixture{s: s, uc: uc}
}

func (f *fixture) seedUser(id, role string) {
	_ = (&memUserRepo{f.s}).Create(&entity.User{
		ID: id, Email: id + "@empresa.com", Name: "Usuario " + id, Role: role, Status: "active",
	})
}

func (f *fixture) seedItem(id, status string) {
	_ = (&memItemRepo{f.s}).Create(&entity.Item{
		ID:             id,
		ProductID:      "prod-1",
		SerialNumber:   "SN-" + id,
		PurchaseDate:   time.Now(),
		Condition:      entity.ConditionUsed,
		Status:         status,
		BusinessUnitID: "unit-1",
	})
}

func manana() time.Time { return time.Now().Add(24 * time.Hour) }

func TestBorrow_PrestaItemDisponible(t *testing.T) {
	f := newFixture()
	f.seedUser("emp-1", entity.RoleEmployee)
	f.seedItem("item-1", entity.ItemAvailable)

	loan, err := f.uc.Borrow(context.Background(), "emp-1", "item-1", manana(), entity.ConditionUsed, "para la feria")
	require.NoError(t, err)
	require.NotNil(t, loan)
	assert.Equal(t, entity.LoanBorrowed, loan.Status)
	assert.Equal(t, "emp-1", loan.EmployeeID)
	assert.Nil(t, loan.ActualReturnDate)

	item, err := (&memItemRepo{f.s}).GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemAssigned, item.Status)
	assert.Equal(t, "emp-1", item.AssignedToID)

	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	require.Len(t, f.s.audits, 1)
	assert.Equal(t, entity.ActionBorrow, f.s.audits[0].ActionType)
	assert.Equal(t, "emp-1", f.s.audits[0].UserID)
}

func TestBorrow_Validaciones(t *testing.T) {
	f := newFixture()
	f.seedUser("emp-1", entity.RoleEmployee)
	f.seedUser("dir-1", entity.RoleDirector)
	f.seedItem("item-1", entity.ItemAvailable)
	f.seedItem("item-2", entity.ItemInRepair)
	ctx := context.Background()

	t.Run("solo empleados toman préstamos", func(t *testing.T) {
		_, err := f.uc.Borrow(ctx, "dir-1", "item-1", manana(), entity.ConditionUsed, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := f.uc.Borrow(ctx, "nadie", "item-1", manana(), entity.ConditionUsed, "")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
	t.Run("fecha esperada requerida", func(t *testing.T) {
		_, err := f.uc.Borrow(ctx, "emp-1", "item-1", time.Time{}, entity.ConditionUsed, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("condición inválida", func(t *testing.T) {
		_, err := f.uc.Borrow(ctx, "emp-1", "item-1", manana(), "Roto", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("item inexistente", func(t *testing.T) {
		_, err := f.uc.Borrow(ctx, "emp-1", "item-x", manana(), entity.ConditionUsed, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("item no disponible", func(t *testing.T) {
		_, err := f.uc.Borrow(ctx, "emp-1", "item-2", manana(), entity.ConditionUsed, "")
		assert.ErrorIs(t, err, domain.ErrItemUnavailable)
	})

	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	assert.Empty(t, f.s.loans, "ningún intento inválido debe crear préstamos")
}

func TestReturn_CierraElPrestamo(t *testing.T) {
	f := newFixture()
	f.seedUser("emp-1", entity.RoleEmployee)
	f.seedItem("item-1", entity.ItemAvailable)
	ctx := context.Background()

	loan, err := f.uc.Borrow(ctx, "emp-1", "item-1", manana(), entity.ConditionUsed, "")
	require.NoError(t, err)

	got, err := f.uc.Return(ctx, loan.ID, "emp-1", entity.ConditionUsed, "sin novedades")
	require.NoError(t, err)
	assert.Equal(t, entity.LoanReturned, got.Status)
	require.NotNil(t, got.ActualReturnDate)
	assert.Equal(t, entity.ConditionUsed, got.ConditionOnReturn)
	assert.Equal(t, "sin novedades", got.Remarks)

	// El item vuelve al pool disponible.
	item, err := (&memItemRepo{f.s}).GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemAvailable, item.Status)
	assert.Empty(t, item.AssignedToID)

	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	require.Len(t, f.s.audits, 2)
	assert.Equal(t, entity.ActionReturn, f.s.audits[1].ActionType)
}

func TestReturn_SoloElPrestatario(t *testing.T) {
	f := newFixture()
	f.seedUser("emp-1", entity.RoleEmployee)
	f.seedUser("emp-2", entity.RoleEmployee)
	f.seedItem("item-1", entity.ItemAvailable)
	ctx := context.Background()

	loan, err := f.uc.Borrow(ctx, "emp-1", "item-1", manana(), entity.ConditionUsed, "")
	require.NoError(t, err)

	_, err = f.uc.Return(ctx, loan.ID, "emp-2", entity.ConditionUsed, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.uc.GetByID(loan.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanBorrowed, got.Status)
}

func TestReturn_DobleDevolucionInvalidState(t *testing.T) {
	f := newFixture()
	f.seedUser("emp-1", entity.RoleEmployee)
	f.seedItem("item-1", entity.ItemAvailable)
	ctx := context.Background()

	loan, err := f.uc.Borrow(ctx, "emp-1", "item-1", manana(), entity.ConditionUsed, "")
	require.NoError(t, err)
	_, err = f.uc.Return(ctx, loan.ID, "emp-1", entity.ConditionUsed, "")
	require.NoError(t, err)

	_, err = f.uc.Return(ctx, loan.ID, "emp-1", entity.ConditionUsed, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// N empleados intentan prestarse el mismo item a la vez: solo uno observa
// Available y gana; el resto recibe ErrItemUnavailable y no deja préstamo.
func TestBorrow_CarreraPorElMismoItem(t *testing.T) {
	f := newFixture()
	f.seedItem("item-1", entity.ItemAvailable)

	const n = 10
	employees := make([]string, n)
	for i := 0; i < n; i++ {
		employees[i] = "emp-" + string(rune('a'+i))
		f.seedUser(employees[i], entity.RoleEmployee)
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Borrow(ctx, employees[i], "item-1", manana(), entity.ConditionUsed, "")
		}(i)
	}
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrItemUnavailable):
			unavailable++
		}
	}
	assert.Equal(t, 1, ok, "exactamente un préstamo debe ganar el item")
	assert.Equal(t, n-1, unavailable)

	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	assert.Len(t, f.s.loans, 1)
	assert.Len(t, f.s.audits, 1)
}

func TestListOverdue_SoloVencidosAbiertos(t *testing.T) {
	f := newFixture()
	f.seedUser("emp-1", entity.RoleEmployee)
	f.seedItem("item-1", entity.ItemAvailable)
	f.seedItem("item-2", entity.ItemAvailable)
	ctx := context.Background()

	// Préstamo vencido: fecha esperada en el pasado.
	vencido, err := f.uc.Borrow(ctx, "emp-1", "item-1", time.Now().Add(-48*time.Hour), entity.ConditionUsed, "")
	require.NoError(t, err)
	// Préstamo vigente.
	_, err = f.uc.Borrow(ctx, "emp-1", "item-2", manana(), entity.ConditionUsed, "")
	require.NoError(t, err)

	overdue, err := f.uc.ListOverdue(20, 0)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, vencido.ID, overdue[0].ID)

	// Al devolverlo deja de aparecer en el reporte.
	_, err = f.uc.Return(ctx, vencido.ID, "emp-1", entity.ConditionDamaged, "volvió golpeado")
	require.NoError(t, err)
	overdue, err = f.uc.ListOverdue(20, 0)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestListForActor_EmpleadoVeSoloLosSuyos(t *testing.T) {
	f := newFixture()
	f.seedUser("emp-1", entity.RoleEmployee)
	f.seedUser("emp-2", entity.RoleEmployee)
	f.seedUser("ofi-1", entity.RoleInventoryOfficer)
	f.seedItem("item-1", entity.ItemAvailable)
	f.seedItem("item-2", entity.ItemAvailable)
	ctx := context.Background()

	l1, err := f.uc.Borrow(ctx, "emp-1", "item-1", manana(), entity.ConditionUsed, "")
	require.NoError(t, err)
	_, err = f.uc.Borrow(ctx, "emp-2", "item-2", manana(), entity.ConditionUsed, "")
	require.NoError(t, err)

	mine, err := f.uc.ListForActor("emp-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, l1.ID, mine[0].ID)

	all, err := f.uc.ListForActor("ofi-1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
