package workflow_test

import (
	"context"
	"sync"

	"github.com/jhoicas/activos-api/internal/application/workflow"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por todos los repos de prueba.
// El mutex por método emula el aislamiento por fila; el fakeTxRunner
// serializa transacciones completas como lo haría el FOR UPDATE real.
type memStore struct {
	mu        sync.Mutex
	users     []*entity.User
	units     []*entity.BusinessUnit
	products  []*entity.Product
	items     []*entity.Item
	requests  []*entity.Request
	approvals []*entity.RequestApproval
	notifs    []*entity.Notification
	audits    []*entity.AuditLog
}

func newMemStore() *memStore { return &memStore{} }

// ── user repo ─────────────────────────────────────────────────────────────────

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

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

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

func (r *memUserRepo) Update(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.users {
		if existing.ID == u.ID {
			c := *u
			r.s.users[i] = &c
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) UpdateRole(userID, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == userID {
			u.Role = role
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *memUserRepo) Delete(id string) error { return nil }

// ── unit repo ─────────────────────────────────────────────────────────────────

type memUnitRepo struct{ s *memStore }

func (r *memUnitRepo) Create(u *entity.BusinessUnit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *u
	r.s.units = append(r.s.units, &c)
	return nil
}

func (r *memUnitRepo) GetByID(id string) (*entity.BusinessUnit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.units {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUnitRepo) Update(u *entity.BusinessUnit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.units {
		if existing.ID == u.ID {
			c := *u
			r.s.units[i] = &c
		}
	}
	return nil
}

func (r *memUnitRepo) List(limit, offset int) ([]*entity.BusinessUnit, error) {
	return nil, nil
}

// ── product repo ──────────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *p
	r.s.products = append(r.s.products, &c)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetByName(name string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == name {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error { return nil }

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) Delete(id string) error { return nil }

// ── item repo ─────────────────────────────────────────────────────────────────

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

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

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
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ProductID == productID && it.AssignedToID == employeeID {
			c := *it
			return &c, nil
		}
	}
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

// ── request repo ──────────────────────────────────────────────────────────────

type memRequestRepo struct{ s *memStore }

func (r *memRequestRepo) Create(req *entity.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *req
	r.s.requests = append(r.s.requests, &c)
	return nil
}

func (r *memRequestRepo) GetByID(id string) (*entity.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.ID == id {
			c := *req
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRequestRepo) GetForUpdate(id string) (*entity.Request, error) {
	return r.GetByID(id)
}

func (r *memRequestRepo) Update(req *entity.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.requests {
		if existing.ID == req.ID {
			c := *req
			r.s.requests[i] = &c
		}
	}
	return nil
}

func (r *memRequestRepo) ListByEmployee(employeeID string, limit, offset int) ([]*entity.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Request
	for _, req := range r.s.requests {
		if req.EmployeeID == employeeID {
			c := *req
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Request
	for _, req := range r.s.requests {
		if req.Status == status {
			c := *req
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memRequestRepo) ListPendingByUnit(unitID string, limit, offset int) ([]*entity.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byID := make(map[string]*entity.User)
	for _, u := range r.s.users {
		byID[u.ID] = u
	}
	var out []*entity.Request
	for _, req := range r.s.requests {
		emp := byID[req.EmployeeID]
		if emp != nil && emp.BusinessUnitID == unitID && req.Status == entity.RequestPendingDirector {
			c := *req
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── approval / notification / audit repos ─────────────────────────────────────

type memApprovalRepo struct{ s *memStore }

func (r *memApprovalRepo) Create(a *entity.RequestApproval) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *a
	r.s.approvals = append(r.s.approvals, &c)
	return nil
}

func (r *memApprovalRepo) ListByRequest(requestID string) ([]*entity.RequestApproval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.RequestApproval
	for _, a := range r.s.approvals {
		if a.RequestID == requestID {
			c := *a
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
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.s.notifs {
		if n.RecipientID == recipientID {
			c := *n
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memNotifRepo) MarkRead(id, recipientID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifs {
		if n.ID == id && n.RecipientID == recipientID {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *l
	r.s.audits = append(r.s.audits, &c)
	return nil
}

func (r *memAuditRepo) List(filter repository.AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AuditLog
	for _, l := range r.s.audits {
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.ActionType != "" && l.ActionType != filter.ActionType {
			continue
		}
		if filter.ObjectType != "" && l.ObjectType != filter.ObjectType {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

// ── tx runner ─────────────────────────────────────────────────────────────────

// fakeTxRunner serializa los callbacks con un mutex, igual que el FOR UPDATE
// de la implementación real: de dos transacciones concurrentes sobre la misma
// solicitud, la segunda observa el estado que dejó la primera.
type fakeTxRunner struct {
	s    *memStore
	txMu sync.Mutex
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	requests repository.RequestRepository,
	approvals repository.RequestApprovalRepository,
	items repository.ItemRepository,
	notifs repository.NotificationRepository,
	audits repository.AuditLogRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(&memRequestRepo{r.s}, &memApprovalRepo{r.s}, &memItemRepo{r.s}, &memNotifRepo{r.s}, &memAuditRepo{r.s})
}

var _ workflow.TxRunner = (*fakeTxRunner)(nil)
