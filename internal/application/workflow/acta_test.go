package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/workflow"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// fakeGenerator captura los datos que recibiría el generador PDF real.
type fakeGenerator struct {
	last workflow.ActaData
}

func (g *fakeGenerator) GenerateActa(_ context.Context, data workflow.ActaData) ([]byte, error) {
	g.last = data
	return []byte("%PDF-fake"), nil
}

func newActaFixture(f *fixture, gen workflow.ActaGenerator) *workflow.ActaUseCase {
	return workflow.NewActaUseCase(
		&memRequestRepo{f.s},
		&memUserRepo{f.s},
		&memProductRepo{f.s},
		&memItemRepo{f.s},
		&memApprovalRepo{f.s},
		gen,
	)
}

func TestActa_SoloParaSolicitudesAprobadas(t *testing.T) {
	f := escenario()
	gen := &fakeGenerator{}
	acta := newActaFixture(f, gen)
	ctx := context.Background()

	req, err := f.uc.Submit(ctx, "emp-1", "prod-1", "motivo")
	require.NoError(t, err)

	// Pendiente: aún no hay entrega que certificar.
	_, err = acta.Generate(ctx, req.ID, "emp-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.Approve(ctx, req.ID, "dir-1")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, req.ID, "ofi-1")
	require.NoError(t, err)

	pdf, err := acta.Generate(ctx, req.ID, "emp-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	// El acta lleva la solicitud, el empleado, el producto, el item asignado
	// y el historial completo de decisiones.
	require.NotNil(t, gen.last.Request)
	assert.Equal(t, req.ID, gen.last.Request.ID)
	assert.Equal(t, "emp-1", gen.last.Employee.ID)
	assert.Equal(t, "prod-1", gen.last.Product.ID)
	require.NotNil(t, gen.last.Item)
	assert.Equal(t, "item-1", gen.last.Item.ID)
	assert.Len(t, gen.last.Approvals, 2)
}

func TestActa_EmpleadoAjenoForbidden(t *testing.T) {
	f := escenario()
	f.seedUser("emp-2", entity.RoleEmployee, "unit-1")
	acta := newActaFixture(f, &fakeGenerator{})
	ctx := context.Background()

	req, err := f.uc.Submit(ctx, "emp-1", "prod-1", "motivo")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, req.ID, "dir-1")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, req.ID, "ofi-1")
	require.NoError(t, err)

	// Otro empleado no puede pedir el acta ajena; el oficial sí.
	_, err = acta.Generate(ctx, req.ID, "emp-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	pdf, err := acta.Generate(ctx, req.ID, "ofi-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestActa_SolicitudInexistenteNotFound(t *testing.T) {
	f := escenario()
	acta := newActaFixture(f, &fakeGenerator{})

	_, err := acta.Generate(context.Background(), "req-x", "emp-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
