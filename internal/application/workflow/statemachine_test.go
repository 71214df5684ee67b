package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// transición devuelve el estado resultante de una decisión legal, o "" si la
// combinación estado/actor no admite transición. Es el grafo completo: todo lo
// que no está aquí debe fallar con ErrInvalidState.
func transicion(estado, rolActor string, aprueba bool) string {
	switch {
	case estado == entity.RequestPendingDirector && rolActor == entity.RoleDirector && aprueba:
		return entity.RequestPendingOfficer
	case estado == entity.RequestPendingDirector && rolActor == entity.RoleDirector && !aprueba:
		return entity.RequestRejectedDirector
	case estado == entity.RequestPendingOfficer && rolActor == entity.RoleInventoryOfficer && aprueba:
		return entity.RequestApproved
	case estado == entity.RequestPendingOfficer && rolActor == entity.RoleInventoryOfficer && !aprueba:
		return entity.RequestRejectedOfficer
	}
	return ""
}

// Propiedad: ante cualquier secuencia de decisiones de director y oficial, la
// solicitud solo recorre aristas del grafo declarado; toda decisión fuera de
// lugar falla con ErrInvalidState sin mover el estado, y APPROVED solo se
// alcanza desde PENDING_OFFICER por mano del oficial.
func TestMaquinaDeEstados_SoloTransicionesLegales(t *testing.T) {
	actores := map[string]string{
		"dir-1": entity.RoleDirector,
		"ofi-1": entity.RoleInventoryOfficer,
	}

	rapid.Check(t, func(rt *rapid.T) {
		f := escenario()
		ctx := context.Background()

		req, err := f.uc.Submit(ctx, "emp-1", "prod-1", "motivo")
		require.NoError(rt, err)

		estado := req.Status
		pasos := rapid.IntRange(1, 6).Draw(rt, "pasos")
		for i := 0; i < pasos; i++ {
			actorID := rapid.SampledFrom([]string{"dir-1", "ofi-1"}).Draw(rt, "actor")
			aprueba := rapid.Bool().Draw(rt, "aprueba")

			var opErr error
			if aprueba {
				_, opErr = f.uc.Approve(ctx, req.ID, actorID)
			} else {
				_, opErr = f.uc.Reject(ctx, req.ID, actorID)
			}

			esperado := transicion(estado, actores[actorID], aprueba)
			actual, err := f.uc.GetByID(req.ID)
			require.NoError(rt, err)

			if esperado == "" {
				assert.ErrorIs(rt, opErr, domain.ErrInvalidState)
				assert.Equal(rt, estado, actual.Status, "una decisión ilegal no debe mover el estado")
			} else {
				require.NoError(rt, opErr)
				assert.Equal(rt, esperado, actual.Status)
			}
			estado = actual.Status
		}

		final, err := f.uc.GetByID(req.ID)
		require.NoError(rt, err)
		if final.Status == entity.RequestApproved {
			require.NotNil(rt, final.FinalApprovalDate)
			item, err := (&memItemRepo{f.s}).GetByID("item-1")
			require.NoError(rt, err)
			assert.Equal(rt, entity.ItemAssigned, item.Status)
			assert.Equal(rt, "emp-1", item.AssignedToID)

			history, err := f.uc.History(req.ID)
			require.NoError(rt, err)
			require.Len(rt, history, 2)
			assert.Equal(rt, entity.RoleDirector, history[0].Role)
			assert.Equal(rt, entity.RoleInventoryOfficer, history[1].Role)
		}
	})
}
