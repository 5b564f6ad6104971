package policy_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
	"github.com/nexuswms/nexus-api/internal/domain/policy"
)

func candidato(role, tipo string, qty int64, unitCost float64, stock int64) policy.Candidate {
	return policy.Candidate{
		ActorRole:      role,
		Type:           tipo,
		Quantity:       qty,
		UnitCost:       decimal.NewFromFloat(unitCost),
		AvailableStock: stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de decisión: rechazos
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_CantidadNoPositivaRechaza(t *testing.T) {
	for _, qty := range []int64{0, -5} {
		_, err := policy.Evaluate(candidato(entity.RoleOperator, entity.MovementTypeIN, qty, 10, 100), policy.DefaultThresholds())
		assert.ErrorIs(t, err, domain.ErrValidation, "cantidad %d debe rechazarse", qty)
	}
}

func TestEvaluate_TipoDesconocidoRechaza(t *testing.T) {
	_, err := policy.Evaluate(candidato(entity.RoleOperator, "RETURN", 5, 10, 100), policy.DefaultThresholds())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEvaluate_SalidaSobreSaldoRechaza(t *testing.T) {
	for _, tipo := range []string{entity.MovementTypeOUT, entity.MovementTypeTRANSFEROUT} {
		c := candidato(entity.RoleOperator, tipo, 150, 450, 120)
		c.ViaTransfer = tipo == entity.MovementTypeTRANSFEROUT
		_, err := policy.Evaluate(c, policy.DefaultThresholds())
		assert.ErrorIs(t, err, domain.ErrInsufficientStock, "tipo %s", tipo)
	}
}

func TestEvaluate_AdminNoOriginaMovimientosDirectos(t *testing.T) {
	_, err := policy.Evaluate(candidato(entity.RoleAdmin, entity.MovementTypeIN, 10, 10, 100), policy.DefaultThresholds())
	assert.ErrorIs(t, err, domain.ErrPolicy)
}

func TestEvaluate_AdminViaTrasladoAprobadoPasa(t *testing.T) {
	c := candidato(entity.RoleAdmin, entity.MovementTypeTRANSFEROUT, 10, 10, 100)
	c.ViaTransfer = true
	disp, err := policy.Evaluate(c, policy.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, policy.DispositionApproved, disp)
}

// La validación de cantidad va antes que el candado de admin: un admin con
// cantidad inválida recibe ErrValidation, no ErrPolicy.
func TestEvaluate_OrdenDeReglas(t *testing.T) {
	_, err := policy.Evaluate(candidato(entity.RoleAdmin, entity.MovementTypeOUT, 0, 10, 100), policy.DefaultThresholds())
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = policy.Evaluate(candidato(entity.RoleAdmin, entity.MovementTypeOUT, 500, 10, 100), policy.DefaultThresholds())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de decisión: disposiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_AjusteSobreUmbralEscalaARevision(t *testing.T) {
	casos := []struct {
		nombre   string
		qty      int64
		unitCost float64
	}{
		{"cantidad sobre 100", 101, 1},
		{"exposición sobre 5000", 50, 200},             // 50 × 200 = 10000
		{"escenario crítico 500 a 450", 500, 450},      // exposición 225000
		{"ambos umbrales a la vez", 500, 450},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			disp, err := policy.Evaluate(candidato(entity.RoleOperator, entity.MovementTypeADJUST, c.qty, c.unitCost, 1000), policy.DefaultThresholds())
			require.NoError(t, err)
			assert.Equal(t, policy.DispositionReviewRequired, disp)
		})
	}
}

func TestEvaluate_AjusteBajoUmbralesQuedaPendiente(t *testing.T) {
	// 100 × 50 = 5000 exacto: ningún umbral se supera (la regla es estricta).
	disp, err := policy.Evaluate(candidato(entity.RoleOperator, entity.MovementTypeADJUST, 100, 50, 1000), policy.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, policy.DispositionPending, disp)
}

func TestEvaluate_TiposDirectosApruebanInmediato(t *testing.T) {
	for _, tipo := range []string{entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypePURCHASE} {
		disp, err := policy.Evaluate(candidato(entity.RoleOperator, tipo, 50, 450, 120), policy.DefaultThresholds())
		require.NoError(t, err, "tipo %s", tipo)
		assert.Equal(t, policy.DispositionApproved, disp, "tipo %s", tipo)
	}
}

func TestEvaluate_UmbralesConfigurables(t *testing.T) {
	th := policy.Thresholds{ReviewQuantity: 10, ReviewExposure: decimal.NewFromInt(100)}
	disp, err := policy.Evaluate(candidato(entity.RoleOperator, entity.MovementTypeADJUST, 11, 1, 1000), th)
	require.NoError(t, err)
	assert.Equal(t, policy.DispositionReviewRequired, disp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de autoridad
// ──────────────────────────────────────────────────────────────────────────────

func TestCanResolve_Matriz(t *testing.T) {
	casos := []struct {
		role, status string
		esperado     bool
	}{
		{entity.RoleAdmin, entity.MovementStatusREVIEWREQUIRED, true},
		{entity.RoleManager, entity.MovementStatusREVIEWREQUIRED, false},
		{entity.RoleOperator, entity.MovementStatusREVIEWREQUIRED, false},
		{entity.RoleAdmin, entity.MovementStatusPENDING, true},
		{entity.RoleManager, entity.MovementStatusPENDING, true},
		{entity.RoleOperator, entity.MovementStatusPENDING, false},
		{entity.RoleAdmin, entity.MovementStatusAPPROVED, false},
		{entity.RoleAdmin, entity.MovementStatusREJECTED, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, policy.CanResolve(c.role, c.status), "%s sobre %s", c.role, c.status)
	}
}

func TestCanDecideTransfer(t *testing.T) {
	assert.True(t, policy.CanDecideTransfer(entity.RoleManager))
	assert.True(t, policy.CanDecideTransfer(entity.RoleAdmin))
	assert.False(t, policy.CanDecideTransfer(entity.RoleOperator))
}
