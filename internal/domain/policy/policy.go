// Package policy concentra toda regla de autorización del motor en una sola
// tabla de decisión: la disposición inicial de un movimiento candidato y la
// matriz de autoridad de resolución. Es lógica pura, sin efectos.
package policy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nexuswms/nexus-api/internal/domain"
	"github.com/nexuswms/nexus-api/internal/domain/entity"
)

// Disposition es el destino inicial de un movimiento aceptado.
type Disposition string

const (
	DispositionApproved       Disposition = entity.MovementStatusAPPROVED
	DispositionPending        Disposition = entity.MovementStatusPENDING
	DispositionReviewRequired Disposition = entity.MovementStatusREVIEWREQUIRED
)

// Thresholds umbrales de escalamiento para ajustes (configurables).
type Thresholds struct {
	ReviewQuantity int64           // ajustes por encima escalan a REVIEW_REQUIRED
	ReviewExposure decimal.Decimal // exposición monetaria (cantidad × costo unitario)
}

// DefaultThresholds devuelve los umbrales operativos estándar.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ReviewQuantity: 100,
		ReviewExposure: decimal.NewFromInt(5000),
	}
}

// Candidate describe un movimiento solicitado, aún sin registrar.
type Candidate struct {
	ActorRole      string
	Type           string
	Quantity       int64
	UnitCost       decimal.Decimal
	AvailableStock int64 // saldo actual en la bodega, relevante para salidas
	ViaTransfer    bool  // true si lo origina un traslado ya aprobado
}

// Exposure devuelve la exposición monetaria del candidato.
func (c Candidate) Exposure() decimal.Decimal {
	return decimal.NewFromInt(c.Quantity).Mul(c.UnitCost)
}

func validType(t string) bool {
	switch t {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUST,
		entity.MovementTypeTRANSFERIN, entity.MovementTypeTRANSFEROUT, entity.MovementTypePURCHASE:
		return true
	}
	return false
}

func outbound(t string) bool {
	return t == entity.MovementTypeOUT || t == entity.MovementTypeTRANSFEROUT
}

// Evaluate aplica la tabla de decisión, en este orden:
//  1. cantidad <= 0 o tipo desconocido -> ErrValidation
//  2. salida (OUT/TRANSFER_OUT) con cantidad > saldo -> ErrInsufficientStock
//  3. ADMIN originando un movimiento directo -> ErrPolicy (solo supervisión)
//  4. ADJUST sobre umbral de cantidad o exposición -> REVIEW_REQUIRED
//  5. ADJUST restante -> PENDING
//  6. cualquier otro tipo -> APPROVED inmediato
func Evaluate(c Candidate, th Thresholds) (Disposition, error) {
	if !validType(c.Type) {
		return "", fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrValidation, c.Type)
	}
	if c.Quantity <= 0 {
		return "", fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrValidation)
	}
	if outbound(c.Type) && c.Quantity > c.AvailableStock {
		return "", fmt.Errorf("%w: salida de %d con saldo %d", domain.ErrInsufficientStock, c.Quantity, c.AvailableStock)
	}
	if c.ActorRole == entity.RoleAdmin && !c.ViaTransfer {
		return "", fmt.Errorf("%w: los administradores están restringidos a supervisión y no originan movimientos", domain.ErrPolicy)
	}
	if c.Type == entity.MovementTypeADJUST {
		if c.Quantity > th.ReviewQuantity || c.Exposure().GreaterThan(th.ReviewExposure) {
			return DispositionReviewRequired, nil
		}
		return DispositionPending, nil
	}
	return DispositionApproved, nil
}

// CanResolve implementa la matriz de autoridad de resolución: REVIEW_REQUIRED
// solo lo decide ADMIN; PENDING lo decide MANAGER o ADMIN. Ver un ítem no
// implica poder decidirlo.
func CanResolve(role, status string) bool {
	switch status {
	case entity.MovementStatusREVIEWREQUIRED:
		return role == entity.RoleAdmin
	case entity.MovementStatusPENDING:
		return role == entity.RoleManager || role == entity.RoleAdmin
	}
	return false
}

// CanDecideTransfer indica si el rol puede decidir un traslado pendiente.
func CanDecideTransfer(role string) bool {
	return role == entity.RoleManager || role == entity.RoleAdmin
}
