package entity

import (
	"time"

	"github.com/nexuswms/nexus-api/internal/domain"
)

// Stock representa el saldo actual de un producto en una bodega.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int64 // invariante: nunca negativo
	UpdatedAt   time.Time
}

// Apply suma delta al saldo (delta puede ser negativo). Es la defensa de
// último nivel de la invariante de no-negatividad: falla con
// ErrInsufficientStock si el resultado quedaría bajo cero, aunque los
// callers ya hayan pre-validado.
func (s *Stock) Apply(delta int64, now time.Time) error {
	next := s.Quantity + delta
	if next < 0 {
		return domain.ErrInsufficientStock
	}
	s.Quantity = next
	s.UpdatedAt = now
	return nil
}
