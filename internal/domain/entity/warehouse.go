package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario. Las
// coordenadas alimentan el mapa de la consola (externo al motor).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
