package entity

import "time"

// Company representa una empresa (tenant). Todos los documentos y saldos del ledger
// pertenecen a una empresa.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
