package entity

import "time"

// Company representa a escola emitente (dados do Header do SAFT).
type Company struct {
	ID         string
	NIF        string
	Name       string
	Address    string
	City       string
	PostalCode string
	Province   string
	Phone      string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
