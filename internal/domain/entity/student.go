package entity

import "time"

// Student representa um aluno matriculado (entidade facturável no SAFT).
// NIF é o do encarregado de educação quando o aluno não tem um próprio.
type Student struct {
	ID           string
	Code         string // número de estudante, único na escola
	Name         string
	GuardianName string // encarregado de educação
	NIF          string // opcional; validado com dígito de controlo quando presente
	Address      string
	City         string
	PostalCode   string
	Province     string
	Phone        string
	Email        string
	ClassName    string // turma (ex: "10A")
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
