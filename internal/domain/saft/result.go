package saft

import (
	"fmt"
	"strings"
)

// Severidades de um achado de validação.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding um achado de validação com código estável e mensagem legível.
type Finding struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
	Severity string `json:"severity"`
}

// Critical indica se o achado é crítico: campo obrigatório em falta ou
// formato inválido (código contém REQUIRED ou INVALID).
func (f Finding) Critical() bool {
	return strings.Contains(f.Code, "REQUIRED") || strings.Contains(f.Code, "INVALID")
}

// Summary contagens agregadas de um resultado de validação.
type Summary struct {
	TotalErrors    int `json:"totalErrors"`
	TotalWarnings  int `json:"totalWarnings"`
	CriticalErrors int `json:"criticalErrors"`
}

// ValidationResult resultado agregado de uma execução de validação.
// Erros tornam o resultado inválido; avisos não.
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Summary  Summary   `json:"summary"`
}

// newResult constrói o resultado a partir das listas de achados.
func newResult(errors, warnings []Finding) ValidationResult {
	r := ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
	r.Summary.TotalErrors = len(errors)
	r.Summary.TotalWarnings = len(warnings)
	for _, f := range errors {
		if f.Critical() {
			r.Summary.CriticalErrors++
		}
	}
	return r
}

// merge agrega vários pares (errors, warnings) num único resultado.
// Nenhum sub-validador interrompe os restantes: o chamador recebe a lista completa.
func merge(parts ...partial) ValidationResult {
	var errors, warnings []Finding
	for _, p := range parts {
		errors = append(errors, p.errors...)
		warnings = append(warnings, p.warnings...)
	}
	return newResult(errors, warnings)
}

// partial par (errors, warnings) devolvido por cada sub-validador puro.
type partial struct {
	errors   []Finding
	warnings []Finding
}

func (p *partial) errorf(code, field, format string, args ...interface{}) {
	p.errors = append(p.errors, Finding{
		Code: code, Field: field, Severity: SeverityError,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *partial) warnf(code, field, format string, args ...interface{}) {
	p.warnings = append(p.warnings, Finding{
		Code: code, Field: field, Severity: SeverityWarning,
		Message: fmt.Sprintf(format, args...),
	})
}

// Report devolve uma versão textual do resultado, para consola e logs.
func (r ValidationResult) Report() string {
	var sb strings.Builder
	if r.Valid {
		sb.WriteString("Estrutura SAFT-AO válida")
	} else {
		sb.WriteString("Estrutura SAFT-AO inválida")
	}
	fmt.Fprintf(&sb, ": %d erro(s), %d aviso(s), %d crítico(s)\n",
		r.Summary.TotalErrors, r.Summary.TotalWarnings, r.Summary.CriticalErrors)
	for _, f := range r.Errors {
		fmt.Fprintf(&sb, "  [ERRO] %s: %s", f.Code, f.Message)
		if f.Field != "" {
			fmt.Fprintf(&sb, " (%s)", f.Field)
		}
		sb.WriteByte('\n')
	}
	for _, f := range r.Warnings {
		fmt.Fprintf(&sb, "  [AVISO] %s: %s", f.Code, f.Message)
		if f.Field != "" {
			fmt.Fprintf(&sb, " (%s)", f.Field)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
