package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/dto"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/export"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain"
	pkgagt "github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// SAFTHandler trata a exportação e a validação SAFT-AO.
type SAFTHandler struct {
	uc *export.UseCase
}

// NewSAFTHandler constrói o handler SAFT.
func NewSAFTHandler(uc *export.UseCase) *SAFTHandler {
	return &SAFTHandler{uc: uc}
}

// Export POST /api/saft/export
//
// Devolve o XML como attachment quando a exportação é emitida; com erros de
// validação (sem force) devolve 422 com o relatório completo. O digest e o
// nome do ficheiro seguem nos headers X-Saft-Digest e Content-Disposition.
func (h *SAFTHandler) Export(c *fiber.Ctx) error {
	var req dto.SAFTExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo do pedido inválido"})
	}

	result, err := h.uc.Export(req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrExportBlocked):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.SAFTExportReport{Validation: result.Validation})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPANY_MISSING", Message: "dados da escola não configurados"})
		case errors.Is(err, pkgagt.ErrKeyNotLoaded):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "KEY_NOT_LOADED", Message: "chave privada da cadeia de hashes não carregada"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Set("X-Saft-Digest", result.Digest)
	return c.Send(result.XML)
}

// Validate POST /api/saft/validate
//
// Corre o pipeline até à validação e devolve o relatório, sem emitir ficheiro.
func (h *SAFTHandler) Validate(c *fiber.Ctx) error {
	var req dto.SAFTExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo do pedido inválido"})
	}

	validation, err := h.uc.Validate(req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPANY_MISSING", Message: "dados da escola não configurados"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(validation)
}
