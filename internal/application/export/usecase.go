package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/dto"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/repository"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/saft"
	infraagt "github.com/emanuel-malungo/systemSchool-sub001/internal/infrastructure/agt"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/logger"
)

// Result resultado de uma exportação concluída.
type Result struct {
	Filename   string
	XML        []byte
	Digest     string
	Validation saft.ValidationResult
}

// UseCase orquestra o pipeline de exportação SAFT-AO:
// carregar registos, mapear, assinar a cadeia, validar, serializar.
// Corre de forma síncrona; uma exportação de cada vez por instância chamadora.
type UseCase struct {
	companies repository.CompanyRepository
	students  repository.StudentRepository
	services  repository.ServiceRepository
	payments  repository.PaymentRepository
	keys      infraagt.KeyStore
	builder   *infraagt.XMLBuilderService
	software  SoftwareInfo
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase cria o orquestrador de exportação.
func NewUseCase(
	companies repository.CompanyRepository,
	students repository.StudentRepository,
	services repository.ServiceRepository,
	payments repository.PaymentRepository,
	keys infraagt.KeyStore,
	software SoftwareInfo,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		companies: companies,
		students:  students,
		services:  services,
		payments:  payments,
		keys:      keys,
		builder:   infraagt.NewXMLBuilderService(),
		software:  software,
		log:       log,
		now:       time.Now,
	}
}

// Export corre o pipeline completo para o pedido dado.
//
// Erros de validação bloqueiam a emissão (devolve domain.ErrExportBlocked com
// o relatório preenchido no Result), excepto com req.Force, que emite o
// ficheiro na mesma e deixa o relatório anexo. A ausência da chave privada é
// sempre fatal: sem ela não existe cadeia de hashes.
func (uc *UseCase) Export(req dto.SAFTExportRequest) (*Result, error) {
	opts, err := parseOptions(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	company, err := uc.companies.Get()
	if err != nil {
		return nil, fmt.Errorf("export: carregar dados da escola: %w", err)
	}
	students, err := uc.students.ListActive()
	if err != nil {
		return nil, fmt.Errorf("export: carregar alunos: %w", err)
	}
	services, err := uc.services.ListActive()
	if err != nil {
		return nil, fmt.Errorf("export: carregar rubricas: %w", err)
	}
	payments, err := uc.payments.ListByPeriod(opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, fmt.Errorf("export: carregar pagamentos do período: %w", err)
	}

	af, err := MapAuditFile(MapperInput{
		Company:  company,
		Software: uc.software,
		Students: students,
		Services: services,
		Payments: payments,
		Options:  opts,
		Now:      uc.now(),
	})
	if err != nil {
		return nil, err
	}

	private, err := uc.keys.LoadPrivate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", agt.ErrKeyNotLoaded, err)
	}
	signer := infraagt.NewChainSigner(private, nil)

	af.SourceDocuments.Invoices, err = saft.SignChain(af.SourceDocuments.Invoices, signer)
	if err != nil {
		return nil, err
	}
	af.SourceDocuments.Payments = saft.SignPayments(af.SourceDocuments.Payments)

	validation := saft.NewValidator(signer).Validate(af)
	uc.log.Info().
		Str("period", agt.ExportFilename(opts.StartDate, opts.EndDate)).
		Int("invoices", af.SourceDocuments.NumberOfInvoiceEntries).
		Int("payments", af.SourceDocuments.NumberOfPaymentEntries).
		Int("errors", validation.Summary.TotalErrors).
		Int("warnings", validation.Summary.TotalWarnings).
		Msg("validação SAFT concluída")

	if !validation.Valid && !req.Force {
		return &Result{Validation: validation}, domain.ErrExportBlocked
	}

	xmlBytes := uc.builder.Serialize(af)
	digest, err := infraagt.DocumentDigest(xmlBytes)
	if err != nil {
		return nil, err
	}

	return &Result{
		Filename:   agt.ExportFilename(opts.StartDate, opts.EndDate),
		XML:        xmlBytes,
		Digest:     digest,
		Validation: validation,
	}, nil
}

// Validate corre só o mapeamento e a validação, sem exigir chave privada e
// sem emitir ficheiro. A verificação de assinaturas usa a chave pública se
// estiver disponível; sem ela a validação corre standalone.
func (uc *UseCase) Validate(req dto.SAFTExportRequest) (saft.ValidationResult, error) {
	opts, err := parseOptions(req)
	if err != nil {
		return saft.ValidationResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	company, err := uc.companies.Get()
	if err != nil {
		return saft.ValidationResult{}, fmt.Errorf("export: carregar dados da escola: %w", err)
	}
	students, err := uc.students.ListActive()
	if err != nil {
		return saft.ValidationResult{}, fmt.Errorf("export: carregar alunos: %w", err)
	}
	services, err := uc.services.ListActive()
	if err != nil {
		return saft.ValidationResult{}, fmt.Errorf("export: carregar rubricas: %w", err)
	}
	payments, err := uc.payments.ListByPeriod(opts.StartDate, opts.EndDate)
	if err != nil {
		return saft.ValidationResult{}, fmt.Errorf("export: carregar pagamentos do período: %w", err)
	}

	af, err := MapAuditFile(MapperInput{
		Company:  company,
		Software: uc.software,
		Students: students,
		Services: services,
		Payments: payments,
		Options:  opts,
		Now:      uc.now(),
	})
	if err != nil {
		return saft.ValidationResult{}, err
	}

	var verifier agt.Verifier
	if public, err := uc.keys.LoadPublic(); err == nil {
		verifier = infraagt.NewChainSigner(nil, public)
	}
	if private, err := uc.keys.LoadPrivate(); err == nil {
		signer := infraagt.NewChainSigner(private, nil)
		if af.SourceDocuments.Invoices, err = saft.SignChain(af.SourceDocuments.Invoices, signer); err != nil {
			return saft.ValidationResult{}, err
		}
	}

	return saft.NewValidator(verifier).Validate(af), nil
}

// parseOptions converte o pedido em opções do mapeador. Datas ISO
// (AAAA-MM-DD); a data de fim é inclusiva (estendida até ao fim do dia).
// Sem nenhuma flag de secção activa, todas as secções são incluídas.
func parseOptions(req dto.SAFTExportRequest) (Options, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return Options{}, fmt.Errorf("data de início inválida %q", req.StartDate)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return Options{}, fmt.Errorf("data de fim inválida %q", req.EndDate)
	}
	if end.Before(start) {
		return Options{}, errors.New("a data de fim é anterior à data de início")
	}

	opts := Options{
		StartDate:        start,
		EndDate:          end.Add(24*time.Hour - time.Second),
		IncludeCustomers: req.IncludeCustomers,
		IncludeProducts:  req.IncludeProducts,
		IncludeInvoices:  req.IncludeInvoices,
		IncludePayments:  req.IncludePayments,
	}
	if !opts.IncludeCustomers && !opts.IncludeProducts && !opts.IncludeInvoices && !opts.IncludePayments {
		opts.IncludeCustomers = true
		opts.IncludeProducts = true
		opts.IncludeInvoices = true
		opts.IncludePayments = true
	}
	return opts, nil
}
