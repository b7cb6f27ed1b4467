package saft

import (
	"time"

	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// validateHeader verifica os campos obrigatórios e os literais fixos do Header.
func validateHeader(h Header, now time.Time) partial {
	var p partial

	if h.AuditFileVersion == "" {
		p.errorf("HEADER_VERSION_REQUIRED", "header.auditFileVersion", "versão do ficheiro em falta")
	} else if h.AuditFileVersion != agt.AuditFileVersion {
		p.errorf("HEADER_VERSION_INVALID", "header.auditFileVersion", "versão %q não corresponde ao esquema %s", h.AuditFileVersion, agt.AuditFileVersion)
	}

	if h.TaxRegistrationNum == "" {
		p.errorf("HEADER_NIF_REQUIRED", "header.taxRegistrationNumber", "NIF da entidade em falta")
	} else if err := agt.ValidateNIF(h.TaxRegistrationNum); err != nil {
		p.errorf("HEADER_NIF_INVALID", "header.taxRegistrationNumber", "NIF da entidade inválido: %v", err)
	}

	if h.CompanyName == "" {
		p.errorf("HEADER_COMPANY_NAME_REQUIRED", "header.companyName", "nome da entidade em falta")
	}

	if h.CompanyAddress.AddressDetail == "" || h.CompanyAddress.City == "" {
		p.errorf("HEADER_ADDRESS_REQUIRED", "header.companyAddress", "morada da entidade incompleta (detalhe e cidade são obrigatórios)")
	}
	if h.CompanyAddress.Country != agt.CountryAO {
		p.errorf("HEADER_COUNTRY_INVALID", "header.companyAddress.country", "país %q; o ficheiro SAFT-AO exige %s", h.CompanyAddress.Country, agt.CountryAO)
	}

	if h.CurrencyCode != agt.CurrencyAOA {
		p.errorf("HEADER_CURRENCY_INVALID", "header.currencyCode", "moeda %q; o ficheiro SAFT-AO exige %s", h.CurrencyCode, agt.CurrencyAOA)
	}

	if h.StartDate.IsZero() || h.EndDate.IsZero() {
		p.errorf("HEADER_PERIOD_REQUIRED", "header.startDate", "período fiscal em falta")
	} else {
		if h.StartDate.After(h.EndDate) {
			p.errorf("HEADER_DATE_RANGE_INVALID", "header.startDate", "data de início %s posterior à data de fim %s", h.StartDate.Format(dateISO), h.EndDate.Format(dateISO))
		}
		if h.EndDate.After(now) {
			p.warnf("HEADER_END_DATE_FUTURE", "header.endDate", "data de fim %s no futuro", h.EndDate.Format(dateISO))
		}
	}

	if h.SoftwareCertNumber == "" {
		p.errorf("HEADER_CERTIFICATE_REQUIRED", "header.softwareCertificateNumber", "número do certificado de software em falta")
	}
	if h.ProductCompanyNIF == "" {
		p.errorf("HEADER_SOFTWARE_NIF_REQUIRED", "header.productCompanyTaxID", "NIF do produtor do software em falta")
	} else if err := agt.ValidateNIF(h.ProductCompanyNIF); err != nil {
		p.errorf("HEADER_SOFTWARE_NIF_INVALID", "header.productCompanyTaxID", "NIF do produtor do software inválido: %v", err)
	}

	return p
}
