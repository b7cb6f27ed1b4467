package saft

import (
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
	"github.com/shopspring/decimal"
)

// consumidorFinal NIF genérico admitido sem dígito de controlo.
const consumidorFinal = "999999999"

var hundred = decimal.NewFromInt(100)

// validateCustomers verifica unicidade de CustomerID e campos obrigatórios.
// Os IDs são acumulados num set explícito durante a passagem: a segunda
// ocorrência de um ID é um erro, nunca uma substituição silenciosa.
func validateCustomers(customers []Customer) partial {
	var p partial
	seen := make(map[string]bool, len(customers))

	for i, c := range customers {
		field := fieldIndex("masterFiles.customers", i)
		if c.CustomerID == "" {
			p.errorf("CUSTOMER_ID_REQUIRED", field, "cliente sem CustomerID")
		} else if seen[c.CustomerID] {
			p.errorf("CUSTOMER_ID_DUPLICATE", field, "CustomerID %q duplicado", c.CustomerID)
		} else {
			seen[c.CustomerID] = true
		}

		if c.CompanyName == "" {
			p.errorf("CUSTOMER_NAME_REQUIRED", field, "cliente %q sem nome", c.CustomerID)
		}
		if c.CustomerTaxID != "" && c.CustomerTaxID != consumidorFinal {
			if err := agt.ValidateNIF(c.CustomerTaxID); err != nil {
				p.errorf("CUSTOMER_NIF_INVALID", field, "cliente %q com NIF inválido: %v", c.CustomerID, err)
			}
		}
		if c.BillingAddress.AddressDetail == "" || c.BillingAddress.City == "" {
			p.errorf("CUSTOMER_ADDRESS_REQUIRED", field, "cliente %q sem morada de facturação completa", c.CustomerID)
		}
	}
	return p
}

// validateProducts verifica unicidade de códigos e o enum de tipos.
func validateProducts(products []Product) partial {
	var p partial
	seen := make(map[string]bool, len(products))

	for i, pr := range products {
		field := fieldIndex("masterFiles.products", i)
		if pr.ProductCode == "" {
			p.errorf("PRODUCT_CODE_REQUIRED", field, "produto sem código")
		} else if seen[pr.ProductCode] {
			p.errorf("PRODUCT_CODE_DUPLICATE", field, "código de produto %q duplicado", pr.ProductCode)
		} else {
			seen[pr.ProductCode] = true
		}

		if pr.ProductDesc == "" {
			p.errorf("PRODUCT_DESCRIPTION_REQUIRED", field, "produto %q sem descrição", pr.ProductCode)
		}
		if !agt.ValidProductTypes[pr.ProductType] {
			p.errorf("PRODUCT_TYPE_INVALID", field, "produto %q com tipo desconhecido %q", pr.ProductCode, pr.ProductType)
		}
	}
	return p
}

// validateTaxTable verifica tipo/código obrigatórios e percentagem em [0, 100].
func validateTaxTable(entries []TaxTableEntry) partial {
	var p partial
	for i, t := range entries {
		field := fieldIndex("masterFiles.taxTable", i)
		if t.TaxType == "" {
			p.errorf("TAX_TYPE_REQUIRED", field, "entrada da tabela de impostos sem tipo")
		}
		if t.TaxCode == "" {
			p.errorf("TAX_CODE_REQUIRED", field, "entrada da tabela de impostos sem código")
		}
		if t.Percentage.IsNegative() || t.Percentage.GreaterThan(hundred) {
			p.errorf("TAX_PERCENTAGE_INVALID", field, "percentagem %s fora de [0, 100] (código %q)", t.Percentage.String(), t.TaxCode)
		}
	}
	return p
}
