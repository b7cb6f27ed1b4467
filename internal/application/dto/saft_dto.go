package dto

// SAFTExportRequest parâmetros de uma exportação SAFT-AO.
// As datas são strings ISO (AAAA-MM-DD). Quando nenhuma das quatro flags de
// secção vem activa, todas as secções são incluídas.
type SAFTExportRequest struct {
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	IncludeCustomers bool   `json:"includeCustomers"`
	IncludeProducts  bool   `json:"includeProducts"`
	IncludeInvoices  bool   `json:"includeInvoices"`
	IncludePayments  bool   `json:"includePayments"`
	// Force emite o ficheiro mesmo com erros de validação (exportação degradada).
	Force bool `json:"force"`
}

// SAFTExportReport resumo devolvido quando a exportação não emite ficheiro
// (erros de validação) ou quando o cliente pede só o relatório.
type SAFTExportReport struct {
	Filename   string      `json:"filename,omitempty"`
	Digest     string      `json:"digest,omitempty"`
	Validation interface{} `json:"validation"`
}
