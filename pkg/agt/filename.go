package agt

import (
	"fmt"
	"time"
)

// ExportFilename gera o nome do ficheiro SAFT-AO segundo a convenção:
//
//	SAFT_<ano><mêsInício>.xml                        exportação de um único mês
//	SAFT_<ano><mêsInício>_<mêsFim>.xml               vários meses no mesmo ano
//	SAFT_<anoInício><mêsInício>_<anoFim><mêsFim>.xml períodos que cruzam o ano
func ExportFilename(start, end time.Time) string {
	sy, sm := start.Year(), int(start.Month())
	ey, em := end.Year(), int(end.Month())
	switch {
	case sy == ey && sm == em:
		return fmt.Sprintf("SAFT_%d%02d.xml", sy, sm)
	case sy == ey:
		return fmt.Sprintf("SAFT_%d%02d_%02d.xml", sy, sm, em)
	default:
		return fmt.Sprintf("SAFT_%d%02d_%d%02d.xml", sy, sm, ey, em)
	}
}
