package agt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExportFilename(t *testing.T) {
	casos := []struct {
		nome     string
		start    time.Time
		end      time.Time
		esperado string
	}{
		{"um mês", date(2024, time.January, 1), date(2024, time.January, 31), "SAFT_202401.xml"},
		{"vários meses no mesmo ano", date(2024, time.January, 1), date(2024, time.March, 31), "SAFT_202401_03.xml"},
		{"período que cruza o ano", date(2024, time.November, 1), date(2025, time.February, 28), "SAFT_202411_202502.xml"},
		{"mês de um dígito com zero à esquerda", date(2024, time.July, 1), date(2024, time.July, 31), "SAFT_202407.xml"},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, agt.ExportFilename(c.start, c.end))
		})
	}
}
