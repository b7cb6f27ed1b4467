// seed importa para PostgreSQL os ficheiros CSV exportados do sistema antigo
// da secretaria (Excel em Windows-1252, separador ponto e vírgula):
//
//	go run ./cmd/seed alunos.csv rubricas.csv [pagamentos.csv]
//
// alunos.csv:     codigo;nome;encarregado;nif;morada;cidade;provincia;telefone;email;turma
// rubricas.csv:   codigo;nome;grupo;tipo;preco;codigo_iva
// pagamentos.csv: codigo_aluno;data;metodo;codigo_rubrica;quantidade;preco_unitario
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/infrastructure/postgres"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed alunos.csv rubricas.csv [pagamentos.csv]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("carregar configuração", err)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fatal("ligação a PostgreSQL", err)
	}
	defer pool.Close()

	studentRepo := postgres.NewStudentRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)

	students, err := importStudents(os.Args[1], studentRepo)
	if err != nil {
		fatal("importar alunos", err)
	}
	services, err := importServices(os.Args[2], serviceRepo)
	if err != nil {
		fatal("importar rubricas", err)
	}
	fmt.Printf("importados %d alunos e %d rubricas\n", students, services)

	if len(os.Args) > 3 {
		payments, err := importPayments(os.Args[3], studentRepo, serviceRepo, paymentRepo)
		if err != nil {
			fatal("importar pagamentos", err)
		}
		fmt.Printf("importados %d pagamentos\n", payments)
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// openLegacyCSV abre o CSV do sistema antigo, transcodificando de Windows-1252.
func openLegacyCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	return r, f, nil
}

func importStudents(path string, repo *postgres.StudentRepo) (int, error) {
	r, f, err := openLegacyCSV(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(rec) < 10 || rec[0] == "codigo" {
			continue
		}
		now := time.Now()
		s := &entity.Student{
			ID:           uuid.NewString(),
			Code:         rec[0],
			Name:         rec[1],
			GuardianName: rec[2],
			NIF:          rec[3],
			Address:      rec[4],
			City:         rec[5],
			Province:     rec[6],
			Phone:        rec[7],
			Email:        rec[8],
			ClassName:    rec[9],
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.Create(s); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			return count, fmt.Errorf("aluno %s: %w", s.Code, err)
		}
		count++
	}
	return count, nil
}

func importServices(path string, repo *postgres.ServiceRepo) (int, error) {
	r, f, err := openLegacyCSV(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(rec) < 6 || rec[0] == "codigo" {
			continue
		}
		price, err := decimal.NewFromString(rec[4])
		if err != nil {
			return count, fmt.Errorf("rubrica %s: preço %q: %w", rec[0], rec[4], err)
		}
		now := time.Now()
		s := &entity.Service{
			ID:        uuid.NewString(),
			Code:      rec[0],
			Name:      rec[1],
			Group:     rec[2],
			Type:      rec[3],
			Price:     price,
			TaxCode:   rec[5],
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(s); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			return count, fmt.Errorf("rubrica %s: %w", s.Code, err)
		}
		count++
	}
	return count, nil
}

func importPayments(path string, students *postgres.StudentRepo, services *postgres.ServiceRepo, payments *postgres.PaymentRepo) (int, error) {
	r, f, err := openLegacyCSV(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(rec) < 6 || rec[0] == "codigo_aluno" {
			continue
		}

		student, err := students.GetByCode(rec[0])
		if err != nil {
			return count, fmt.Errorf("aluno %s: %w", rec[0], err)
		}
		service, err := services.GetByCode(rec[3])
		if err != nil {
			return count, fmt.Errorf("rubrica %s: %w", rec[3], err)
		}
		date, err := time.Parse("2006-01-02", rec[1])
		if err != nil {
			return count, fmt.Errorf("data %q: %w", rec[1], err)
		}
		quantity, err := decimal.NewFromString(rec[4])
		if err != nil {
			return count, fmt.Errorf("quantidade %q: %w", rec[4], err)
		}
		unitPrice, err := decimal.NewFromString(rec[5])
		if err != nil {
			return count, fmt.Errorf("preço %q: %w", rec[5], err)
		}

		receipt, err := payments.NextReceiptNumber(date.Year())
		if err != nil {
			return count, err
		}

		total := quantity.Mul(unitPrice).Round(2)
		now := time.Now()
		paymentID := uuid.NewString()
		p := &entity.Payment{
			ID:            paymentID,
			ReceiptNumber: receipt,
			StudentID:     student.ID,
			Date:          date,
			Method:        rec[2],
			Status:        entity.PaymentStatusPaid,
			StatusDate:    date,
			UserID:        "seed",
			Amount:        total,
			Items: []entity.PaymentItem{{
				ID:          uuid.NewString(),
				PaymentID:   paymentID,
				ServiceID:   service.ID,
				Description: service.Name,
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				Total:       total,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := payments.Create(p); err != nil {
			return count, fmt.Errorf("pagamento do aluno %s: %w", rec[0], err)
		}
		count++
	}
	return count, nil
}
