// Binário de back-office para a exportação SAFT-AO sem servidor HTTP:
//
//	saft keygen                      gera o par de chaves da cadeia de hashes
//	saft validate --from ... --to    relatório de validação do período
//	saft export --from ... --to      emite o ficheiro XML no directório de saída
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/dto"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/export"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain"
	infraagt "github.com/emanuel-malungo/systemSchool-sub001/internal/infrastructure/agt"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/infrastructure/postgres"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/config"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/logger"
)

var (
	flagFrom  string
	flagTo    string
	flagForce bool
)

var rootCmd = &cobra.Command{
	Use:           "saft",
	Short:         "Exportação SAFT-AO do sistema escolar (AGT, esquema AO_1.04_01)",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Gera e grava o par de chaves RSA da cadeia de hashes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store := infraagt.NewFileKeyStore(cfg.SAFT.PrivateKeyPath, cfg.SAFT.PublicKeyPath)
		if _, err := store.LoadPrivate(); err == nil {
			return fmt.Errorf("já existe uma chave privada em %s; remova-a primeiro se quiser substituí-la", cfg.SAFT.PrivateKeyPath)
		}
		key, err := infraagt.GenerateKeyPair()
		if err != nil {
			return err
		}
		if err := store.SavePrivate(key); err != nil {
			return err
		}
		if err := store.SavePublic(&key.PublicKey); err != nil {
			return err
		}
		fmt.Printf("par de chaves gravado em %s e %s\n", cfg.SAFT.PrivateKeyPath, cfg.SAFT.PublicKeyPath)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Valida o período sem emitir ficheiro",
	RunE: func(cmd *cobra.Command, args []string) error {
		uc, cleanup, err := buildUseCase()
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := uc.Validate(dto.SAFTExportRequest{StartDate: flagFrom, EndDate: flagTo})
		if err != nil {
			return err
		}
		fmt.Print(result.Report())
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Emite o ficheiro SAFT-AO do período no directório de saída",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		uc, cleanup, err := buildUseCase()
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := uc.Export(dto.SAFTExportRequest{StartDate: flagFrom, EndDate: flagTo, Force: flagForce})
		if err != nil {
			if errors.Is(err, domain.ErrExportBlocked) {
				fmt.Print(result.Validation.Report())
				return errors.New("exportação bloqueada por erros de validação (use --force para emitir na mesma)")
			}
			return err
		}

		if err := os.MkdirAll(cfg.SAFT.OutputDir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(cfg.SAFT.OutputDir, result.Filename)
		if err := os.WriteFile(path, result.XML, 0o644); err != nil {
			return err
		}
		fmt.Printf("ficheiro emitido: %s\n", path)
		fmt.Printf("digest (SHA-256, C14N): %s\n", result.Digest)
		if result.Validation.Summary.TotalWarnings > 0 {
			fmt.Print(result.Validation.Report())
		}
		return nil
	},
}

// buildUseCase liga o pipeline completo aos repositórios PostgreSQL.
func buildUseCase() (*export.UseCase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		return nil, nil, err
	}

	uc := export.NewUseCase(
		postgres.NewCompanyRepository(pool),
		postgres.NewStudentRepository(pool),
		postgres.NewServiceRepository(pool),
		postgres.NewPaymentRepository(pool),
		infraagt.NewFileKeyStore(cfg.SAFT.PrivateKeyPath, cfg.SAFT.PublicKeyPath),
		export.SoftwareInfo{
			ProductID:         cfg.SAFT.ProductID,
			ProductVersion:    cfg.SAFT.ProductVersion,
			CertificateNumber: cfg.SAFT.CertificateNumber,
			CompanyNIF:        cfg.SAFT.SoftwareNIF,
		},
		log,
	)
	return uc, pool.Close, nil
}

func init() {
	for _, c := range []*cobra.Command{validateCmd, exportCmd} {
		c.Flags().StringVar(&flagFrom, "from", "", "data de início do período (AAAA-MM-DD)")
		c.Flags().StringVar(&flagTo, "to", "", "data de fim do período (AAAA-MM-DD)")
		_ = c.MarkFlagRequired("from")
		_ = c.MarkFlagRequired("to")
	}
	exportCmd.Flags().BoolVar(&flagForce, "force", false, "emite o ficheiro mesmo com erros de validação")
	rootCmd.AddCommand(keygenCmd, validateCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}
