package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/auth"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/export"
	infraagt "github.com/emanuel-malungo/systemSchool-sub001/internal/infrastructure/agt"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/emanuel-malungo/systemSchool-sub001/internal/interfaces/http"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/config"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("a iniciar aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("ligação a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	studentRepo := postgres.NewStudentRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	keyStore := infraagt.NewFileKeyStore(cfg.SAFT.PrivateKeyPath, cfg.SAFT.PublicKeyPath)

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	exportUC := export.NewUseCase(
		companyRepo, studentRepo, serviceRepo, paymentRepo, keyStore,
		export.SoftwareInfo{
			ProductID:         cfg.SAFT.ProductID,
			ProductVersion:    cfg.SAFT.ProductVersion,
			CertificateNumber: cfg.SAFT.CertificateNumber,
			CompanyNIF:        cfg.SAFT.SoftwareNIF,
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP terminado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de paragem recebido, a encerrar o servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}
}
