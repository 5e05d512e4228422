// Comando seed: carga usuarios demo y datos de referencia mínimos para
// desarrollo local. Es idempotente: lo que ya existe se deja como está.
package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appdocument "github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/infrastructure/database"
	infraexport "github.com/tu-usuario/docflow-api/internal/infrastructure/export"
	infrapdf "github.com/tu-usuario/docflow-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/docflow-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/docflow-api/pkg/config"
	"github.com/tu-usuario/docflow-api/pkg/logger"
)

// Usuarios demo, uno por rol.
var demoUsers = []struct {
	Username string
	Password string
	Role     string
}{
	{"manager", "password", entity.RoleManager},
	{"accountant", "password", entity.RoleAccountant},
	{"admin", "admin", entity.RoleAdmin},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if err := database.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	bankRepo := postgres.NewBankAccountRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	for _, u := range demoUsers {
		existing, err := userRepo.GetByUsername(u.Username)
		if err != nil {
			log.Fatal().Err(err).Str("username", u.Username).Msg("consultar usuario")
		}
		if existing != nil {
			log.Info().Str("username", u.Username).Msg("usuario ya existe, se omite")
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		now := time.Now()
		if err := userRepo.Create(&entity.User{
			ID:           uuid.New().String(),
			Username:     u.Username,
			PasswordHash: string(hash),
			Role:         u.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			log.Fatal().Err(err).Str("username", u.Username).Msg("crear usuario")
		}
		log.Info().Str("username", u.Username).Str("role", u.Role).Msg("usuario creado")
	}

	// Empresa demo con marca, cuenta y producto.
	const demoTaxID = "7701234567"
	company, err := companyRepo.GetByTaxID(demoTaxID)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar empresa demo")
	}
	if company == nil {
		now := time.Now()
		company = &entity.Company{
			ID:         uuid.New().String(),
			Name:       "Horns & Hooves LLC",
			TaxID:      demoTaxID,
			Address:    "Calle 10 #1-23",
			Director:   "Ivan Petrov",
			Accountant: "Maria Sidorova",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := companyRepo.Create(company); err != nil {
			log.Fatal().Err(err).Msg("crear empresa demo")
		}

		brand := &entity.Brand{
			ID:        uuid.New().String(),
			Name:      "Golden Horn",
			CompanyID: company.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := brandRepo.Create(brand); err != nil {
			log.Fatal().Err(err).Msg("crear marca demo")
		}

		if err := bankRepo.Create(&entity.BankAccount{
			ID:            uuid.New().String(),
			CompanyID:     company.ID,
			AccountNumber: "40702810900000012345",
			BankName:      "Demo Bank",
			RoutingCode:   "044525225",
			CreatedAt:     now,
			UpdatedAt:     now,
		}); err != nil {
			log.Fatal().Err(err).Msg("crear cuenta demo")
		}

		if err := productRepo.Create(&entity.Product{
			ID:          uuid.New().String(),
			Name:        "Premium Widget",
			SKU:         "GH-0001",
			Description: "Producto demo",
			BrandID:     brand.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			log.Fatal().Err(err).Msg("crear producto demo")
		}

		// Documento demo con dos versiones (la segunda con contenido).
		txRunner := postgres.NewTxRunner(pool)
		documentUC := appdocument.NewUseCase(
			txRunner, postgres.NewDocumentRepository(pool), companyRepo, brandRepo, bankRepo,
			infrapdf.NewMarotoGenerator(),
			infraexport.NewXMLBuilder(),
			infraexport.NewXLSXRegister(),
		)
		admin, err := userRepo.GetByUsername("admin")
		if err != nil || admin == nil {
			log.Fatal().Err(err).Msg("usuario admin no disponible para el documento demo")
		}
		doc, err := documentUC.Create(ctx, admin.ID, dto.CreateDocumentRequest{
			Title:     "Contrato marco 2026",
			Type:      entity.DocTypeContract,
			CompanyID: company.ID,
			BrandID:   brand.ID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear documento demo")
		}
		snapshot := json.RawMessage(`{"subject":"Suministro anual","amount":1250000,"currency":"COP","signed":false}`)
		if _, err := documentUC.AddVersion(ctx, doc.ID, admin.ID, snapshot); err != nil {
			log.Fatal().Err(err).Msg("agregar versión demo")
		}
		log.Info().Str("document_id", doc.ID).Msg("documento demo creado con 2 versiones")
	} else {
		log.Info().Str("company_id", company.ID).Msg("empresa demo ya existe, se omite")
	}

	log.Info().Msg("seed completado")
}
