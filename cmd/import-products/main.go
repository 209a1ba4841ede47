// import-products importa el catálogo de productos de una empresa desde un
// archivo CSV. Columnas reconocidas: name (obligatoria), sku, ean13, price,
// cost, stock, low_stock_threshold, category, description, product_type.
//
// Uso:
//
//	import-products -company <company_id> -file catalogo.csv [-user <user_id>]
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/tu-usuario/pos-catalogo/internal/application/importer"
	"github.com/tu-usuario/pos-catalogo/internal/application/usecase"
	"github.com/tu-usuario/pos-catalogo/internal/domain/events"
	"github.com/tu-usuario/pos-catalogo/internal/infrastructure/postgres"
	"github.com/tu-usuario/pos-catalogo/pkg/config"
	"github.com/tu-usuario/pos-catalogo/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa (obligatorio)")
	file := flag.String("file", "", "ruta del CSV (obligatorio)")
	userID := flag.String("user", "", "ID del usuario que importa")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *companyID == "" || *file == "" {
		log.Fatal().Msg("faltan -company y/o -file")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	taxClassRepo := postgres.NewTaxClassRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	bus := events.NewBus()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, taxClassRepo, settingsRepo, bus, cfg.Inventory, rng)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, cfg.Inventory)
	imp := importer.NewProductImporter(productRepo, productUC, categoryUC, log.Zerolog())

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	defer f.Close()

	result, err := imp.Import(*companyID, *userID, f)
	if err != nil {
		log.Error().Err(err).Msg("importación falló")
		os.Exit(1)
	}
	for _, rowErr := range result.Errors {
		log.Warn().Int("line", rowErr.Line).Str("error", rowErr.Message).Msg("fila rechazada")
	}
	log.Info().Str("summary", result.Summary()).Msg("importación terminada")
}
