// populate-ean13 asigna códigos EAN-13 internos (prefijo 200) a todos los
// productos de una empresa que aún no tienen uno.
//
// Uso:
//
//	populate-ean13 -company <company_id> [-seed <n>]
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/tu-usuario/pos-catalogo/internal/application/usecase"
	"github.com/tu-usuario/pos-catalogo/internal/infrastructure/postgres"
	"github.com/tu-usuario/pos-catalogo/pkg/config"
	"github.com/tu-usuario/pos-catalogo/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa (obligatorio)")
	seed := flag.Int64("seed", 0, "semilla del generador (0 = aleatoria)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *companyID == "" {
		log.Fatal().Msg("falta -company")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	rng := rand.New(rand.NewSource(*seed))
	uc := usecase.NewPopulateEAN13UseCase(productRepo, rng, log.Zerolog())

	result, err := uc.Run(*companyID)
	if err != nil {
		log.Error().Err(err).Msg("asignación de EAN-13 falló")
		os.Exit(1)
	}
	log.Info().
		Int("assigned", result.Assigned).
		Int("skipped", result.Skipped).
		Msg("asignación de EAN-13 terminada")
}
