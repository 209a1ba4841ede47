// export-catalog vuelca el catálogo de una empresa a CSV, con los mismos
// encabezados que acepta import-products.
//
// Uso:
//
//	export-catalog -company <company_id> -what products|categories -out catalogo.csv
package main

import (
	"context"
	"flag"
	"os"

	"github.com/tu-usuario/pos-catalogo/internal/application/importer"
	"github.com/tu-usuario/pos-catalogo/internal/infrastructure/postgres"
	"github.com/tu-usuario/pos-catalogo/pkg/config"
	"github.com/tu-usuario/pos-catalogo/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa (obligatorio)")
	what := flag.String("what", "products", "qué exportar: products o categories")
	out := flag.String("out", "", "archivo de salida (vacío = stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *companyID == "" {
		log.Fatal().Msg("falta -company")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Str("file", *out).Msg("crear archivo de salida")
		}
		defer f.Close()
		w = f
	}

	exporter := importer.NewExporter(postgres.NewProductRepository(pool), postgres.NewCategoryRepository(pool))
	switch *what {
	case "products":
		err = exporter.ExportProducts(w, *companyID)
	case "categories":
		err = exporter.ExportCategories(w, *companyID)
	default:
		log.Fatal().Str("what", *what).Msg("valor de -what no reconocido")
	}
	if err != nil {
		log.Error().Err(err).Msg("exportación falló")
		os.Exit(1)
	}
}
