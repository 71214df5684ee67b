// seed genera un script SQL para poblar el catálogo de productos a partir del
// CSV exportado del sistema anterior (codificado en ISO-8859-1, separado por ;).
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
//
// Columnas esperadas: nombre;categoria;unidad;precio;nivel_reorden
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export legado viene en ISO-8859-1; decodificar a UTF-8 al leer.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 5

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	type product struct{ name, category, unit, price, reorder string }
	var products []product
	for i, rec := range records {
		// Saltar cabecera si la hay
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		price := strings.TrimSpace(rec[3])
		if price == "" {
			price = "0"
		}
		reorder := strings.TrimSpace(rec[4])
		if reorder == "" {
			reorder = "0"
		}
		products = append(products, product{
			name:     name,
			category: strings.TrimSpace(rec[1]),
			unit:     strings.TrimSpace(rec[2]),
			price:    price,
			reorder:  reorder,
		})
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de productos\n")
	out.WriteString("-- Generado desde el export CSV del sistema anterior\n\n")
	for _, p := range products {
		fmt.Fprintf(out,
			"INSERT INTO products (id, name, category, unit_of_measure, price_per_unit, reorder_level, is_active, created_at, updated_at)\n"+
				"VALUES (gen_random_uuid(), '%s', '%s', '%s', %s, %s, true, now(), now())\n"+
				"ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category, unit_of_measure = EXCLUDED.unit_of_measure, price_per_unit = EXCLUDED.price_per_unit, reorder_level = EXCLUDED.reorder_level;\n",
			escapeSQL(p.name), escapeSQL(p.category), escapeSQL(p.unit), p.price, p.reorder)
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, len(products))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
