package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var importCharset string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Importación de datos",
}

var importProductsCmd = &cobra.Command{
	Use:   "products <archivo.csv>",
	Short: "Importa productos desde CSV (crea categorías que falten, actualiza por slug)",
	Long: `Columnas: category, name, slug, description, long_description, image_url,
price_range, is_featured, specifications.

Las hojas exportadas desde Excel suelen venir en ISO-8859-1 o Windows-1252;
use --charset para convertirlas a UTF-8.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()
		r, err := charsetReader(importCharset, f)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		importer := usecase.NewCatalogImportUseCase(usecase.NewCategoryUseCase(store), usecase.NewProductUseCase(store))
		res, err := importer.Import(ctx, r)
		for _, s := range res.Skipped {
			log.Warn().Msg(s)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "categorías creadas: %d\nproductos creados: %d\nproductos actualizados: %d\nfilas omitidas: %d\n",
			res.CategoriesCreated, res.ProductsCreated, res.ProductsUpdated, len(res.Skipped))
		return nil
	},
}

func init() {
	importProductsCmd.Flags().StringVar(&importCharset, "charset", "utf-8", "Codificación del archivo: utf-8, iso-8859-1, windows-1252")
	importCmd.AddCommand(importProductsCmd)
}

// charsetReader envuelve input con el decodificador a UTF-8 que corresponda.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %q", charset)
	}
}
