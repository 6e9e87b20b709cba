package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain/share"
	infrashare "github.com/jhoicas/everest-site/internal/infrastructure/share"
	"github.com/spf13/cobra"
)

var (
	shareVia     string
	shareSaveDir string
)

var shareCmd = &cobra.Command{
	Use:   "share <slug>",
	Short: "Compone el mensaje de un producto y muestra el enlace de WhatsApp o correo",
	Long: `Sin --via se pregunta el canal por la terminal.
Con --save-dir el mensaje y la imagen del producto se guardan en esa carpeta
en lugar de generar un enlace.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		shareUC := usecase.NewShareUseCase(usecase.NewProductUseCase(store), cfg.App.BaseURL)
		payload, err := shareUC.Payload(ctx, args[0])
		if err != nil {
			return err
		}

		platform := &terminalPlatform{
			in:      cmd.InOrStdin(),
			out:     cmd.OutOrStdout(),
			via:     share.Channel(strings.ToLower(shareVia)),
			saveDir: shareSaveDir,
		}
		outcome, err := share.NewDispatcher(platform, infrashare.NewHTTPImageFetcher()).Share(ctx, payload)
		if err != nil {
			return err
		}
		if outcome.Channel == share.ChannelNone {
			log.Info().Str("slug", args[0]).Msg("compartir cancelado")
		}
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVar(&shareVia, "via", "", "Canal: whatsapp o email")
	shareCmd.Flags().StringVar(&shareSaveDir, "save-dir", "", "Guarda mensaje e imagen en esta carpeta")
}

// terminalPlatform share.Platform para la terminal. El canal "nativo" es guardar en
// carpeta; el menú se resuelve con --via o preguntando por stdin; Open imprime el enlace.
type terminalPlatform struct {
	in      io.Reader
	out     io.Writer
	via     share.Channel
	saveDir string
}

var _ share.Platform = (*terminalPlatform)(nil)

func (p *terminalPlatform) CanShare() bool      { return p.saveDir != "" }
func (p *terminalPlatform) CanShareFiles() bool { return true }

func (p *terminalPlatform) Share(ctx context.Context, data share.Data) error {
	if err := os.MkdirAll(p.saveDir, 0o755); err != nil {
		return err
	}
	msg := filepath.Join(p.saveDir, "message.txt")
	if err := os.WriteFile(msg, []byte(data.Text+"\n"), 0o644); err != nil {
		return err
	}
	fmt.Fprintln(p.out, msg)
	for _, f := range data.Files {
		path := filepath.Join(p.saveDir, filepath.Base(f.Name))
		if err := os.WriteFile(path, f.Body, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(p.out, path)
	}
	return nil
}

func (p *terminalPlatform) ChooseFromMenu(ctx context.Context, options []share.Channel) (share.Channel, error) {
	if p.via != share.ChannelNone {
		for _, o := range options {
			if o == p.via {
				return o, nil
			}
		}
		return share.ChannelNone, fmt.Errorf("canal desconocido: %q", p.via)
	}

	fmt.Fprintln(p.out, "Share via")
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	fmt.Fprint(p.out, "> ")
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return share.ChannelNone, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(options) {
		// entrada vacía o no válida equivale a cerrar el menú
		return share.ChannelNone, nil
	}
	return options[n-1], nil
}

func (p *terminalPlatform) Open(ctx context.Context, link string) error {
	_, err := fmt.Fprintln(p.out, link)
	return err
}
