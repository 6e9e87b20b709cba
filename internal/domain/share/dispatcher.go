package share

import (
	"context"
	"errors"
	"fmt"
)

// Channel canal por el que terminó saliendo el mensaje.
type Channel string

const (
	ChannelNone     Channel = ""
	ChannelNative   Channel = "native"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// MenuChannels opciones del menú de respaldo, en orden.
var MenuChannels = []Channel{ChannelWhatsApp, ChannelEmail}

// ErrCancelled lo devuelve Platform.Share cuando el usuario cierra el diálogo nativo.
var ErrCancelled = errors.New("share: cancelado por el usuario")

// Attachment archivo adjunto (imagen del producto).
type Attachment struct {
	Name        string
	ContentType string
	Body        []byte
}

// Data lo que se entrega al share nativo.
type Data struct {
	Title string
	Text  string
	URL   string
	Files []Attachment
}

// Platform capacidades del entorno donde se comparte (navegador, terminal, test).
type Platform interface {
	CanShare() bool
	CanShareFiles() bool
	Share(ctx context.Context, data Data) error
	// ChooseFromMenu muestra el menú y devuelve la opción elegida; ChannelNone si se cerró.
	ChooseFromMenu(ctx context.Context, options []Channel) (Channel, error)
	Open(ctx context.Context, link string) error
}

// ImageFetcher descarga la imagen a adjuntar.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (Attachment, error)
}

// Outcome resultado de Dispatcher.Share.
type Outcome struct {
	Channel Channel
	Link    string // deep link abierto (WhatsApp / mailto); vacío para nativo
}

// Dispatcher recorre la cadena de canales: nativo -> menú (WhatsApp | correo).
// No reintenta; la descarga de la imagen es best-effort.
type Dispatcher struct {
	platform Platform
	images   ImageFetcher
}

// NewDispatcher construye el dispatcher. images puede ser nil (sin adjuntos).
func NewDispatcher(platform Platform, images ImageFetcher) *Dispatcher {
	return &Dispatcher{platform: platform, images: images}
}

// Share compone el mensaje y lo envía por el mejor canal disponible.
//   - Nativo OK -> ChannelNative.
//   - Nativo cancelado por el usuario -> ChannelNone, sin menú.
//   - Nativo falla por otra causa, o no existe -> menú.
func (d *Dispatcher) Share(ctx context.Context, p Payload) (Outcome, error) {
	text := Compose(p)

	if d.platform.CanShare() {
		data := Data{Title: p.Name, Text: text, URL: p.URL}
		if p.ImageURL != "" && d.images != nil && d.platform.CanShareFiles() {
			if att, err := d.images.Fetch(ctx, p.ImageURL); err == nil {
				data.Files = []Attachment{att}
			}
		}
		err := d.platform.Share(ctx, data)
		if err == nil {
			return Outcome{Channel: ChannelNative}, nil
		}
		if errors.Is(err, ErrCancelled) {
			return Outcome{Channel: ChannelNone}, nil
		}
	}

	choice, err := d.platform.ChooseFromMenu(ctx, MenuChannels)
	if err != nil {
		return Outcome{}, fmt.Errorf("share: menú: %w", err)
	}
	var link string
	switch choice {
	case ChannelWhatsApp:
		link = WhatsAppURL(text)
	case ChannelEmail:
		link = MailtoURL(p.Name, text)
	default:
		return Outcome{Channel: ChannelNone}, nil
	}
	if err := d.platform.Open(ctx, link); err != nil {
		return Outcome{}, fmt.Errorf("share: abrir %s: %w", choice, err)
	}
	return Outcome{Channel: choice, Link: link}, nil
}
