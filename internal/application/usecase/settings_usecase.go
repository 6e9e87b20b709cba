package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// SettingsUseCase registro único de configuración del sitio.
type SettingsUseCase struct {
	store repository.Store
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(store repository.Store) *SettingsUseCase {
	return &SettingsUseCase{store: store}
}

// Get devuelve el registro; nil si todavía no existe.
func (uc *SettingsUseCase) Get(ctx context.Context) (*entity.SiteSettings, error) {
	return selectOne[entity.SiteSettings](ctx, uc.store, repository.TableSiteSettings, repository.Query{})
}

// Public devuelve el registro o los valores por defecto si no existe. No escribe.
func (uc *SettingsUseCase) Public(ctx context.Context) (entity.SiteSettings, error) {
	s, err := uc.Get(ctx)
	if err != nil {
		return entity.SiteSettings{}, err
	}
	if s == nil {
		return entity.DefaultSiteSettings(), nil
	}
	return *s, nil
}

// GetOrCreate devuelve el registro y lo crea con los valores por defecto la primera vez.
func (uc *SettingsUseCase) GetOrCreate(ctx context.Context) (*entity.SiteSettings, error) {
	s, err := uc.Get(ctx)
	if err != nil || s != nil {
		return s, err
	}
	def := entity.DefaultSiteSettings()
	def.ID = uuid.New().String()
	row := settingsRow(def)
	row["id"] = def.ID
	if _, err := uc.store.Insert(ctx, repository.TableSiteSettings, row); err != nil {
		return nil, err
	}
	return &def, nil
}

// Update reemplaza todos los campos del registro (creándolo si hace falta).
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.SettingsRequest) (*entity.SiteSettings, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	cur, err := uc.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	next := entity.SiteSettings{
		ID:               cur.ID,
		CompanyName:      in.CompanyName,
		Tagline:          in.Tagline,
		LogoURL:          in.LogoURL,
		PrimaryColor:     in.PrimaryColor,
		SecondaryColor:   in.SecondaryColor,
		AccentColor:      in.AccentColor,
		CompanyNameColor: in.CompanyNameColor,
		Phone:            in.Phone,
		Email:            in.Email,
		Address:          in.Address,
		WhatsApp:         in.WhatsApp,
		WorkingHours:     in.WorkingHours,
		GoogleMapsEmbed:  in.GoogleMapsEmbed,
		AboutText:        in.AboutText,
		Mission:          in.Mission,
		Vision:           in.Vision,
		GSTNumber:        in.GSTNumber,
	}
	if err := uc.store.Update(ctx, repository.TableSiteSettings, cur.ID, settingsRow(next)); err != nil {
		return nil, err
	}
	return &next, nil
}

func settingsRow(s entity.SiteSettings) repository.Row {
	return repository.Row{
		"company_name":       s.CompanyName,
		"tagline":            s.Tagline,
		"logo_url":           s.LogoURL,
		"primary_color":      s.PrimaryColor,
		"secondary_color":    s.SecondaryColor,
		"accent_color":       s.AccentColor,
		"company_name_color": s.CompanyNameColor,
		"phone":              s.Phone,
		"email":              s.Email,
		"address":            s.Address,
		"whatsapp":           s.WhatsApp,
		"working_hours":      s.WorkingHours,
		"google_maps_embed":  s.GoogleMapsEmbed,
		"about_text":         s.AboutText,
		"mission":            s.Mission,
		"vision":             s.Vision,
		"gst_number":         s.GSTNumber,
	}
}
