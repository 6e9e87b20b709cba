package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
)

func TestParseSpecificationsText_Lineas(t *testing.T) {
	specs, err := dto.ParseSpecificationsText("Pressure: 8 bar\n\n  Flow : 120 L/min \nNote: ratio 1:2\n")
	require.NoError(t, err)
	assert.Equal(t, entity.Specifications{
		"Pressure": "8 bar",
		"Flow":     "120 L/min",
		"Note":     "ratio 1:2",
	}, specs)
}

func TestParseSpecificationsText_JSON(t *testing.T) {
	specs, err := dto.ParseSpecificationsText(`{"Power": "5 HP", "Stages": 2}`)
	require.NoError(t, err)
	assert.Equal(t, "5 HP", specs["Power"])
	assert.Equal(t, float64(2), specs["Stages"])
}

func TestParseSpecificationsText_Vacio(t *testing.T) {
	specs, err := dto.ParseSpecificationsText("   ")
	require.NoError(t, err)
	assert.NotNil(t, specs)
	assert.Empty(t, specs)
}

func TestParseSpecificationsText_Invalido(t *testing.T) {
	for _, text := range []string{`{"Power": `, "sin separador", ": sin clave"} {
		_, err := dto.ParseSpecificationsText(text)
		require.Error(t, err, text)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, "specifications", dto.FieldsOf(err)[0].Field)
	}
}

func TestFormatSpecificationsText(t *testing.T) {
	text := dto.FormatSpecificationsText(entity.Specifications{"Pressure": "8 bar", "Flow": 120.0})
	assert.Equal(t, "Flow: 120\nPressure: 8 bar", text)

	back, err := dto.ParseSpecificationsText(text)
	require.NoError(t, err)
	assert.Equal(t, "8 bar", back["Pressure"])
}

func TestResolveSpecifications_PrefiereJSON(t *testing.T) {
	r := dto.ProductRequest{
		Specifications:     entity.Specifications{"Power": "5 HP"},
		SpecificationsText: "ignorado",
	}
	specs, err := r.ResolveSpecifications()
	require.NoError(t, err)
	assert.Equal(t, entity.Specifications{"Power": "5 HP"}, specs)
}

func TestValidate_DetallePorCampo(t *testing.T) {
	err := dto.Validate(dto.ContactRequest{Name: "Ravi", Phone: "1", Email: "no-es-email", Message: "hola"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fields := dto.FieldsOf(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "Invalid email format", fields[0].Message)
}
