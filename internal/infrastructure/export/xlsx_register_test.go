package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/infrastructure/export"
)

func TestXLSXRegister_UnaFilaPorDocumento(t *testing.T) {
	e := export.NewXLSXRegister()
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	content, err := e.Export([]document.RegisterRow{
		{
			DocumentID:  "d1",
			Title:       "Contrato marco",
			Type:        "contract",
			Status:      "active",
			CompanyName: "Horns & Hooves LLC",
			BrandName:   "Golden Horn",
			Versions:    3,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			DocumentID: "d2",
			Title:      "Factura 17",
			Type:       "invoice",
			Status:     "draft",
			Versions:   1,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, content)

	// Releer el libro para validar estructura, no solo que haya bytes.
	xl, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows("Registro")
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado + una fila por documento")

	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "Contrato marco", rows[1][1])
	assert.Equal(t, "3", rows[1][6])
	assert.Equal(t, "Factura 17", rows[2][1])
}

func TestXLSXRegister_SinFilas(t *testing.T) {
	e := export.NewXLSXRegister()

	content, err := e.Export(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, content, "un registro vacío sigue siendo un libro válido")
}
