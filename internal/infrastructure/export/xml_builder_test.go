package export_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/infrastructure/export"
)

// buildProjection arma una proyección fija: mismos datos, mismos bytes.
func buildProjection() *document.Projection {
	createdAt := time.Date(2026, 2, 1, 9, 15, 0, 0, time.UTC)
	return &document.Projection{
		Document: &entity.Document{
			ID:        "d0000000-0000-0000-0000-000000000001",
			Title:     "Contrato marco",
			Type:      entity.DocTypeContract,
			Status:    entity.DocStatusActive,
			CompanyID: "c0000000-0000-0000-0000-000000000001",
			BrandID:   "b0000000-0000-0000-0000-000000000001",
		},
		Version: &entity.DocumentVersion{
			ID:            "v0000000-0000-0000-0000-000000000002",
			DocumentID:    "d0000000-0000-0000-0000-000000000001",
			VersionNumber: 2,
			CreatedAt:     createdAt,
			CreatedBy:     "u0000000-0000-0000-0000-000000000001",
			Data:          json.RawMessage(`{"amount":1250000,"currency":"COP"}`),
		},
		Company: &entity.Company{
			ID:         "c0000000-0000-0000-0000-000000000001",
			Name:       "Horns & Hooves LLC",
			TaxID:      "7701234567",
			Address:    "Calle 10 #1-23",
			Director:   "Ivan Petrov",
			Accountant: "Maria Sidorova",
		},
		Brand: &entity.Brand{
			ID:   "b0000000-0000-0000-0000-000000000001",
			Name: "Golden Horn",
		},
		EffectiveDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Build
// ──────────────────────────────────────────────────────────────────────────────

// La proyección es determinista byte a byte: es la base de la idempotencia de
// la generación de artefactos.
func TestBuild_Determinista(t *testing.T) {
	b := export.NewXMLBuilder()

	first, err := b.Build(buildProjection())
	require.NoError(t, err)
	second, err := b.Build(buildProjection())
	require.NoError(t, err)

	assert.Equal(t, first, second, "misma proyección, mismos bytes")
}

func TestBuild_ContenidoCompleto(t *testing.T) {
	b := export.NewXMLBuilder()

	out, err := b.Build(buildProjection())
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, `<Document id="d0000000-0000-0000-0000-000000000001"`)
	assert.Contains(t, xml, `type="contract"`)
	assert.Contains(t, xml, "<Title>Contrato marco</Title>")
	assert.Contains(t, xml, "<EffectiveDate>2026-03-15</EffectiveDate>")
	assert.Contains(t, xml, `number="2"`)
	assert.Contains(t, xml, "<TaxID>7701234567</TaxID>")
	assert.Contains(t, xml, "<Name>Golden Horn</Name>")
	assert.NotContains(t, xml, "<BankAccount", "sin cuenta bancaria no debe haber elemento BankAccount")
}

func TestBuild_ProyeccionIncompleta(t *testing.T) {
	b := export.NewXMLBuilder()

	_, err := b.Build(nil)
	assert.Error(t, err)

	p := buildProjection()
	p.Version = nil
	_, err = b.Build(p)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CanonicalDigest
// ──────────────────────────────────────────────────────────────────────────────

// El digest es SHA-256 en hex (64 caracteres) y estable para la misma entrada.
func TestCanonicalDigest_Estable(t *testing.T) {
	b := export.NewXMLBuilder()

	xmlDoc, err := b.Build(buildProjection())
	require.NoError(t, err)

	first, err := b.CanonicalDigest(xmlDoc)
	require.NoError(t, err)
	second, err := b.CanonicalDigest(xmlDoc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "SHA-256 en hex son 64 caracteres")
}

// C14N ordena los atributos: el orden en que se escribieron no cambia la
// identidad del artefacto.
func TestCanonicalDigest_OrdenDeAtributosIrrelevante(t *testing.T) {
	b := export.NewXMLBuilder()

	a := []byte(`<Doc id="1" type="contract"><Title>X</Title></Doc>`)
	bDoc := []byte(`<Doc type="contract" id="1"><Title>X</Title></Doc>`)

	digestA, err := b.CanonicalDigest(a)
	require.NoError(t, err)
	digestB, err := b.CanonicalDigest(bDoc)
	require.NoError(t, err)

	assert.Equal(t, digestA, digestB)
}

// Contenido distinto → digest distinto.
func TestCanonicalDigest_SensibleAlContenido(t *testing.T) {
	b := export.NewXMLBuilder()

	p := buildProjection()
	xmlA, err := b.Build(p)
	require.NoError(t, err)

	p.Version.Data = json.RawMessage(`{"amount":999}`)
	xmlB, err := b.Build(p)
	require.NoError(t, err)

	digestA, err := b.CanonicalDigest(xmlA)
	require.NoError(t, err)
	digestB, err := b.CanonicalDigest(xmlB)
	require.NoError(t, err)

	assert.NotEqual(t, digestA, digestB)
}
