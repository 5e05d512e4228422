package document_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/domain"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de generación
// ──────────────────────────────────────────────────────────────────────────────

// stubXML serializa la proyección de forma determinista y calcula el digest
// real sobre esos bytes, igual que el proyector de producción.
type stubXML struct{}

func (stubXML) Build(p *document.Projection) ([]byte, error) {
	return json.Marshal(map[string]any{
		"document":       p.Document.ID,
		"version":        p.Version.VersionNumber,
		"data":           string(p.Version.Data),
		"effective_date": p.EffectiveDate.Format("2006-01-02"),
	})
}

func (stubXML) CanonicalDigest(xmlDoc []byte) (string, error) {
	sum := sha256.Sum256(xmlDoc)
	return hex.EncodeToString(sum[:]), nil
}

type stubPDF struct{}

func (stubPDF) Generate(_ context.Context, p *document.Projection) ([]byte, error) {
	return []byte(fmt.Sprintf("%%PDF-stub v%d", p.Version.VersionNumber)), nil
}

type stubExporter struct{}

func (stubExporter) Export(rows []document.RegisterRow) ([]byte, error) {
	return []byte(fmt.Sprintf("xlsx:%d", len(rows))), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Generate
// ──────────────────────────────────────────────────────────────────────────────

// Generar es una proyección pura: no toca el documento ni sus versiones, y con
// los mismos argumentos el artefacto es estructuralmente igual (mismo digest).
func TestGenerate_IdempotenteYSinMutacion(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t)
	date := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	before, err := f.uc.GetByID(doc.ID)
	require.NoError(t, err)

	first, err := f.uc.Generate(ctx, doc.ID, doc.CurrentVersionID, date, entity.ArtifactPDF)
	require.NoError(t, err)
	second, err := f.uc.Generate(ctx, doc.ID, doc.CurrentVersionID, date, entity.ArtifactPDF)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest, "mismos argumentos, mismo digest")
	assert.Equal(t, first.Filename, second.Filename)

	after, err := f.uc.GetByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "generar no debe mutar el documento")

	versions, err := f.uc.ListVersions(doc.ID)
	require.NoError(t, err)
	assert.Len(t, versions.Items, 1, "generar no debe crear versiones")
}

// La hora del día no cambia la identidad del artefacto: solo cuenta la fecha.
func TestGenerate_FechaEfectivaTruncadaADia(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t)

	morning := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 22, 45, 0, 0, time.UTC)

	a, err := f.uc.Generate(ctx, doc.ID, doc.CurrentVersionID, morning, entity.ArtifactPDF)
	require.NoError(t, err)
	b, err := f.uc.Generate(ctx, doc.ID, doc.CurrentVersionID, evening, entity.ArtifactPDF)
	require.NoError(t, err)

	assert.Equal(t, a.Digest, b.Digest)

	otherDay, err := f.uc.Generate(ctx, doc.ID, doc.CurrentVersionID, morning.AddDate(0, 0, 1), entity.ArtifactPDF)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest, otherDay.Digest, "otra fecha efectiva, otro artefacto")
}

// Se puede generar desde una versión antigua aunque existan versiones más
// nuevas: el artefacto usa el snapshot de ESA versión.
func TestGenerate_VersionAntigua(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t)

	v2, err := f.uc.AddVersion(ctx, doc.ID, testAuthorID, json.RawMessage(`{"amount":100}`))
	require.NoError(t, err)
	_, err = f.uc.AddVersion(ctx, doc.ID, testAuthorID, json.RawMessage(`{"amount":999}`))
	require.NoError(t, err)

	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	artifact, err := f.uc.Generate(ctx, doc.ID, v2.ID, date, entity.ArtifactXML)
	require.NoError(t, err)

	assert.Equal(t, 2, artifact.VersionNumber)
	assert.Contains(t, string(artifact.Content), `{\"amount\":100}`,
		"el artefacto debe proyectar el snapshot de la versión 2, no el vigente")
	assert.Equal(t, fmt.Sprintf("%s-v2-2026-01-10.xml", doc.ID), artifact.Filename)
}

// Formato por defecto pdf; formato desconocido → ErrValidation.
func TestGenerate_Formatos(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t)
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	artifact, err := f.uc.Generate(ctx, doc.ID, doc.CurrentVersionID, date, "")
	require.NoError(t, err)
	assert.Equal(t, entity.ArtifactPDF, artifact.Format)

	_, err = f.uc.Generate(ctx, doc.ID, doc.CurrentVersionID, date, "docx")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Versión de otro documento o inexistente → ErrNotFound.
func TestGenerate_VersionAjena(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	docA := f.createDocument(t)
	docB := f.createDocument(t)

	_, err := f.uc.Generate(ctx, docA.ID, docB.CurrentVersionID, time.Time{}, entity.ArtifactPDF)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Generate(ctx, docA.ID, "no-existe", time.Time{}, entity.ArtifactPDF)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ExportRegister
// ──────────────────────────────────────────────────────────────────────────────

func TestExportRegister_UnaFilaPorDocumento(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t)
	f.createDocument(t)
	_, err := f.uc.AddVersion(ctx, doc.ID, testAuthorID, json.RawMessage(`{"a":1}`))
	require.NoError(t, err)

	filename, content, err := f.uc.ExportRegister("")
	require.NoError(t, err)

	assert.Equal(t, "xlsx:2", string(content), "una fila por documento")
	assert.Contains(t, filename, "document-register-")
	assert.Contains(t, filename, ".xlsx")
}

func TestExportRegister_FiltraPorEmpresa(t *testing.T) {
	f := buildFixture(t)
	f.createDocument(t)

	_, content, err := f.uc.ExportRegister("otra-empresa")
	require.NoError(t, err)
	assert.Equal(t, "xlsx:0", string(content))
}
