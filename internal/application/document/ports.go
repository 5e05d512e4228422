package document

import (
	"context"
	"time"

	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con el repo de
// documentos atado a la tx. Crear documento y agregar versión son las dos
// operaciones que necesitan atomicidad (insert de versión + puntero vigente).
type TxRunner interface {
	Run(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}

// Projection es el material de una generación: documento + versión elegida +
// datos de referencia resueltos + fecha efectiva. Solo lectura.
type Projection struct {
	Document      *entity.Document
	Version       *entity.DocumentVersion
	Company       *entity.Company
	Brand         *entity.Brand
	BankAccount   *entity.BankAccount // nil si el documento no tiene cuenta
	EffectiveDate time.Time
}

// XMLProjector construye la proyección XML de una versión y su digest canónico.
// El digest es determinista: misma proyección, mismo digest.
type XMLProjector interface {
	Build(p *Projection) ([]byte, error)
	CanonicalDigest(xmlDoc []byte) (string, error)
}

// PDFGenerator construye la representación gráfica (PDF) de una versión.
type PDFGenerator interface {
	Generate(ctx context.Context, p *Projection) ([]byte, error)
}

// RegisterRow fila del registro de documentos para exportación contable.
type RegisterRow struct {
	DocumentID  string
	Title       string
	Type        string
	Status      string
	CompanyName string
	BrandName   string
	Versions    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RegisterExporter serializa el registro de documentos (XLSX).
type RegisterExporter interface {
	Export(rows []RegisterRow) ([]byte, error)
}
