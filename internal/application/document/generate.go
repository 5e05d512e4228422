package document

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/docflow-api/internal/domain"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// Generate produce un artefacto fechado a partir de una versión concreta.
//
// Es una proyección pura: no muta el documento ni sus versiones, y puede
// repetirse cuantas veces se quiera con fechas distintas sin corromper el
// historial. Con los mismos argumentos el artefacto resultante es
// estructuralmente igual (el digest se calcula sobre la proyección XML
// canonicalizada, que es determinista).
//
// Devuelve domain.ErrNotFound si el documento o la versión no existen, o si
// la versión no pertenece al documento. domain.ErrValidation si el formato es
// desconocido.
func (uc *UseCase) Generate(ctx context.Context, documentID, versionID string, effectiveDate time.Time, format string) (*entity.GeneratedArtifact, error) {
	if format == "" {
		format = entity.ArtifactPDF
	}
	if format != entity.ArtifactPDF && format != entity.ArtifactXML {
		return nil, domain.ErrValidation
	}

	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	version, err := uc.docRepo.GetVersion(versionID)
	if err != nil {
		return nil, err
	}
	if version == nil || version.DocumentID != doc.ID {
		return nil, domain.ErrNotFound
	}

	company, err := uc.companyRepo.GetByID(doc.CompanyID)
	if err != nil {
		return nil, err
	}
	brand, err := uc.brandRepo.GetByID(doc.BrandID)
	if err != nil {
		return nil, err
	}
	var account *entity.BankAccount
	if doc.BankAccountID != "" {
		account, err = uc.bankRepo.GetByID(doc.BankAccountID)
		if err != nil {
			return nil, err
		}
	}

	if effectiveDate.IsZero() {
		effectiveDate = time.Now()
	}
	// Solo importa el día, no la hora.
	effectiveDate = effectiveDate.Truncate(24 * time.Hour)

	projection := &Projection{
		Document:      doc,
		Version:       version,
		Company:       company,
		Brand:         brand,
		BankAccount:   account,
		EffectiveDate: effectiveDate,
	}

	// La proyección XML se construye siempre: es la identidad canónica del
	// artefacto, independiente del formato de salida.
	xmlDoc, err := uc.xml.Build(projection)
	if err != nil {
		return nil, fmt.Errorf("generar proyección XML: %w", err)
	}
	digest, err := uc.xml.CanonicalDigest(xmlDoc)
	if err != nil {
		return nil, fmt.Errorf("digest canónico: %w", err)
	}

	content := xmlDoc
	if format == entity.ArtifactPDF {
		content, err = uc.pdf.Generate(ctx, projection)
		if err != nil {
			return nil, fmt.Errorf("generar PDF: %w", err)
		}
	}

	return &entity.GeneratedArtifact{
		DocumentID:    doc.ID,
		VersionID:     version.ID,
		VersionNumber: version.VersionNumber,
		EffectiveDate: effectiveDate,
		Format:        format,
		Filename:      fmt.Sprintf("%s-v%d-%s.%s", doc.ID, version.VersionNumber, effectiveDate.Format("2006-01-02"), format),
		Digest:        digest,
		Content:       content,
	}, nil
}
