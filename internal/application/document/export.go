package document

import (
	"fmt"
	"time"

	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// ExportRegister arma el registro de documentos (opcionalmente de una sola
// empresa) y lo serializa a un libro XLSX para contabilidad.
//
// Devuelve (nombre de archivo, contenido, error).
func (uc *UseCase) ExportRegister(companyID string) (string, []byte, error) {
	const registerLimit = 1000 // el registro contable se exporta completo, con tope sanitario

	var (
		docs []*entity.Document
		err  error
	)
	if companyID != "" {
		docs, err = uc.docRepo.ListByCompany(companyID, registerLimit, 0)
	} else {
		docs, err = uc.docRepo.List(registerLimit, 0)
	}
	if err != nil {
		return "", nil, err
	}

	// Cache de nombres para no repetir lookups por cada documento.
	companyNames := make(map[string]string)
	brandNames := make(map[string]string)

	rows := make([]RegisterRow, 0, len(docs))
	for _, d := range docs {
		if _, ok := companyNames[d.CompanyID]; !ok {
			c, err := uc.companyRepo.GetByID(d.CompanyID)
			if err != nil {
				return "", nil, err
			}
			if c != nil {
				companyNames[d.CompanyID] = c.Name
			}
		}
		if _, ok := brandNames[d.BrandID]; !ok {
			b, err := uc.brandRepo.GetByID(d.BrandID)
			if err != nil {
				return "", nil, err
			}
			if b != nil {
				brandNames[d.BrandID] = b.Name
			}
		}
		count, err := uc.docRepo.CountVersions(d.ID)
		if err != nil {
			return "", nil, err
		}
		rows = append(rows, RegisterRow{
			DocumentID:  d.ID,
			Title:       d.Title,
			Type:        d.Type,
			Status:      d.Status,
			CompanyName: companyNames[d.CompanyID],
			BrandName:   brandNames[d.BrandID],
			Versions:    count,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}

	content, err := uc.exporter.Export(rows)
	if err != nil {
		return "", nil, fmt.Errorf("exportar registro: %w", err)
	}
	filename := fmt.Sprintf("document-register-%s.xlsx", time.Now().Format("2006-01-02"))
	return filename, content, nil
}
