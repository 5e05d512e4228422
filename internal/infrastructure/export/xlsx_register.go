package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/docflow-api/internal/application/document"
)

// Asegura que XLSXRegister implementa document.RegisterExporter.
var _ document.RegisterExporter = (*XLSXRegister)(nil)

// XLSXRegister serializa el registro de documentos a un libro Excel.
type XLSXRegister struct{}

// NewXLSXRegister crea el exportador.
func NewXLSXRegister() *XLSXRegister {
	return &XLSXRegister{}
}

// Export escribe una hoja "Registro" con una fila por documento.
func (e *XLSXRegister) Export(rows []document.RegisterRow) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	const sheet = "Registro"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"id", "title", "type", "status", "company", "brand", "versions", "created_at", "updated_at"}
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}

	for i, r := range rows {
		record := []string{
			r.DocumentID,
			r.Title,
			r.Type,
			r.Status,
			r.CompanyName,
			r.BrandName,
			strconv.Itoa(r.Versions),
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.UpdatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(sheet, cellRef, &record); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", i+1, err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
