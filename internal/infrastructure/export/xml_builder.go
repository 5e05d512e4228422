// Package export produce las salidas no mutantes del sistema: la proyección
// XML de una versión de documento (identidad canónica de todo artefacto
// generado) y el registro contable en XLSX.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/tu-usuario/docflow-api/internal/application/document"
)

// Asegura que XMLBuilder implementa document.XMLProjector.
var _ document.XMLProjector = (*XMLBuilder)(nil)

// XMLBuilder construye la proyección XML de una versión con fecha efectiva.
//
// La proyección es determinista: los mismos (documento, versión, fecha)
// producen exactamente los mismos bytes. Por eso no incluye ninguna marca de
// tiempo de generación, solo datos que ya son inmutables (la versión) o
// argumentos de la llamada (la fecha efectiva).
type XMLBuilder struct{}

// NewXMLBuilder crea el servicio.
func NewXMLBuilder() *XMLBuilder {
	return &XMLBuilder{}
}

// Build genera el []byte de la proyección.
func (b *XMLBuilder) Build(p *document.Projection) ([]byte, error) {
	if p == nil || p.Document == nil || p.Version == nil {
		return nil, fmt.Errorf("export: faltan documento o versión en la proyección")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Document")
	root.CreateAttr("id", p.Document.ID)
	root.CreateAttr("type", p.Document.Type)
	root.CreateAttr("status", p.Document.Status)

	root.CreateElement("Title").SetText(p.Document.Title)
	root.CreateElement("EffectiveDate").SetText(p.EffectiveDate.Format("2006-01-02"))

	version := root.CreateElement("Version")
	version.CreateAttr("id", p.Version.ID)
	version.CreateAttr("number", strconv.Itoa(p.Version.VersionNumber))
	version.CreateElement("CreatedAt").SetText(p.Version.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	version.CreateElement("CreatedBy").SetText(p.Version.CreatedBy)
	version.CreateElement("Data").SetText(string(p.Version.Data))

	if p.Company != nil {
		company := root.CreateElement("Company")
		company.CreateAttr("id", p.Company.ID)
		company.CreateElement("Name").SetText(p.Company.Name)
		company.CreateElement("TaxID").SetText(p.Company.TaxID)
		company.CreateElement("Address").SetText(p.Company.Address)
		company.CreateElement("Director").SetText(p.Company.Director)
		company.CreateElement("Accountant").SetText(p.Company.Accountant)
	}
	if p.Brand != nil {
		brand := root.CreateElement("Brand")
		brand.CreateAttr("id", p.Brand.ID)
		brand.CreateElement("Name").SetText(p.Brand.Name)
	}
	if p.BankAccount != nil {
		account := root.CreateElement("BankAccount")
		account.CreateAttr("id", p.BankAccount.ID)
		account.CreateElement("AccountNumber").SetText(p.BankAccount.AccountNumber)
		account.CreateElement("BankName").SetText(p.BankAccount.BankName)
		account.CreateElement("RoutingCode").SetText(p.BankAccount.RoutingCode)
		account.CreateElement("CorrespondentAccount").SetText(p.BankAccount.CorrespondentAccount)
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("export: serializar proyección: %w", err)
	}
	return buf.Bytes(), nil
}

// CanonicalDigest canonicaliza el XML (C14N) y devuelve el SHA-256 en hex.
// La canonicalización hace que diferencias cosméticas (indentación, orden de
// atributos) no cambien la identidad del artefacto.
func (b *XMLBuilder) CanonicalDigest(xmlDoc []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlDoc))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("export: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
