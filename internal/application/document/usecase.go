package document

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
)

// emptySnapshot es el contenido de la versión inicial de todo documento.
var emptySnapshot = json.RawMessage(`{}`)

// UseCase casos de uso del modelo de documentos versionados.
//
// La mutación (Create, AddVersion) pasa siempre por el TxRunner para que el
// insert de la versión y la actualización del puntero vigente sean atómicos;
// las lecturas usan el repo directo. Generar es una proyección pura y vive en
// generate.go.
type UseCase struct {
	tx          TxRunner
	docRepo     repository.DocumentRepository
	companyRepo repository.CompanyRepository
	brandRepo   repository.BrandRepository
	bankRepo    repository.BankAccountRepository
	pdf         PDFGenerator
	xml         XMLProjector
	exporter    RegisterExporter
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	tx TxRunner,
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	brandRepo repository.BrandRepository,
	bankRepo repository.BankAccountRepository,
	pdf PDFGenerator,
	xml XMLProjector,
	exporter RegisterExporter,
) *UseCase {
	return &UseCase{
		tx:          tx,
		docRepo:     docRepo,
		companyRepo: companyRepo,
		brandRepo:   brandRepo,
		bankRepo:    bankRepo,
		pdf:         pdf,
		xml:         xml,
		exporter:    exporter,
	}
}

// Create crea un documento en estado draft con su versión 1 (snapshot vacío)
// y el puntero vigente apuntándole. Todo en una transacción.
//
// Devuelve domain.ErrValidation si el título está vacío, el tipo es
// desconocido, o company/brand/bank no resuelven (o la marca no pertenece a
// la empresa).
func (uc *UseCase) Create(ctx context.Context, authorID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if in.Title == "" || !entity.ValidDocType(in.Type) {
		return nil, domain.ErrValidation
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrValidation
	}
	brand, err := uc.brandRepo.GetByID(in.BrandID)
	if err != nil {
		return nil, err
	}
	if brand == nil || brand.CompanyID != in.CompanyID {
		return nil, domain.ErrValidation
	}
	if in.BankAccountID != "" {
		account, err := uc.bankRepo.GetByID(in.BankAccountID)
		if err != nil {
			return nil, err
		}
		if account == nil || account.CompanyID != in.CompanyID {
			return nil, domain.ErrValidation
		}
	}

	now := time.Now()
	doc := &entity.Document{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Type:          in.Type,
		CompanyID:     in.CompanyID,
		BrandID:       in.BrandID,
		BankAccountID: in.BankAccountID,
		Status:        entity.DocStatusDraft,
		CreatedBy:     authorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	v1 := &entity.DocumentVersion{
		ID:            uuid.New().String(),
		DocumentID:    doc.ID,
		VersionNumber: 1,
		CreatedAt:     now,
		CreatedBy:     authorID,
		Data:          emptySnapshot,
	}

	err = uc.tx.Run(ctx, func(docRepo repository.DocumentRepository) error {
		if err := docRepo.Create(doc); err != nil {
			return err
		}
		if err := docRepo.CreateVersion(v1); err != nil {
			return err
		}
		doc.CurrentVersionID = v1.ID
		return docRepo.UpdatePointer(doc)
	})
	if err != nil {
		return nil, err
	}
	return entityToDocumentResponse(doc), nil
}

// AddVersion agrega una versión nueva con versionNumber = máximo existente + 1
// y mueve el puntero vigente. Las versiones anteriores quedan intactas.
//
// Devuelve domain.ErrNotFound si el documento no existe.
func (uc *UseCase) AddVersion(ctx context.Context, documentID, authorID string, data json.RawMessage) (*dto.VersionResponse, error) {
	if len(data) == 0 {
		data = emptySnapshot
	}
	if !json.Valid(data) {
		return nil, domain.ErrValidation
	}

	var version *entity.DocumentVersion
	err := uc.tx.Run(ctx, func(docRepo repository.DocumentRepository) error {
		doc, err := docRepo.GetByID(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		last, err := docRepo.MaxVersionNumber(documentID)
		if err != nil {
			return err
		}
		now := time.Now()
		version = &entity.DocumentVersion{
			ID:            uuid.New().String(),
			DocumentID:    documentID,
			VersionNumber: last + 1,
			CreatedAt:     now,
			CreatedBy:     authorID,
			Data:          data,
		}
		if err := docRepo.CreateVersion(version); err != nil {
			return err
		}
		doc.CurrentVersionID = version.ID
		doc.UpdatedAt = now
		return docRepo.UpdatePointer(doc)
	})
	if err != nil {
		return nil, err
	}
	return entityToVersionResponse(version), nil
}

// ListVersions devuelve las versiones de un documento, ascendentes por número.
// Es una instantánea finita, no un stream.
func (uc *UseCase) ListVersions(documentID string) (*dto.VersionListResponse, error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	versions, err := uc.docRepo.ListVersions(documentID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VersionResponse, 0, len(versions))
	for _, v := range versions {
		items = append(items, *entityToVersionResponse(v))
	}
	return &dto.VersionListResponse{Items: items}, nil
}

// GetByID obtiene un documento por ID.
func (uc *UseCase) GetByID(id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return entityToDocumentResponse(doc), nil
}

// List lista documentos, opcionalmente filtrados por empresa.
func (uc *UseCase) List(companyID string, limit, offset int) (*dto.DocumentListResponse, error) {
	var (
		list []*entity.Document
		err  error
	)
	if companyID != "" {
		list, err = uc.docRepo.ListByCompany(companyID, limit, offset)
	} else {
		list, err = uc.docRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *entityToDocumentResponse(d))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStatus aplica una transición de estado (draft → active → archived).
// Devuelve domain.ErrValidation si el estado destino es desconocido y
// domain.ErrConflict si la transición no es legal.
func (uc *UseCase) UpdateStatus(ctx context.Context, documentID, status string) (*dto.DocumentResponse, error) {
	if status != entity.DocStatusDraft && status != entity.DocStatusActive && status != entity.DocStatusArchived {
		return nil, domain.ErrValidation
	}
	var doc *entity.Document
	err := uc.tx.Run(ctx, func(docRepo repository.DocumentRepository) error {
		var err error
		doc, err = docRepo.GetByID(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if !entity.ValidStatusTransition(doc.Status, status) {
			return domain.ErrConflict
		}
		doc.Status = status
		doc.UpdatedAt = time.Now()
		return docRepo.UpdatePointer(doc)
	})
	if err != nil {
		return nil, err
	}
	return entityToDocumentResponse(doc), nil
}

// Delete elimina un documento y, en cascada, todas sus versiones (ownership
// exclusivo del documento sobre sus versiones).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	return uc.docRepo.Delete(id)
}

func entityToDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentResponse{
		ID:               d.ID,
		Title:            d.Title,
		Type:             d.Type,
		CompanyID:        d.CompanyID,
		BrandID:          d.BrandID,
		BankAccountID:    d.BankAccountID,
		Status:           d.Status,
		CreatedBy:        d.CreatedBy,
		CurrentVersionID: d.CurrentVersionID,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func entityToVersionResponse(v *entity.DocumentVersion) *dto.VersionResponse {
	if v == nil {
		return nil
	}
	return &dto.VersionResponse{
		ID:            v.ID,
		DocumentID:    v.DocumentID,
		VersionNumber: v.VersionNumber,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
		Data:          v.Data,
	}
}
