package usecase

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
	"github.com/jhoicas/tienda-api/pkg/logger"
	"github.com/jhoicas/tienda-api/pkg/metrics"
)

// FileStorage puerto hacia el almacenamiento de binarios en disco.
type FileStorage interface {
	Save(storageName string, src io.Reader) (path string, written int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// UploadLimits validaciones previas a cualquier escritura en disco.
type UploadLimits struct {
	MaxSizeBytes      int64
	AllowedExtensions []string
}

// FileUseCase subida, descarga y gestión de archivos. Secuencia de subida:
// validar, escribir binario, guardar metadatos; si los metadatos fallan se
// borra el binario (compensación best-effort, el fallo de limpieza solo se loguea).
type FileUseCase struct {
	repo    repository.FileRepository
	storage FileStorage
	limits  UploadLimits
	log     *logger.Logger
}

// NewFileUseCase construye el caso de uso de archivos.
func NewFileUseCase(repo repository.FileRepository, st FileStorage, limits UploadLimits, log *logger.Logger) *FileUseCase {
	return &FileUseCase{repo: repo, storage: st, limits: limits, log: log}
}

// Upload valida extensión y tamaño ANTES de tocar el disco; un archivo
// rechazado no deja huérfanos.
func (uc *FileUseCase) Upload(originalName, mimeType string, size int64, src io.Reader, uploadedBy *string) (*dto.FileResponse, error) {
	if originalName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.extensionAllowed(originalName) {
		return nil, domain.ErrExtensionNotAllowed
	}
	if uc.limits.MaxSizeBytes > 0 && size > uc.limits.MaxSizeBytes {
		return nil, domain.ErrFileTooLarge
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	storageName := storage.GenerateStorageName(originalName)
	path, written, err := uc.storage.Save(storageName, src)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entity.FileRecord{
		ID:           uuid.New().String(),
		OriginalName: originalName,
		StorageName:  storageName,
		MimeType:     mimeType,
		Size:         written,
		Path:         path,
		UploadedBy:   uploadedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(record); err != nil {
		// Compensación: el binario ya está en disco, se intenta retirar.
		if rmErr := uc.storage.Remove(path); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("path", path).Msg("no se pudo limpiar el archivo tras fallo de metadatos")
		}
		return nil, err
	}
	metrics.RecordFileUpload(written)
	return toFileResponse(record), nil
}

func (uc *FileUseCase) extensionAllowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, allowed := range uc.limits.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// GetByID obtiene los metadatos de un archivo.
func (uc *FileUseCase) GetByID(id string) (*dto.FileResponse, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return toFileResponse(record), nil
}

// Owner devuelve el uploader de un archivo (para el gate self-or-admin).
func (uc *FileUseCase) Owner(id string) (*string, bool, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, nil
	}
	return record.UploadedBy, true, nil
}

// Download abre el binario para streaming junto con sus metadatos.
func (uc *FileUseCase) Download(id string) (*dto.FileResponse, io.ReadCloser, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, domain.ErrNotFound
	}
	rc, err := uc.storage.Open(record.Path)
	if err != nil {
		return nil, nil, err
	}
	return toFileResponse(record), rc, nil
}

// ListByUploader lista los archivos del usuario con paginación y total.
func (uc *FileUseCase) ListByUploader(userID string, page dto.PageRequest) ([]dto.FileResponse, int, error) {
	page.DefaultPage()
	records, err := uc.repo.ListByUploader(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.CountByUploader(userID)
	if err != nil {
		return nil, 0, err
	}
	return toFileResponses(records), total, nil
}

// ListAll lista todos los archivos (vista admin).
func (uc *FileUseCase) ListAll(page dto.PageRequest) ([]dto.FileResponse, int, error) {
	page.DefaultPage()
	records, err := uc.repo.ListAll(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	return toFileResponses(records), total, nil
}

// Stats agregados por usuario; uploadedBy nil = globales (admin).
func (uc *FileUseCase) Stats(uploadedBy *string) (*dto.FileStatsResponse, error) {
	stats, err := uc.repo.Stats(uploadedBy)
	if err != nil {
		return nil, err
	}
	return &dto.FileStatsResponse{
		TotalFiles: stats.TotalFiles,
		TotalSize:  stats.TotalSize,
		ByMimeType: stats.ByMimeType,
	}, nil
}

// Rename actualiza el nombre original (solo metadatos, el disco no cambia).
func (uc *FileUseCase) Rename(id string, in dto.UpdateFileRequest) (*dto.FileResponse, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	if in.OriginalName != nil && *in.OriginalName != "" {
		record.OriginalName = *in.OriginalName
	}
	record.UpdatedAt = time.Now()
	if err := uc.repo.Update(record); err != nil {
		return nil, err
	}
	return toFileResponse(record), nil
}

// Delete borra metadatos y luego el binario; el fallo al borrar el disco se
// loguea pero no revierte la operación.
func (uc *FileUseCase) Delete(id string) (bool, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		if rmErr := uc.storage.Remove(record.Path); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("path", record.Path).Msg("no se pudo borrar el binario del disco")
		}
	}
	return deleted, nil
}

func toFileResponse(f *entity.FileRecord) *dto.FileResponse {
	if f == nil {
		return nil
	}
	return &dto.FileResponse{
		ID:           f.ID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		UploadedBy:   f.UploadedBy,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toFileResponses(files []*entity.FileRecord) []dto.FileResponse {
	out := make([]dto.FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, *toFileResponse(f))
	}
	return out
}
