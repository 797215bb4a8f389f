package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// FileStats agregados sobre los archivos de un usuario (o globales).
type FileStats struct {
	TotalFiles int
	TotalSize  int64
	ByMimeType map[string]int
}

// FileRepository define el puerto de persistencia para FileRecord (DIP).
type FileRepository interface {
	Create(file *entity.FileRecord) error
	GetByID(id string) (*entity.FileRecord, error)
	Update(file *entity.FileRecord) error
	// ListByUploader lista los archivos subidos por un usuario.
	ListByUploader(userID string, limit, offset int) ([]*entity.FileRecord, error)
	CountByUploader(userID string) (int, error)
	// ListAll lista todos los archivos (vista admin).
	ListAll(limit, offset int) ([]*entity.FileRecord, error)
	Count() (int, error)
	// Stats agrega conteo, bytes y distribución por MIME. uploadedBy nil = global.
	Stats(uploadedBy *string) (*FileStats, error)
	Delete(id string) (bool, error)
}
