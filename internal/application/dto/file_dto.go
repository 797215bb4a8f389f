package dto

import "time"

// UpdateFileRequest entrada para renombrar un archivo (solo metadatos).
type UpdateFileRequest struct {
	OriginalName *string `json:"originalName"`
}

// FileResponse salida de los metadatos de un archivo. La ruta de disco no se
// expone; la descarga va por /api/files/:id/download.
type FileResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	UploadedBy   *string   `json:"uploadedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FileStatsResponse agregados de archivos para /api/files/stats/overview.
type FileStatsResponse struct {
	TotalFiles int            `json:"totalFiles"`
	TotalSize  int64          `json:"totalSize"`
	ByMimeType map[string]int `json:"byMimeType"`
}
