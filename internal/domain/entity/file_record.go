package entity

import "time"

// FileRecord metadatos de un archivo subido. El binario vive en disco bajo
// Path; la fila lo referencia. UploadedBy puede quedar colgante si el usuario
// se elimina (sin cascada, decisión explícita).
type FileRecord struct {
	ID           string
	OriginalName string // nombre con el que llegó el archivo
	StorageName  string // nombre generado bajo el que se guarda en disco
	MimeType     string
	Size         int64 // bytes
	Path         string // ruta completa en disco
	UploadedBy   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
