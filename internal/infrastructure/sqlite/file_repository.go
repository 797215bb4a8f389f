package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.FileRepository = (*FileRepo)(nil)

// FileRepo implementación del puerto FileRepository sobre SQLite.
type FileRepo struct {
	db *sql.DB
}

// NewFileRepository construye el adaptador de persistencia para archivos.
func NewFileRepository(db *sql.DB) *FileRepo {
	return &FileRepo{db: db}
}

const fileColumns = `id, original_name, storage_name, mime_type, size, path, uploaded_by, created_at, updated_at`

// Create persiste los metadatos de un archivo subido.
func (r *FileRepo) Create(f *entity.FileRecord) error {
	query := `
		INSERT INTO files (` + fileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		f.ID, f.OriginalName, f.StorageName, f.MimeType, f.Size, f.Path,
		ptrToNullString(f.UploadedBy), f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

// GetByID obtiene los metadatos de un archivo por ID.
func (r *FileRepo) GetByID(id string) (*entity.FileRecord, error) {
	f, err := scanFile(r.db.QueryRow(`SELECT `+fileColumns+` FROM files WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	return f, nil
}

func scanFile(row rowScanner) (*entity.FileRecord, error) {
	var f entity.FileRecord
	var uploadedBy sql.NullString
	if err := row.Scan(&f.ID, &f.OriginalName, &f.StorageName, &f.MimeType, &f.Size,
		&f.Path, &uploadedBy, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.UploadedBy = nullStringToPtr(uploadedBy)
	return &f, nil
}

// Update actualiza los metadatos de un archivo.
func (r *FileRepo) Update(f *entity.FileRecord) error {
	query := `
		UPDATE files
		SET original_name = ?, storage_name = ?, mime_type = ?, size = ?, path = ?, uploaded_by = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.Exec(query,
		f.OriginalName, f.StorageName, f.MimeType, f.Size, f.Path,
		ptrToNullString(f.UploadedBy), f.UpdatedAt, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	return nil
}

// ListByUploader lista los archivos de un usuario con paginación.
func (r *FileRepo) ListByUploader(userID string, limit, offset int) ([]*entity.FileRecord, error) {
	return r.list(`SELECT `+fileColumns+` FROM files WHERE uploaded_by = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`, userID, limit, offset)
}

// CountByUploader cuenta los archivos de un usuario.
func (r *FileRepo) CountByUploader(userID string) (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM files WHERE uploaded_by = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return n, nil
}

// ListAll lista todos los archivos (vista admin) con paginación.
func (r *FileRepo) ListAll(limit, offset int) ([]*entity.FileRecord, error) {
	return r.list(`SELECT `+fileColumns+` FROM files ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
}

func (r *FileRepo) list(query string, args ...interface{}) ([]*entity.FileRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var list []*entity.FileRecord
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Count devuelve el total de archivos.
func (r *FileRepo) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return n, nil
}

// Stats agrega conteo, bytes totales y distribución por MIME.
// uploadedBy nil calcula las cifras globales (vista admin).
func (r *FileRepo) Stats(uploadedBy *string) (*repository.FileStats, error) {
	stats := &repository.FileStats{ByMimeType: map[string]int{}}

	var totalQuery, mimeQuery string
	var args []interface{}
	if uploadedBy != nil {
		totalQuery = `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM files WHERE uploaded_by = ?`
		mimeQuery = `SELECT mime_type, COUNT(*) FROM files WHERE uploaded_by = ? GROUP BY mime_type`
		args = []interface{}{*uploadedBy}
	} else {
		totalQuery = `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM files`
		mimeQuery = `SELECT mime_type, COUNT(*) FROM files GROUP BY mime_type`
	}

	if err := r.db.QueryRow(totalQuery, args...).Scan(&stats.TotalFiles, &stats.TotalSize); err != nil {
		return nil, fmt.Errorf("file stats: %w", err)
	}

	rows, err := r.db.Query(mimeQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("file stats by mime: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mime string
		var count int
		if err := rows.Scan(&mime, &count); err != nil {
			return nil, fmt.Errorf("scan file stats: %w", err)
		}
		stats.ByMimeType[mime] = count
	}
	return stats, rows.Err()
}

// Delete elimina los metadatos de un archivo. Devuelve si existía la fila.
func (r *FileRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete file: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
