package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LocalStorage guarda los binarios de archivos en un directorio local.
// La fila de metadatos en la tabla files referencia la ruta devuelta por Save.
type LocalStorage struct {
	dir string
}

// NewLocalStorage crea el directorio de subidas si no existe.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de subidas: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir devuelve el directorio base de subidas.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save escribe el contenido bajo storageName y devuelve la ruta completa y
// los bytes escritos. No sobreescribe: el nombre generado incluye un UUID.
func (s *LocalStorage) Save(storageName string, src io.Reader) (string, int64, error) {
	path := filepath.Join(s.dir, storageName)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("crear archivo: %w", err)
	}
	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("escribir archivo: %w", err)
	}
	return path, written, nil
}

// Open abre el binario para lectura (descarga).
func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	return f, nil
}

// Remove borra el binario del disco.
func (s *LocalStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar archivo: %w", err)
	}
	return nil
}

// GenerateStorageName compone el nombre de disco: base saneada + UUID + la
// extensión original en minúsculas. "Factura Énero.PDF" -> "factura-enero_<uuid>.pdf".
func GenerateStorageName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = sanitizeBase(base)
	if base == "" {
		base = "archivo"
	}
	return fmt.Sprintf("%s_%s%s", base, uuid.New().String(), ext)
}

// sanitizeBase quita acentos (NFD + eliminación de marcas combinantes) y deja
// solo [a-z0-9-] en minúsculas.
func sanitizeBase(base string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, base)
	if err != nil {
		clean = base
	}
	var b strings.Builder
	for _, r := range strings.ToLower(clean) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
