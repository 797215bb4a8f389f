package usecase_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes — almacenamiento en memoria para observar escrituras y limpiezas
// ──────────────────────────────────────────────────────────────────────────────

type memStorage struct {
	files   map[string][]byte
	saves   int
	removes int
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (m *memStorage) Save(storageName string, src io.Reader) (string, int64, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", 0, err
	}
	path := "/mem/" + storageName
	m.files[path] = data
	m.saves++
	return path, int64(len(data)), nil
}

func (m *memStorage) Open(path string) (io.ReadCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, errors.New("archivo no encontrado")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Remove(path string) error {
	delete(m.files, path)
	m.removes++
	return nil
}

// failingFileRepo falla en Create para forzar la compensación post-escritura.
type failingFileRepo struct {
	repository.FileRepository
}

func (f *failingFileRepo) Create(file *entity.FileRecord) error {
	return errors.New("metadatos no disponibles")
}

func newFileUseCase(t *testing.T, st usecase.FileStorage) *usecase.FileUseCase {
	t.Helper()
	return usecase.NewFileUseCase(
		sqlite.NewFileRepository(newTestDB(t)),
		st,
		usecase.UploadLimits{
			MaxSizeBytes:      1024,
			AllowedExtensions: []string{".jpg", ".png", ".pdf", ".txt"},
		},
		logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests FileUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestFileUseCase_Upload_YDownload(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)
	owner := "user-1"

	content := []byte("%PDF-prueba")
	out, err := uc.Upload("factura enero.pdf", "application/pdf", int64(len(content)), bytes.NewReader(content), &owner)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "factura enero.pdf", out.OriginalName, "el nombre original se conserva en metadatos")
	assert.Equal(t, int64(len(content)), out.Size, "el tamaño registrado es lo realmente escrito")
	require.NotNil(t, out.UploadedBy)
	assert.Equal(t, owner, *out.UploadedBy)

	meta, rc, err := uc.Download(out.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, out.ID, meta.ID)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, data, "la descarga devuelve los bytes guardados")
}

func TestFileUseCase_Upload_ExtensionNoPermitida_NoTocaDisco(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)

	_, err := uc.Upload("malware.exe", "application/octet-stream", 10, bytes.NewReader(make([]byte, 10)), nil)
	assert.ErrorIs(t, err, domain.ErrExtensionNotAllowed)
	assert.Zero(t, st.saves, "un archivo rechazado no debe escribirse en disco")
}

func TestFileUseCase_Upload_SinExtension_Rechazado(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)

	_, err := uc.Upload("README", "text/plain", 5, bytes.NewReader([]byte("hola!")), nil)
	assert.ErrorIs(t, err, domain.ErrExtensionNotAllowed)
	assert.Zero(t, st.saves)
}

func TestFileUseCase_Upload_ExcedeTamano_NoTocaDisco(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)

	_, err := uc.Upload("grande.txt", "text/plain", 4096, bytes.NewReader(make([]byte, 4096)), nil)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Zero(t, st.saves, "el tamaño se valida antes de cualquier escritura")
}

func TestFileUseCase_Upload_FalloDeMetadatos_LimpiaElBinario(t *testing.T) {
	st := newMemStorage()
	uc := usecase.NewFileUseCase(
		&failingFileRepo{},
		st,
		usecase.UploadLimits{MaxSizeBytes: 1024, AllowedExtensions: []string{".txt"}},
		logger.Nop(),
	)

	_, err := uc.Upload("nota.txt", "text/plain", 4, bytes.NewReader([]byte("hola")), nil)
	require.Error(t, err)
	assert.Equal(t, 1, st.saves, "el binario llegó a escribirse")
	assert.Equal(t, 1, st.removes, "el binario debe retirarse al fallar los metadatos")
	assert.Empty(t, st.files, "no deben quedar huérfanos en disco")
}

func TestFileUseCase_ListByUploader_SoloDelUsuario(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)
	ana, benito := "ana", "benito"

	for i := 0; i < 2; i++ {
		_, err := uc.Upload("a.txt", "text/plain", 1, bytes.NewReader([]byte("x")), &ana)
		require.NoError(t, err)
	}
	_, err := uc.Upload("b.txt", "text/plain", 1, bytes.NewReader([]byte("x")), &benito)
	require.NoError(t, err)

	files, total, err := uc.ListByUploader(ana, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, 2, total)

	all, total, err := uc.ListAll(dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, total)
}

func TestFileUseCase_Stats_PorUsuarioYGlobales(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)
	ana := "ana"

	_, err := uc.Upload("foto.jpg", "image/jpeg", 3, bytes.NewReader([]byte("abc")), &ana)
	require.NoError(t, err)
	_, err = uc.Upload("nota.txt", "text/plain", 2, bytes.NewReader([]byte("ab")), &ana)
	require.NoError(t, err)
	_, err = uc.Upload("otra.txt", "text/plain", 2, bytes.NewReader([]byte("cd")), nil)
	require.NoError(t, err)

	own, err := uc.Stats(&ana)
	require.NoError(t, err)
	assert.Equal(t, 2, own.TotalFiles)
	assert.Equal(t, int64(5), own.TotalSize)
	assert.Equal(t, 1, own.ByMimeType["image/jpeg"])

	global, err := uc.Stats(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, global.TotalFiles, "stats sin filtro deben ser globales")
	assert.Equal(t, 2, global.ByMimeType["text/plain"])
}

func TestFileUseCase_Delete_BorraMetadatosYBinario(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)

	out, err := uc.Upload("nota.txt", "text/plain", 4, bytes.NewReader([]byte("hola")), nil)
	require.NoError(t, err)

	deleted, err := uc.Delete(out.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, st.files, "el binario debe borrarse del disco")

	got, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "los metadatos ya no deben existir")
}

func TestFileUseCase_Rename_SoloMetadatos(t *testing.T) {
	st := newMemStorage()
	uc := newFileUseCase(t, st)

	out, err := uc.Upload("nota.txt", "text/plain", 4, bytes.NewReader([]byte("hola")), nil)
	require.NoError(t, err)

	renamed, err := uc.Rename(out.ID, dto.UpdateFileRequest{OriginalName: strPtr("nota renombrada.txt")})
	require.NoError(t, err)
	assert.Equal(t, "nota renombrada.txt", renamed.OriginalName)
	assert.Equal(t, 1, st.saves, "renombrar no debe tocar el disco")
}
