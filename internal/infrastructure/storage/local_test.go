package storage_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
)

func TestGenerateStorageName_SaneaAcentosYEspacios(t *testing.T) {
	name := storage.GenerateStorageName("Factura Énero.PDF")

	assert.True(t, strings.HasPrefix(name, "factura-enero_"),
		"la base debe quedar sin acentos, en minúsculas y con guiones: %s", name)
	assert.True(t, strings.HasSuffix(name, ".pdf"),
		"la extensión debe normalizarse a minúsculas: %s", name)
}

func TestGenerateStorageName_NombreIlegible_UsaFallback(t *testing.T) {
	name := storage.GenerateStorageName("日本語.txt")

	assert.True(t, strings.HasPrefix(name, "archivo_"),
		"sin caracteres rescatables la base debe ser el fallback: %s", name)
	assert.True(t, strings.HasSuffix(name, ".txt"))
}

func TestGenerateStorageName_EsUnicoPorLlamada(t *testing.T) {
	a := storage.GenerateStorageName("foto.jpg")
	b := storage.GenerateStorageName("foto.jpg")
	assert.NotEqual(t, a, b, "el UUID embebido evita colisiones entre subidas iguales")
}

func TestLocalStorage_SaveOpenRemove(t *testing.T) {
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	content := []byte("contenido de prueba")
	path, written, err := st.Save("nota_abc.txt", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), written)

	rc, err := st.Open(path)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, st.Remove(path))
	_, err = st.Open(path)
	assert.Error(t, err, "tras borrar, el archivo ya no debe abrirse")

	// Remove es tolerante a archivos ya inexistentes.
	assert.NoError(t, st.Remove(path))
}

func TestLocalStorage_Save_NoSobreescribe(t *testing.T) {
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, _, err = st.Save("mismo.txt", bytes.NewReader([]byte("uno")))
	require.NoError(t, err)

	_, _, err = st.Save("mismo.txt", bytes.NewReader([]byte("dos")))
	assert.Error(t, err, "un nombre de disco repetido no debe sobreescribirse")
}
