package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	url, err := ls.Save(fileHeader(t, "CV.PDF", "resume"), DirReferralResumes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/resumes/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	full, err := ls.FullPath(url)
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "resume", string(data))

	require.NoError(t, ls.Delete(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.Delete(url), "deleting twice is not an error")
}

func TestLocalStorage_FullPathRejectsForeignURLs(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = ls.FullPath("/static/x.png")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = ls.FullPath("/uploads/")
	assert.ErrorIs(t, err, ErrInvalidPath)

	full, err := ls.FullPath("/uploads/../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, ls.BasePath()))
}
