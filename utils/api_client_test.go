package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_CreatePart(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "sb30.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("fake image bytes"), 0o644))

	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "S8/SB30", r.FormValue("title"))
		assert.Equal(t, "S8/SB30 Sink Base Cabinet", r.FormValue("subTitle"))
		assert.Equal(t, "19.99", r.FormValue("price"))

		file, header, err := r.FormFile("images")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sb30.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, "token123", logrus.New())
	part := PartUpload{
		Title:       "S8/SB30",
		SubTitle:    "S8/SB30 Sink Base Cabinet",
		Description: "Sink base cabinet",
		Price:       "19.99",
	}

	err := client.CreatePart(context.Background(), "cat1", part, imagePath)

	require.NoError(t, err)
	assert.Equal(t, "Bearer token123", gotAuth)
	assert.Equal(t, "/parts/create-parts/cat1", gotPath)
}

func TestAPIClient_CreatePart_ServerError(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "sb30.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("fake image bytes"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad token"}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, "wrong", logrus.New())
	err := client.CreatePart(context.Background(), "cat1", PartUpload{Title: "x"}, imagePath)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestAPIClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, "token", logrus.New())
	assert.True(t, client.Ping(context.Background()))

	server.Close()
	assert.False(t, client.Ping(context.Background()))
}
