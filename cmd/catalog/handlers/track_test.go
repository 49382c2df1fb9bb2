package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetbay/assetbay/cmd/catalog/store"
	"github.com/assetbay/assetbay/common/logger"
)

func newCatalogServer() *echo.Echo {
	e := echo.New()
	NewTrackHandler(store.NewSeeded(), logger.New("error", "json")).Register(e)
	return e
}

func doRequest(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListTracks(t *testing.T) {
	rec := doRequest(newCatalogServer(), http.MethodGet, "/api/tracks")
	require.Equal(t, http.StatusOK, rec.Code)

	var tracks []store.Track
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tracks))
	assert.Len(t, tracks, 5)
}

func TestGetTrack(t *testing.T) {
	rec := doRequest(newCatalogServer(), http.MethodGet, "/api/tracks/2")
	require.Equal(t, http.StatusOK, rec.Code)

	var track store.Track
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &track))
	assert.Equal(t, "Spring Day", track.Title)
}

func TestGetTrackNotFound(t *testing.T) {
	rec := doRequest(newCatalogServer(), http.MethodGet, "/api/tracks/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrackBadID(t *testing.T) {
	rec := doRequest(newCatalogServer(), http.MethodGet, "/api/tracks/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListByGenre(t *testing.T) {
	rec := doRequest(newCatalogServer(), http.MethodGet, "/api/tracks/genre/k-pop")
	require.Equal(t, http.StatusOK, rec.Code)

	var tracks []store.Track
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tracks))
	assert.Len(t, tracks, 5)
}

func TestListByGenreNoMatches(t *testing.T) {
	rec := doRequest(newCatalogServer(), http.MethodGet, "/api/tracks/genre/jazz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAddLike(t *testing.T) {
	e := newCatalogServer()

	rec := doRequest(e, http.MethodPost, "/api/tracks/1/like")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "like added"}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/tracks/1")
	var track store.Track
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &track))
	assert.Equal(t, 1000001, track.Likes)
}

func TestAddLikeNotFound(t *testing.T) {
	rec := doRequest(newCatalogServer(), http.MethodPost, "/api/tracks/99/like")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
