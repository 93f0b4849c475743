package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sadat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEndpoints(t *testing.T) {
	app, st := newTestServer(t)
	ctx := context.Background()
	me := st.CurrentUser(ctx)

	require.NoError(t, st.Notify(ctx, me.ID, "something happened"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil))
	require.NoError(t, err)
	var count struct {
		Count int `json:"count"`
	}
	decodeBody(t, resp, &count)
	assert.Equal(t, 1, count.Count)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	require.NoError(t, err)
	var notifs []*models.Notification
	decodeBody(t, resp, &notifs)
	require.Len(t, notifs, 1)
	assert.Equal(t, "something happened", notifs[0].Text)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/notifications/seen", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil))
	require.NoError(t, err)
	decodeBody(t, resp, &count)
	assert.Zero(t, count.Count)
}

func TestSettingsEndpoints(t *testing.T) {
	app, _ := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	require.NoError(t, err)
	var settings struct {
		Theme string `json:"theme"`
	}
	decodeBody(t, resp, &settings)
	assert.Equal(t, models.ThemeLight, settings.Theme)

	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/settings/theme", map[string]string{"theme": "dark"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/settings/theme/toggle", nil))
	require.NoError(t, err)
	decodeBody(t, resp, &settings)
	assert.Equal(t, models.ThemeLight, settings.Theme, "toggle flips dark back to light")

	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/settings/theme", map[string]string{"theme": "neon"}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStoryEndpoints(t *testing.T) {
	app, _ := newTestServer(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/stories", map[string]string{"image": "data:image/png;base64,abc"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var story models.Story
	decodeBody(t, resp, &story)
	assert.NotEmpty(t, story.ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/stories", nil))
	require.NoError(t, err)
	var stories []*models.StoryView
	decodeBody(t, resp, &stories)
	require.Len(t, stories, 1)
	assert.Equal(t, story.ID, stories[0].ID)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/stories", map[string]string{}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
