package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sdui/internal/schema"
)

const previewFixture = `{
  "id": "demo",
  "name": "Demo",
  "pages": [
    {
      "id": "home",
      "title": "Home",
      "components": [
        {"id": "hello", "type": "heading", "props": {"text": "Hello"}},
        {"id": "next", "type": "button", "props": {"title": "Next"}, "action": "@pushPage:details"},
        {"id": "toast", "type": "button", "props": {"title": "Toast"}, "action": {"type": "@toast", "params": {"message": "Saved"}}}
      ]
    },
    {
      "id": "details",
      "title": "Details",
      "components": [
        {"id": "email", "type": "text-input", "props": {"label": "Email"}, "validation": {"required": true}},
        {"id": "send", "type": "button", "props": {"title": "Send"}, "action": "@submitForm"},
        {"id": "back", "type": "button", "props": {"title": "Back"}, "action": "@popPage"}
      ]
    }
  ]
}`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	doc, _, err := schema.Parse([]byte(previewFixture))
	require.NoError(t, err)
	srv, err := NewServer(doc, opts...)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAction(t *testing.T, rec *httptest.ResponseRecorder) ActionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestServerRendersInitialPage(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `data-page-id="home"`)
	assert.Contains(t, body, `data-sdui-token="@pushPage:details"`)
	assert.Contains(t, body, "/ws")
}

func TestServerStoredPageRestoresHistory(t *testing.T) {
	srv := newTestServer(t, WithStoredPageID("details"))

	state := srv.State()
	assert.Equal(t, "details", state.PageID)
	assert.Equal(t, []string{"home", "details"}, state.History)
}

func TestServerActionsNavigate(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	resp := decodeAction(t, postJSON(t, h, "/actions", ActionRequest{Token: "@pushPage:details"}))
	assert.True(t, resp.Navigate)
	assert.Equal(t, "details", resp.PageID)
	assert.Equal(t, []string{"home", "details"}, resp.History)
	assert.Contains(t, get(t, h, "/").Body.String(), `data-page-id="details"`)

	resp = decodeAction(t, postJSON(t, h, "/actions", ActionRequest{Token: "@popPage"}))
	assert.True(t, resp.Navigate)
	assert.Equal(t, "home", resp.PageID)

	resp = decodeAction(t, postJSON(t, h, "/actions", ActionRequest{Token: "@popPage"}))
	assert.False(t, resp.Navigate)
	assert.Equal(t, []string{"home"}, resp.History)
}

func TestServerActionsNotify(t *testing.T) {
	h := newTestServer(t).Handler()

	resp := decodeAction(t, postJSON(t, h, "/actions", ActionRequest{
		Token: `{"type":"@toast","params":{"message":"Saved"}}`,
	}))
	assert.False(t, resp.Navigate)
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "Saved", resp.Notification.Message)
}

func TestServerSubmitValidatesPostedForm(t *testing.T) {
	srv := newTestServer(t, WithStoredPageID("details"))
	ctx := context.Background()

	resp, err := srv.Execute(ctx, ActionRequest{Token: "@submitForm"})
	require.NoError(t, err)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "email", resp.Issues[0].ComponentID)

	resp, err = srv.Execute(ctx, ActionRequest{Token: "@submitForm", Form: map[string]string{"email": "a@b.co"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Issues)
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "Form submitted successfully!", resp.Notification.Message)
}

func TestServerRejectsEmptyToken(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := postJSON(t, h, "/actions", ActionRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error struct {
			Category string `json:"category"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "validation", payload.Error.Category)
}

func TestServerCachesPristinePages(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	first := get(t, h, "/").Body.String()
	second := get(t, h, "/").Body.String()
	assert.Equal(t, first, second)

	stats := srv.State().Cache
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Len)
}

func TestServerSkipsCacheWithFormValues(t *testing.T) {
	srv := newTestServer(t, WithStoredPageID("details"))
	h := srv.Handler()

	_, err := srv.Execute(context.Background(), ActionRequest{Token: "@toast", Form: map[string]string{"email": "typed"}})
	require.NoError(t, err)

	body := get(t, h, "/").Body.String()
	assert.Contains(t, body, `value="typed"`)
	assert.Equal(t, 0, srv.State().Cache.Len)
}

func TestServerCacheDisabled(t *testing.T) {
	srv := newTestServer(t, WithCacheSize(0))
	h := srv.Handler()

	get(t, h, "/")
	get(t, h, "/")
	assert.Equal(t, CacheStats{}, srv.State().Cache)
}

func TestServerCacheSeparatesHistories(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	run := func(token string) {
		decodeAction(t, postJSON(t, h, "/actions", ActionRequest{Token: token}))
	}

	run("@pushPage:details")
	run("@pushPage:home")
	assert.Contains(t, get(t, h, "/").Body.String(), `data-history="home,details,home"`)

	run("@popPage")
	run("@popPage")
	run("@pushPage:home")
	run("@pushPage:home")
	require.Equal(t, []string{"home", "home", "home"}, srv.State().History)

	body := get(t, h, "/").Body.String()
	assert.Contains(t, body, `data-history="home,home,home"`)
	assert.Equal(t, 2, srv.State().Cache.Len)
}

func TestServerPurgesCacheOnSchemaChange(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	get(t, h, "/")
	require.Equal(t, 1, srv.State().Cache.Len)

	doc := srv.Schema()
	doc.Name = "Renamed"
	srv.SetSchema(doc)
	assert.Equal(t, 0, srv.State().Cache.Len)
}

func TestServerExportsSchema(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	h := newTestServer(t, WithClock(func() time.Time { return now })).Handler()

	rec := get(t, h, "/schema")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))

	doc, _, err := schema.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "demo", doc.ID)
	assert.Len(t, doc.Pages, 2)

	rec = get(t, h, "/schema?download=1")
	assert.Equal(t, `attachment; filename="Demo-1700000000000.json"`, rec.Header().Get("Content-Disposition"))
}

func TestServerImportReplacesSchema(t *testing.T) {
	srv := newTestServer(t, WithStoredPageID("details"))
	h := srv.Handler()

	updated := strings.Replace(previewFixture, `"title": "Details"`, `"title": "More"`, 1)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/schema", strings.NewReader(updated)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	page, ok := srv.Schema().Page("details")
	require.True(t, ok)
	assert.Equal(t, "More", page.Title)
	assert.Equal(t, "details", srv.State().PageID)
}

func TestServerImportFallsBackWhenPageRemoved(t *testing.T) {
	srv := newTestServer(t, WithStoredPageID("details"))

	err := srv.Load([]byte(`{"id":"demo","pages":[{"id":"start","components":[]}]}`))
	require.NoError(t, err)
	state := srv.State()
	assert.Equal(t, "start", state.PageID)
	assert.Equal(t, []string{"start"}, state.History)
}

func TestServerImportRejectsInvalidDocument(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/schema", strings.NewReader(`{"id":"x"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error struct {
			Category string `json:"category"`
			TextCode string `json:"text_code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "bad_input", payload.Error.Category)
	assert.Equal(t, "SDUI_IMPORT_INVALID", payload.Error.TextCode)
	assert.Equal(t, "demo", srv.Schema().ID)
}

func TestServerNilSchemaServesDefault(t *testing.T) {
	srv, err := NewServer(nil)
	require.NoError(t, err)

	state := srv.State()
	assert.Equal(t, schema.DefaultSchemaID, state.SchemaID)
	assert.Equal(t, schema.DefaultPageID, state.PageID)
}

func TestHubBroadcastsReloadOnSchemaChange(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return srv.Hub().Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	doc := srv.Schema()
	doc.Name = "Renamed"
	srv.SetSchema(doc)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventReload, event.Type)
	assert.Equal(t, "demo", event.SchemaID)
	assert.Equal(t, "home", event.PageID)
}
