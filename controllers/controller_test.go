package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/CUknot/forum_backend/database"
	"github.com/CUknot/forum_backend/database/dbtest"
	"github.com/CUknot/forum_backend/middleware"
	"github.com/CUknot/forum_backend/models"
	"github.com/CUknot/forum_backend/sessions"
	"github.com/CUknot/forum_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type feedEvent struct {
	RoomID  uint
	Type    string
	Payload interface{}
}

type recordingFeed struct {
	mu     sync.Mutex
	events []feedEvent
}

func (f *recordingFeed) BroadcastToRoom(roomID uint, eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, feedEvent{RoomID: roomID, Type: eventType, Payload: payload})
}

func (f *recordingFeed) Serve(c *gin.Context, roomID, userID uint) {
	c.JSON(http.StatusOK, gin.H{"served_room": roomID, "served_user": userID})
}

func (f *recordingFeed) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	t     *testing.T
	store *database.Store
	auth  *middleware.Auth
	feed  *recordingFeed
	app   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	feed := &recordingFeed{}
	f := newFixtureWithFeed(t, feed)
	f.feed = feed
	return f
}

func newFixtureWithFeed(t *testing.T, feed RoomFeed) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()

	db := dbtest.Open(t)
	store := database.NewStore(db)
	auth := &middleware.Auth{
		Sessions: sessions.NewDBStore(db),
		Users:    store,
		Tokens:   utils.NewTokenCodec("test-secret"),
		TTL:      time.Hour,
	}

	app := gin.New()
	app.Use(auth.LoadSession())
	New(store, auth, feed).Routes(app)

	return &fixture{t: t, store: store, auth: auth, app: app}
}

// client is a browser stand-in that keeps the cookies it is given.
type client struct {
	f       *fixture
	cookies map[string]*http.Cookie
}

func (f *fixture) anonymous() *client {
	return &client{f: f, cookies: map[string]*http.Cookie{}}
}

// signUp creates an account directly in the store and logs it in over HTTP.
func (f *fixture) signUp(username string) (*client, *models.User) {
	f.t.Helper()
	user := &models.User{Username: username, Password: "password123"}
	require.NoError(f.t, f.store.CreateUser(context.Background(), user))

	cl := f.anonymous()
	w := cl.post("/login/", url.Values{"username": {username}, "password": {"password123"}})
	require.Equal(f.t, http.StatusFound, w.Code)
	return cl, user
}

func (cl *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	cl.f.app.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(cl.cookies, ck.Name)
			continue
		}
		cl.cookies[ck.Name] = ck
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, path, nil)
}

func (cl *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return cl.do(http.MethodPost, path, form)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (f *fixture) createRoom(cl *client, name, topic string) *models.Room {
	f.t.Helper()
	w := cl.post("/create-room/", url.Values{"name": {name}, "topic": {topic}, "description": {"about " + name}})
	require.Equal(f.t, http.StatusFound, w.Code, w.Body.String())

	rooms, err := f.store.SearchRooms(context.Background(), name)
	require.NoError(f.t, err)
	require.NotEmpty(f.t, rooms)
	return &rooms[0]
}
