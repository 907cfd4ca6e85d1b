package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	f := newFixture(t)
	bob, bobUser := f.signUp("bob")
	carol, carolUser := f.signUp("carol")
	room := f.createRoom(bob, "Chess Club", "Games")
	require.Equal(t, http.StatusFound, carol.post(fmt.Sprintf("/room/%d/", room.ID), url.Values{"body": {"hi"}}).Code)

	body := decodeBody(t, f.anonymous().get(fmt.Sprintf("/profile/%d/", bobUser.ID)))
	assert.Equal(t, "bob", body["user"].(map[string]interface{})["username"])
	assert.NotContains(t, body["user"], "password")
	assert.Len(t, body["rooms"], 1)
	assert.Empty(t, body["room_messages"])
	assert.Len(t, body["topics"], 1)

	body = decodeBody(t, f.anonymous().get(fmt.Sprintf("/profile/%d/", carolUser.ID)))
	assert.Empty(t, body["rooms"])
	assert.Len(t, body["room_messages"], 1)

	assert.Equal(t, http.StatusNotFound, f.anonymous().get("/profile/9999/").Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := f.anonymous().get("/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])

	require.NoError(t, f.store.Close())
	w = f.anonymous().get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
