package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickmind/brickmind/internal/catalog"
	"github.com/brickmind/brickmind/internal/store"
)

type fakeAsker struct {
	answer *catalog.Answer
	err    error
	asked  []string
}

func (f *fakeAsker) Ask(ctx context.Context, query string) (*catalog.Answer, error) {
	f.asked = append(f.asked, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func newTestServer(t *testing.T, asker Answerer) (*Server, *store.Store) {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "brickmind-web-*.sqlite")
	require.NoError(t, err)
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	st, err := store.NewStore(tmpFile.Name())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewServer(DefaultAddr, st, asker, nil), st
}

func postChat(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexServesChatPage(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAsker{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "LEGO AI Assistant")
}

func TestChatAssignsSessionAndKeepsHistory(t *testing.T) {
	asker := &fakeAsker{answer: &catalog.Answer{
		Response: "The 75192 is the biggest Falcon.",
		Sets:     []catalog.Set{{SetID: "75192-1", Name: "Millennium Falcon", Theme: "Star Wars"}},
	}}
	srv, _ := newTestServer(t, asker)
	h := srv.Handler()

	rec := postChat(t, h, chatRequest{Message: "biggest falcon?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "The 75192 is the biggest Falcon.", resp.Response)
	require.Len(t, resp.Sets, 1)
	assert.Equal(t, "75192-1", resp.Sets[0].SetID)

	// A second message on the same session keeps one history.
	rec = postChat(t, h, chatRequest{SessionID: resp.SessionID, Message: "how many pieces?"})
	require.Equal(t, http.StatusOK, rec.Code)

	histReq := httptest.NewRequest(http.MethodGet, "/api/chat/"+resp.SessionID+"/history", nil)
	histRec := httptest.NewRecorder()
	h.ServeHTTP(histRec, histReq)
	require.Equal(t, http.StatusOK, histRec.Code)

	var hist struct {
		SessionID string    `json:"session_id"`
		Messages  []Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &hist))
	require.Len(t, hist.Messages, 4)
	assert.Equal(t, "user", hist.Messages[0].Role)
	assert.Equal(t, "biggest falcon?", hist.Messages[0].Content)
	assert.Equal(t, "assistant", hist.Messages[1].Role)
	assert.Equal(t, "how many pieces?", hist.Messages[2].Content)

	assert.Equal(t, []string{"biggest falcon?", "how many pieces?"}, asker.asked)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAsker{})
	rec := postChat(t, srv.Handler(), chatRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatReportsAssistantFailure(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAsker{err: errors.New("model down")})
	rec := postChat(t, srv.Handler(), chatRequest{Message: "hello"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "assistant error")
}

func TestGetSet(t *testing.T) {
	srv, st := newTestServer(t, &fakeAsker{})
	year := 2017
	_, err := st.UpsertSet(&catalog.Set{
		SetID: "75192-1", Name: "Millennium Falcon", Theme: "Star Wars",
		PieceCount: 7541, ReleaseYear: &year,
	}, "test", time.Now())
	require.NoError(t, err)

	h := srv.Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/sets/75192-1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var set catalog.Set
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	assert.Equal(t, "Millennium Falcon", set.Name)
	assert.Equal(t, 7541, set.PieceCount)

	req = httptest.NewRequest(http.MethodGet, "/api/sets/99999-1", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAsker{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
