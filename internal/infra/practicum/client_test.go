package practicum

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homework_status_bot/internal/domain/homework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_HomeworkStatuses_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "OAuth secret", r.Header.Get("Authorization"))
		assert.Equal(t, "1700000000", r.URL.Query().Get("from_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks":[{"homework_name":"lab1","status":"approved"}],"current_date":1700000600}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL+"/api/user_api/homework_statuses/", "secret")
	body, err := client.HomeworkStatuses(context.Background(), 1700000000)
	require.NoError(t, err)

	homeworks, err := homework.CheckResponse(body)
	require.NoError(t, err)
	require.Len(t, homeworks, 1)

	ts, ok := homework.CurrentDate(body)
	assert.True(t, ok)
	assert.Equal(t, int64(1700000600), ts)
	assert.Equal(t, json.Number("1700000600"), body.(map[string]any)["current_date"])
}

func TestClient_HomeworkStatuses_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "secret")
	body, err := client.HomeworkStatuses(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, body)
	assert.Equal(t, homework.KindEndpointUnavailable, homework.KindOf(err))
	assert.Contains(t, err.Error(), "503 Service Unavailable")
}

func TestClient_HomeworkStatuses_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close() // connection refused from now on

	client := NewClient(nil, endpoint, "secret")
	_, err := client.HomeworkStatuses(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, homework.KindEndpointUnavailable, homework.KindOf(err))

	var hwErr *homework.Error
	require.ErrorAs(t, err, &hwErr)
	assert.NotNil(t, hwErr.Unwrap())
}

func TestClient_HomeworkStatuses_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "secret")
	_, err := client.HomeworkStatuses(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, homework.KindMalformedResponse, homework.KindOf(err))
}

func TestClient_HomeworkStatuses_KeepsEndpointQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v2", r.URL.Query().Get("api"))
		assert.Equal(t, "5", r.URL.Query().Get("from_date"))
		_, _ = w.Write([]byte(`{"homeworks":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL+"/?api=v2", "secret")
	_, err := client.HomeworkStatuses(context.Background(), 5)
	require.NoError(t, err)
}

func TestClient_HomeworkStatuses_TrailingGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"homeworks":[]} <html>oops</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "secret")
	body, err := client.HomeworkStatuses(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, body)
	assert.Equal(t, homework.KindMalformedResponse, homework.KindOf(err))
}

func TestClient_HomeworkStatuses_TrailingBrace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{\"homeworks\":[]}}\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "secret")
	_, err := client.HomeworkStatuses(context.Background(), 0)
	assert.Equal(t, homework.KindMalformedResponse, homework.KindOf(err))
}
