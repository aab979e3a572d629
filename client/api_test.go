package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_LoginAndAuthorizedRequests(t *testing.T) {
	token := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/city-api/citizen/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice", body["username"])
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message": "Login success",
				"token":   "tok-123",
				"UserData": map[string]interface{}{
					"_id":      "id-1",
					"username": "alice",
				},
			})
		case "/city-api/citizen/track/alice":
			// The client must send the token it received at login.
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message": "Complaint list",
				"items": []map[string]interface{}{
					{"_id": "id-1", "username": "alice", "complaints": []map[string]string{
						{"_id": "c-1", "location": "Main St", "category": "Garbage", "description": "bin", "status": "pending"},
					}},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	api := NewAPI(srv.URL+"/city-api", func() string { return token })

	resp, err := api.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "alice", resp.UserData.Username)
	token = resp.Token

	items, err := api.TrackByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].Complaints, 1)
	assert.Equal(t, "pending", items[0].Complaints[0].Status)
}

func TestAPI_EmptySignal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"message": "Empty list"})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, func() string { return "" })
	_, err := api.TrackAll(context.Background())
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestAPI_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "User already exists"})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, func() string { return "" })
	err := api.Register(context.Background(), RegisterRequest{Username: "alice", Password: "secret1", Email: "a@x.com", PhoneNumber: 1})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Message)
}

func TestAPI_UpdateStatusAndDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		switch r.Method {
		case http.MethodPatch:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message":   "Status updated",
				"complaint": map[string]string{"_id": "c-1", "status": body["status"]},
			})
		case http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]string{"message": "Complaint deleted successfully"})
		}
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, func() string { return "tok" })

	complaint, err := api.UpdateStatus(context.Background(), "p-1", "c-1", "resolved")
	require.NoError(t, err)
	assert.Equal(t, "resolved", complaint.Status)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/admin/complaint/p-1/c-1/status", gotPath)

	require.NoError(t, api.DeleteComplaint(context.Background(), "p-1", "c-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/citizen/complaint/p-1/c-1", gotPath)
}

func TestAPI_TransportErrorIsNotAPIError(t *testing.T) {
	api := NewAPI("http://127.0.0.1:1", func() string { return "" })
	_, err := api.TrackAll(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.False(t, errors.Is(err, ErrEmptyList))
}
