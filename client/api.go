package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyList is the client-side form of the server's empty-signal: the
// query succeeded but there are no complaints yet. Callers must not present
// it as a failure.
var ErrEmptyList = errors.New("no complaints yet")

// APIError carries the server's {message} body together with the HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Wire types mirroring the server's JSON documents.

type Complaint struct {
	ID          string    `json:"_id"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CitizenImage struct {
	URL string `json:"url"`
}

type Citizen struct {
	ID          string         `json:"_id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	PhoneNumber int64          `json:"phoneNumber"`
	Images      []CitizenImage `json:"images"`
	Complaints  []Complaint    `json:"complaints"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	PhoneNumber int64  `json:"phoneNumber"`
}

type ComplaintRequest struct {
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type LoginResponse struct {
	Message  string  `json:"message"`
	Token    string  `json:"token"`
	UserData Citizen `json:"UserData"`
}

// API is the HTTP client for the complaint service. The token callback is
// consulted per request so a login during the session takes effect
// immediately.
type API struct {
	base  string
	http  *http.Client
	token func() string
}

func NewAPI(baseURL string, token func() string) *API {
	return &API{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: 30 * time.Second},
		token: token,
	}
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.base+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := a.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		return ErrEmptyList
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *API) Register(ctx context.Context, req RegisterRequest) error {
	return a.do(ctx, http.MethodPost, "/citizen/register", req, nil)
}

func (a *API) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"username": username, "password": password}
	if err := a.do(ctx, http.MethodPost, "/citizen/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) AdminLogin(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"username": username, "password": password}
	if err := a.do(ctx, http.MethodPost, "/citizen/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) SubmitComplaint(ctx context.Context, citizenID string, req ComplaintRequest) (*Citizen, error) {
	var out struct {
		Message string  `json:"message"`
		Citizen Citizen `json:"citizen"`
	}
	if err := a.do(ctx, http.MethodPost, "/citizen/"+citizenID+"/complaints", req, &out); err != nil {
		return nil, err
	}
	return &out.Citizen, nil
}

// TrackAll returns every citizen with their embedded complaints. ErrEmptyList
// means there is nothing to show yet.
func (a *API) TrackAll(ctx context.Context) ([]Citizen, error) {
	var out struct {
		Message string    `json:"message"`
		Items   []Citizen `json:"items"`
	}
	if err := a.do(ctx, http.MethodGet, "/citizen/track", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (a *API) TrackByUsername(ctx context.Context, username string) ([]Citizen, error) {
	var out struct {
		Message string    `json:"message"`
		Items   []Citizen `json:"items"`
	}
	if err := a.do(ctx, http.MethodGet, "/citizen/track/"+username, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (a *API) DeleteComplaint(ctx context.Context, parentID, complaintID string) error {
	return a.do(ctx, http.MethodDelete, "/citizen/complaint/"+parentID+"/"+complaintID, nil, nil)
}

func (a *API) UpdateStatus(ctx context.Context, parentID, complaintID, status string) (*Complaint, error) {
	var out struct {
		Message   string    `json:"message"`
		Complaint Complaint `json:"complaint"`
	}
	body := map[string]string{"status": status}
	path := "/admin/complaint/" + parentID + "/" + complaintID + "/status"
	if err := a.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Complaint, nil
}
