package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// App wires the API client, the persisted session store, and the REPL
// together. It is the CLI counterpart of the browser client: session state
// lives in the store, every view reads from it, and role decides which
// commands are offered.
type App struct {
	cfg    *Config
	api    *API
	store  *SessionStore
	reader *bufio.Reader
	out    io.Writer

	// lastRows caches the most recent listing so resolve/reject/delete can
	// address rows by number.
	lastRows []TrackedComplaint
}

func NewApp(cfg *Config) *App {
	store := NewSessionStore(cfg.SessionFile)
	api := NewAPI(cfg.ServerBaseURL, func() string { return store.Current().Token })
	return &App{
		cfg:    cfg,
		api:    api,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	a.store.Subscribe(func(s Session) {
		if s.LoggedIn() {
			fmt.Fprintf(a.out, "Signed in as %s (%s)\n", s.Username, s.Role)
		} else {
			fmt.Fprintln(a.out, "Signed out")
		}
	})
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) status() string {
	s := a.store.Current()
	if !s.LoggedIn() {
		return "not logged in"
	}
	return fmt.Sprintf("%s/%s", s.Username, s.Role)
}

func (a *App) isLoggedIn() bool { return a.store.Current().LoggedIn() }

func (a *App) isAdmin() bool { return a.store.Current().Role == "admin" }

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	phone, err := getIndex(a.reader, "Phone number", a.out)
	if err != nil {
		return err
	}

	err = a.api.Register(ctx, RegisterRequest{
		Username:    username,
		Password:    password,
		Email:       email,
		PhoneNumber: int64(phone),
	})
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Account created, you can log in now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, a.api.Login, "citizen")
}

func (a *App) AdminLogin(ctx context.Context) error {
	return a.login(ctx, a.api.AdminLogin, "admin")
}

func (a *App) login(ctx context.Context, fn func(context.Context, string, string) (*LoginResponse, error), role string) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	resp, err := fn(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	return a.store.Set(Session{
		UserID:   resp.UserData.ID,
		Username: resp.UserData.Username,
		Role:     role,
		Token:    resp.Token,
	})
}

func (a *App) Logout(ctx context.Context) error {
	a.lastRows = nil
	return a.store.Clear()
}

// Report files a new complaint for the logged-in citizen.
func (a *App) Report(ctx context.Context) error {
	location, err := getSimpleText(a.reader, "Location", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	s := a.store.Current()
	citizen, err := a.api.SubmitComplaint(ctx, s.UserID, ComplaintRequest{
		Location:    location,
		Category:    category,
		Description: description,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Report failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Complaint filed, you now have %d open report(s)\n", len(citizen.Complaints))
	return nil
}

// Track lists the logged-in citizen's own complaints.
func (a *App) Track(ctx context.Context) error {
	s := a.store.Current()
	return a.list(ctx, func(ctx context.Context) ([]Citizen, error) {
		return a.api.TrackByUsername(ctx, s.Username)
	})
}

// Reports lists every citizen's complaints (admin view).
func (a *App) Reports(ctx context.Context) error {
	return a.list(ctx, a.api.TrackAll)
}

func (a *App) list(ctx context.Context, fetch func(context.Context) ([]Citizen, error)) error {
	citizenList, err := fetch(ctx)
	if errors.Is(err, ErrEmptyList) {
		a.lastRows = nil
		fmt.Fprintln(a.out, "No complaints yet")
		return nil
	}
	if err != nil {
		fmt.Fprintln(a.out, "Listing failed:", err)
		return err
	}

	a.lastRows = FlattenComplaints(citizenList)
	for i, row := range a.lastRows {
		fmt.Fprintf(a.out, "%3d. [%s] %s @ %s - %s (by %s, %s)\n",
			i+1, row.Status, row.Category, row.Location, row.Description,
			row.ParentUsername, row.ReportedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Resolve and Reject patch a listed complaint's status (admin only).
func (a *App) Resolve(ctx context.Context) error { return a.setStatus(ctx, "resolved") }
func (a *App) Reject(ctx context.Context) error  { return a.setStatus(ctx, "rejected") }

func (a *App) setStatus(ctx context.Context, status string) error {
	row, err := a.pickRow()
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	complaint, err := a.api.UpdateStatus(ctx, row.ParentID, row.ID, status)
	if err != nil {
		fmt.Fprintln(a.out, "Status update failed:", err)
		// Re-fetch so the cached listing doesn't show stale state.
		return a.Reports(ctx)
	}
	fmt.Fprintf(a.out, "Complaint marked %s\n", complaint.Status)
	return nil
}

// Delete removes a listed complaint.
func (a *App) Delete(ctx context.Context) error {
	row, err := a.pickRow()
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if err := a.api.DeleteComplaint(ctx, row.ParentID, row.ID); err != nil {
		fmt.Fprintln(a.out, "Delete failed:", err)
		if a.isAdmin() {
			return a.Reports(ctx)
		}
		return a.Track(ctx)
	}
	fmt.Fprintln(a.out, "Complaint deleted")
	return nil
}

func (a *App) pickRow() (*TrackedComplaint, error) {
	if len(a.lastRows) == 0 {
		return nil, errors.New("nothing listed yet, run track or reports first")
	}
	n, err := getIndex(a.reader, "Complaint number", a.out)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(a.lastRows) {
		return nil, fmt.Errorf("number out of range 1..%d", len(a.lastRows))
	}
	return &a.lastRows[n-1], nil
}
