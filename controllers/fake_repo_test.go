package controllers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/urbanfix/urbanfix/models"
	"github.com/urbanfix/urbanfix/repositories/admins"
	"github.com/urbanfix/urbanfix/repositories/citizens"
)

// fakeCitizenRepo is an in-memory citizens.Repository with the same contract
// as the mongo implementation: unique usernames, idempotent deletes, typed
// errors.
type fakeCitizenRepo struct {
	mu       sync.Mutex
	docs     []models.Citizen
	failWith error // when set, every call fails with this error
}

func (f *fakeCitizenRepo) Create(_ context.Context, citizen *models.Citizen) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, d := range f.docs {
		if d.Username == citizen.Username {
			return citizens.ErrDuplicateUsername
		}
	}
	now := time.Now().UTC()
	citizen.ID = bson.NewObjectID()
	citizen.CreatedAt = now
	citizen.UpdatedAt = now
	if citizen.Images == nil {
		citizen.Images = []models.CitizenImage{}
	}
	if citizen.Complaints == nil {
		citizen.Complaints = []models.Complaint{}
	}
	f.docs = append(f.docs, *citizen)
	return nil
}

func (f *fakeCitizenRepo) FindByUsername(_ context.Context, username string) (*models.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.docs {
		if f.docs[i].Username == username {
			c := f.docs[i]
			return &c, nil
		}
	}
	return nil, citizens.ErrNotFound
}

func (f *fakeCitizenRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			c := f.docs[i]
			return &c, nil
		}
	}
	return nil, citizens.ErrNotFound
}

func (f *fakeCitizenRepo) List(_ context.Context) ([]models.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]models.Citizen{}, f.docs...), nil
}

func (f *fakeCitizenRepo) ListByUsername(_ context.Context, username string) ([]models.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Citizen, 0)
	for _, d := range f.docs {
		if d.Username == username {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeCitizenRepo) AppendComplaint(_ context.Context, citizenID bson.ObjectID, complaint models.Complaint) (*models.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.docs {
		if f.docs[i].ID == citizenID {
			f.docs[i].Complaints = append(f.docs[i].Complaints, complaint)
			c := f.docs[i]
			return &c, nil
		}
	}
	return nil, citizens.ErrNotFound
}

func (f *fakeCitizenRepo) DeleteComplaint(_ context.Context, citizenID, complaintID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.docs {
		if f.docs[i].ID == citizenID {
			kept := f.docs[i].Complaints[:0]
			for _, cp := range f.docs[i].Complaints {
				if cp.ID != complaintID {
					kept = append(kept, cp)
				}
			}
			f.docs[i].Complaints = kept
			return nil
		}
	}
	return citizens.ErrNotFound
}

func (f *fakeCitizenRepo) UpdateComplaintStatus(_ context.Context, citizenID, complaintID bson.ObjectID, status models.ComplaintStatus) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.docs {
		if f.docs[i].ID == citizenID {
			for j := range f.docs[i].Complaints {
				if f.docs[i].Complaints[j].ID == complaintID {
					f.docs[i].Complaints[j].Status = status
					f.docs[i].Complaints[j].UpdatedAt = time.Now().UTC()
					cp := f.docs[i].Complaints[j]
					return &cp, nil
				}
			}
			return nil, citizens.ErrComplaintNotFound
		}
	}
	return nil, citizens.ErrNotFound
}

func (f *fakeCitizenRepo) AddImages(_ context.Context, citizenID bson.ObjectID, urls []string) (*models.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.docs {
		if f.docs[i].ID == citizenID {
			for _, u := range urls {
				f.docs[i].Images = append(f.docs[i].Images, models.CitizenImage{URL: u})
			}
			c := f.docs[i]
			return &c, nil
		}
	}
	return nil, citizens.ErrNotFound
}

type fakeAdminRepo struct {
	admin *models.Admin
}

func (f *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	if f.admin != nil && f.admin.Username == username {
		a := *f.admin
		return &a, nil
	}
	return nil, admins.ErrNotFound
}
