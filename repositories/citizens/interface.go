package citizens

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/urbanfix/urbanfix/models"
)

var (
	// ErrNotFound means the citizen document does not exist.
	ErrNotFound = errors.New("citizen not found")
	// ErrDuplicateUsername is returned by Create when the unique username
	// index rejects the insert.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrComplaintNotFound means the parent exists but holds no complaint
	// with the given id.
	ErrComplaintNotFound = errors.New("complaint not found")
)

// Repository is the persistence contract for citizens and their embedded
// complaint list. Complaints are always addressed by (citizenID, complaintID);
// they have no collection of their own.
type Repository interface {
	Create(ctx context.Context, citizen *models.Citizen) error
	FindByUsername(ctx context.Context, username string) (*models.Citizen, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Citizen, error)
	List(ctx context.Context) ([]models.Citizen, error)
	ListByUsername(ctx context.Context, username string) ([]models.Citizen, error)

	// AppendComplaint pushes the complaint onto the citizen's list and returns
	// the updated document.
	AppendComplaint(ctx context.Context, citizenID bson.ObjectID, complaint models.Complaint) (*models.Citizen, error)
	// DeleteComplaint removes the complaint from the parent's list. A missing
	// complaint id is a no-op success; only a missing parent is an error.
	DeleteComplaint(ctx context.Context, citizenID, complaintID bson.ObjectID) error
	// UpdateComplaintStatus mutates the embedded complaint's status in place
	// and returns the updated complaint.
	UpdateComplaintStatus(ctx context.Context, citizenID, complaintID bson.ObjectID, status models.ComplaintStatus) (*models.Complaint, error)
	// AddImages appends uploaded photo URLs to the citizen's image list.
	AddImages(ctx context.Context, citizenID bson.ObjectID, urls []string) (*models.Citizen, error)
}
