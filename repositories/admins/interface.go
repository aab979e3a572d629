package admins

import (
	"context"
	"errors"

	"github.com/urbanfix/urbanfix/models"
)

var ErrNotFound = errors.New("admin not found")

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}
