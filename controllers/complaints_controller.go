package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/urbanfix/urbanfix/dto"
	"github.com/urbanfix/urbanfix/middleware"
	"github.com/urbanfix/urbanfix/models"
	"github.com/urbanfix/urbanfix/repositories/citizens"
	"github.com/urbanfix/urbanfix/utils"
)

// POST /citizen/:id/complaints
func SubmitComplaint(repo citizens.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		citizenID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid citizen id"})
			return
		}

		var body dto.CreateComplaintDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		citizen, err := repo.FindByID(ctx, citizenID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Citizen not found"})
			return
		}
		if !middleware.IsAdmin(c) && citizen.Username != middleware.SessionUsername(c) {
			c.JSON(http.StatusForbidden, gin.H{"message": "cannot file complaints for another citizen"})
			return
		}

		now := time.Now().UTC()
		// Status is always pending on creation, whatever the payload says.
		complaint := models.Complaint{
			ID:          bson.NewObjectID(),
			Location:    body.Location,
			Category:    body.Category,
			Description: body.Description,
			Status:      models.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		updated, err := repo.AppendComplaint(ctx, citizenID, complaint)
		if err != nil {
			if errors.Is(err, citizens.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Citizen not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Complaint added", "citizen": updated})
	}
}

// GET /citizen/track
func TrackAll(repo citizens.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		list, err := repo.List(ctx)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "complaint list retrieval failed"})
			return
		}

		if len(list) == 0 {
			// 202 is the empty-signal: a successful query with zero results,
			// distinct from a retrieval failure.
			c.JSON(http.StatusAccepted, gin.H{"message": "Empty list"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Complaint list", "items": list})
	}
}

// GET /citizen/track/:username
func TrackByUsername(repo citizens.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		username := utils.NormalizeUsername(c.Param("username"))
		if !middleware.IsAdmin(c) && username != middleware.SessionUsername(c) {
			c.JSON(http.StatusForbidden, gin.H{"message": "cannot track another citizen's complaints"})
			return
		}

		list, err := repo.ListByUsername(ctx, username)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "complaint list retrieval failed"})
			return
		}

		if len(list) == 0 {
			c.JSON(http.StatusAccepted, gin.H{"message": "Empty list"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Complaint list", "items": list})
	}
}

// DELETE /citizen/complaint/:parentId/:complaintId
func DeleteComplaint(repo citizens.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		parentID, err := bson.ObjectIDFromHex(c.Param("parentId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid citizen id"})
			return
		}
		complaintID, err := bson.ObjectIDFromHex(c.Param("complaintId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid complaint id"})
			return
		}

		parent, err := repo.FindByID(ctx, parentID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Parent not found"})
			return
		}
		if !middleware.IsAdmin(c) && parent.Username != middleware.SessionUsername(c) {
			c.JSON(http.StatusForbidden, gin.H{"message": "cannot delete another citizen's complaint"})
			return
		}

		// Deleting an id that is already gone still succeeds: the delete is
		// idempotent by contract.
		if err := repo.DeleteComplaint(ctx, parentID, complaintID); err != nil {
			if errors.Is(err, citizens.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Parent not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted successfully"})
	}
}

// PATCH /admin/complaint/:parentId/:complaintId/status
func UpdateComplaintStatus(repo citizens.Repository, mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		parentID, err := bson.ObjectIDFromHex(c.Param("parentId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid citizen id"})
			return
		}
		complaintID, err := bson.ObjectIDFromHex(c.Param("complaintId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid complaint id"})
			return
		}

		var body dto.UpdateComplaintStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "status required"})
			return
		}

		status := models.ComplaintStatus(body.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "status must be pending, resolved or rejected"})
			return
		}

		complaint, err := repo.UpdateComplaintStatus(ctx, parentID, complaintID, status)
		if err != nil {
			switch {
			case errors.Is(err, citizens.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Parent not found"})
			case errors.Is(err, citizens.ErrComplaintNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update status"})
			}
			return
		}

		if mailer.Enabled() && status != models.StatusPending {
			go notifyStatusChange(repo, mailer, parentID, *complaint)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Status updated", "complaint": complaint})
	}
}

// notifyStatusChange emails the complaint owner. Best effort: failures are
// logged, never surfaced to the admin.
func notifyStatusChange(repo citizens.Repository, mailer *utils.Mailer, citizenID bson.ObjectID, complaint models.Complaint) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	citizen, err := repo.FindByID(ctx, citizenID)
	if err != nil {
		log.Printf("status notification: citizen lookup failed: %v", err)
		return
	}
	if citizen.Email == "" {
		return
	}
	if err := mailer.SendStatusUpdateEmail(citizen.Email, complaint.Location, complaint.Category, string(complaint.Status)); err != nil {
		log.Printf("status notification: %v", err)
	}
}
