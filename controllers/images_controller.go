package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/urbanfix/urbanfix/middleware"
	"github.com/urbanfix/urbanfix/repositories/citizens"
	"github.com/urbanfix/urbanfix/utils"
)

// POST /citizen/:id/images
//
// multipart/form-data with 1-4 "photos" files. Uploaded photo URLs are
// appended to the citizen's image list.
func UploadComplaintPhotos(repo citizens.Repository, store utils.BlobStore, validator *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		citizenID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid citizen id"})
			return
		}

		citizen, err := repo.FindByID(ctx, citizenID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Citizen not found"})
			return
		}
		if !middleware.IsAdmin(c) && citizen.Username != middleware.SessionUsername(c) {
			c.JSON(http.StatusForbidden, gin.H{"message": "cannot upload photos for another citizen"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid multipart form"})
			return
		}
		files := form.File["photos"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no photos attached"})
			return
		}
		for _, fh := range files {
			if _, err := validator.ValidateFile(fh); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
		}

		urls, err := store.UploadComplaintPhotos(ctx, citizen.Username, files)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		updated, err := repo.AddImages(ctx, citizenID, urls)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save photo urls"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Photos uploaded", "urls": urls, "citizen": updated})
	}
}
