package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"relocation-api/config"
	"relocation-api/models"
)

const maxUploadBytes = 10 << 20 // 10 MB

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// saveClientDocument stores the uploaded file on disk and upserts the
// (client, document_type) row. Re-uploading a type replaces the previous
// file reference.
func saveClientDocument(c *gin.Context, client *models.Client, docType string, uploadedBy int) (*models.ClientDocument, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}
	if file.Size > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds the 10MB limit")
	}

	mimeType := file.Header.Get("Content-Type")
	doc := models.ClientDocument{
		ClientID:         client.ClientID,
		DocumentType:     docType,
		OriginalFilename: filepath.Base(file.Filename),
		MimeType:         mimeType,
		FileSize:         file.Size,
		UploadedBy:       uploadedBy,
	}
	if !doc.IsValidUploadType() {
		return nil, fmt.Errorf("unsupported file type %s", mimeType)
	}

	storedName := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	destDir := filepath.Join(uploadPath(), "clients", strconv.Itoa(client.ClientID))
	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	if err := c.SaveUploadedFile(file, filepath.Join(destDir, storedName)); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	doc.StoredFilename = storedName
	now := time.Now()

	var existing models.ClientDocument
	err = config.DB.Where("client_id = ? AND document_type = ? AND delete_at IS NULL",
		client.ClientID, docType).First(&existing).Error
	switch {
	case err == nil:
		doc.DocumentID = existing.DocumentID
		doc.CreateAt = existing.CreateAt
		doc.UpdateAt = &now
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc.CreateAt = &now
		doc.UpdateAt = &now
	default:
		return nil, fmt.Errorf("check existing document: %w", err)
	}

	if err := config.DB.Save(&doc).Error; err != nil {
		return nil, fmt.Errorf("save document row: %w", err)
	}

	// The download URL embeds the row id, which is only known after insert.
	url := fmt.Sprintf("/api/v1/documents/download/%d", doc.DocumentID)
	if doc.FileURL != url {
		doc.FileURL = url
		if err := config.DB.Model(&models.ClientDocument{}).
			Where("document_id = ?", doc.DocumentID).
			Update("file_url", url).Error; err != nil {
			return nil, fmt.Errorf("save document url: %w", err)
		}
	}

	return &doc, nil
}

// UploadClientDocument stores a document on a client file (admin side).
func UploadClientDocument(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	client, ok := loadClient(c, clientID)
	if !ok {
		return
	}

	docType := strings.TrimSpace(c.PostForm("document_type"))
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "document_type is required"})
		return
	}

	adminID, _ := currentUserID(c)
	doc, err := saveClientDocument(c, client, docType, adminID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "document": doc})
}

// DeleteClientDocument soft-deletes a document of the given type.
func DeleteClientDocument(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	if _, ok := loadClient(c, clientID); !ok {
		return
	}

	docType := strings.TrimSpace(c.Param("type"))
	result := config.DB.Model(&models.ClientDocument{}).
		Where("client_id = ? AND document_type = ? AND delete_at IS NULL", clientID, docType).
		Updates(map[string]interface{}{"delete_at": time.Now(), "update_at": time.Now()})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete document"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document deleted"})
}

// DownloadDocument streams a stored file. Clients may only fetch documents
// on their own file; staff can fetch any.
func DownloadDocument(c *gin.Context) {
	docID, err := strconv.Atoi(c.Param("id"))
	if err != nil || docID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid document id"})
		return
	}

	var doc models.ClientDocument
	if err := config.DB.Where("document_id = ? AND delete_at IS NULL", docID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Document not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch document"})
		}
		return
	}

	roleID, _ := c.Get("roleID")
	if role, ok := roleID.(int); ok && role == models.RoleClient {
		client, ok := clientForUser(c)
		if !ok {
			return
		}
		if client.ClientID != doc.ClientID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Insufficient permissions"})
			return
		}
	}

	path := filepath.Join(uploadPath(), "clients", strconv.Itoa(doc.ClientID), doc.StoredFilename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "File missing from storage"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	c.File(path)
}
