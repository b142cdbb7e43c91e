package models

import "time"

// Common document type keys. The column accepts free text so staff can ask
// for documents outside this list.
const (
	DocumentTypePassport    = "passport"
	DocumentTypeDiploma     = "diploma"
	DocumentTypeTranscript  = "transcript"
	DocumentTypeCV          = "cv"
	DocumentTypeCoverLetter = "cover_letter"
	DocumentTypePhoto       = "photo"
	DocumentTypeReceipt     = "receipt"
)

// ReceiptDocumentType keys a receipt upload to the ledger row it evidences.
// Each submitted receipt gets its own document row instead of replacing the
// previous one, so staff reviewing an older pending payment still see the
// receipt that came with it.
func ReceiptDocumentType(reference string) string {
	return DocumentTypeReceipt + "-" + reference
}

// ClientDocument is one uploaded file on a client's case, keyed by document
// type. Re-uploading the same type replaces the previous row.
type ClientDocument struct {
	DocumentID       int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	ClientID         int        `gorm:"column:client_id" json:"client_id"`
	DocumentType     string     `gorm:"column:document_type" json:"document_type"`
	OriginalFilename string     `gorm:"column:original_filename" json:"original_filename"`
	StoredFilename   string     `gorm:"column:stored_filename" json:"-"`
	FileURL          string     `gorm:"column:file_url" json:"file_url"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	UploadedBy       int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (ClientDocument) TableName() string {
	return "client_documents"
}

// DocumentInfo is the per-type entry of the document map attached to client
// API responses.
type DocumentInfo struct {
	URL    string `json:"url"`
	FileID int    `json:"file_id"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Type   string `json:"type"`
}

// DocumentMap projects document rows into a map keyed by document type.
func DocumentMap(docs []ClientDocument) map[string]DocumentInfo {
	m := make(map[string]DocumentInfo, len(docs))
	for _, doc := range docs {
		m[doc.DocumentType] = DocumentInfo{
			URL:    doc.FileURL,
			FileID: doc.DocumentID,
			Name:   doc.OriginalFilename,
			Size:   doc.FileSize,
			Type:   doc.MimeType,
		}
	}
	return m
}

// IsValidUploadType reports whether the mime type is accepted for client
// document uploads.
func (d *ClientDocument) IsValidUploadType() bool {
	validTypes := []string{
		"application/pdf",
		"image/jpeg",
		"image/jpg",
		"image/png",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	for _, validType := range validTypes {
		if d.MimeType == validType {
			return true
		}
	}
	return false
}

// FileSizeInMB returns the upload size in megabytes.
func (d *ClientDocument) FileSizeInMB() float64 {
	return float64(d.FileSize) / (1024 * 1024)
}
