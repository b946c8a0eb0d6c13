package uploads

import "time"

// Upload is the metadata row for a stored file. The file itself lives on
// disk under the configured upload directory with a generated name; the
// original name is kept only as metadata.
type Upload struct {
	ID               int64     `json:"id"`
	FileName         string    `json:"file_name"`
	StoredName       string    `json:"stored_name"`
	Folder           string    `json:"folder"`
	ContentType      string    `json:"content_type"`
	SizeBytes        int64     `json:"size_bytes"`
	LinkedEntityType *string   `json:"linked_entity_type,omitempty"`
	LinkedEntityID   *int64    `json:"linked_entity_id,omitempty"`
	UploadedBy       int64     `json:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at"`
}
