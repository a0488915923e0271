package dto

import "time"

// CreateContentRequest payload for POST /content.
type CreateContentRequest struct {
	PortalType  string            `json:"portal_type"`
	ID          string            `json:"id"`
	Container   string            `json:"container"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Fields      map[string]string `json:"fields"`
}

// UpdateContentRequest payload for PATCH /content/:uid. Omitted attributes
// are left untouched.
type UpdateContentRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Fields      map[string]string `json:"fields"`
}

// ContentResponse is the public representation of a content item.
type ContentResponse struct {
	UID            string            `json:"uid"`
	ID             string            `json:"id"`
	Path           string            `json:"path"`
	URL            string            `json:"url"`
	PortalType     string            `json:"portal_type"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	ExcludeFromNav bool              `json:"exclude_from_nav"`
	Fields         map[string]string `json:"fields,omitempty"`
	Creator        string            `json:"creator,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ModifiedAt     time.Time         `json:"modified_at"`
}

// BrainResponse is one catalog search result.
type BrainResponse struct {
	UID        string `json:"uid"`
	PortalType string `json:"portal_type"`
	Path       string `json:"path"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// TypeResponse describes a content type.
type TypeResponse struct {
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	AddRoles  []string `json:"add_roles"`
	Behaviors []string `json:"behaviors"`
	Fields    []string `json:"fields"`
}
