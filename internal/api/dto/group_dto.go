package dto

// GroupResponse describes a group.
type GroupResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AddMemberRequest payload for POST /groups/:id/members.
type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

// GroupRolesResponse lists the local roles of a group on an item.
type GroupRolesResponse struct {
	Group  string   `json:"group"`
	Object string   `json:"object"`
	Roles  []string `json:"roles"`
}
