package dto

import "postboard/app/models"

// PostRequest carries post content. ID is only read by the
// update-through-user call, where it names the post to change.
type PostRequest struct {
	ID      *int64  `json:"id,omitempty" validate:"omitempty,gt=0"`
	Content *string `json:"content" validate:"required,size=0-512"`
}

func (r *PostRequest) Validate() error {
	return models.ValidateStruct(r)
}

// PostResponse is the wire form of a post. Comments are never embedded.
type PostResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	UserID  int64  `json:"userId"`
}

func FromPost(p *models.Post) PostResponse {
	return PostResponse{ID: p.ID, Content: p.Content, UserID: p.UserID}
}

func FromPosts(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, FromPost(&posts[i]))
	}
	return out
}
