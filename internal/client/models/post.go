package models

import "time"

// Post is a shared setup photo with its server-computed aggregate rating.
type Post struct {
	ID        int64     `json:"id"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"imageUrl"`
	Rating    float64   `json:"rating"`
	UserEmail string    `json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostInput is the payload for creating or updating a post. Updates always
// carry the current image URL unchanged; only the caption is editable.
type PostInput struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"imageUrl"`
}

// PostPatch is a partial post update applied to a locally cached post.
// Nil fields are left untouched.
type PostPatch struct {
	Caption *string
	Rating  *float64
}

// Apply merges the non-nil fields of the patch into p.
func (patch PostPatch) Apply(p *Post) {
	if patch.Caption != nil {
		p.Caption = *patch.Caption
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
}

// Rating is a single 0–10 score submitted against a post. The client only
// ever sends these; the aggregate on Post is recomputed by the server.
type Rating struct {
	ID     int64 `json:"id,omitempty"`
	PostID int64 `json:"postId"`
	Rating int   `json:"rating"`
}
