package models

// WishlistItem represents a course saved to a user's wishlist.
// Rows are unique per (UserID, CourseID); the toggle operation relies on that.
type WishlistItem struct {
	ID       int `json:"id"`
	UserID   int `json:"userId"`
	CourseID int `json:"courseId"`
}

// ToggleWishlistResponse reports whether the toggle added or removed the course
type ToggleWishlistResponse struct {
	Added bool `json:"added"`
}
