package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserPublic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// LoginResult carries the signed token; ExpiresIn is its lifetime in seconds.
type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expires_in"`
	User      UserPublic `json:"user"`
}
