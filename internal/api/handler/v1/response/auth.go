package response

type LoginResponse struct {
	Token string `json:"token"`
}

type MeResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}
