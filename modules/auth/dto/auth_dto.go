package dto

type AuthURLResponse struct {
	URL string `json:"url"`
}

type SessionResponse struct {
	LoggedIn bool `json:"loggedIn"`
}
