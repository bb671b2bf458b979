package model

type LoginRequest struct {
	IDToken string `json:"idToken"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Nickname    string `json:"nickname"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}
