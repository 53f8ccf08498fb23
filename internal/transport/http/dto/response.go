package dto

import "github.com/hartantowib/account-service/internal/domain"

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// BiodataResponse is the profile record as returned by the API.
type BiodataResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	Avatar      string `json:"avatar,omitempty"`
}

func ToBiodataResponse(bio *domain.UserBiodata) *BiodataResponse {
	return &BiodataResponse{
		ID:          bio.ID,
		UserID:      bio.UserID,
		FirstName:   bio.FirstName,
		LastName:    bio.LastName,
		PhoneNumber: bio.PhoneNumber,
		Street:      bio.Street,
		City:        bio.City,
		Province:    bio.Province,
		Country:     bio.Country,
		Avatar:      bio.Avatar,
	}
}
