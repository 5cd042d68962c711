package dto

type RSVPRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Seats int    `json:"seats" binding:"required,gt=0"`
}

type CancelRequest struct {
	Email string `json:"email" binding:"required,email"`
}
