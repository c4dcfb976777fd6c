package response

import (
	"github.com/paul-techiesapp/martin-aia/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
