package request

import validation "github.com/go-ozzo/ozzo-validation"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Password, validation.Required),
	)
}
