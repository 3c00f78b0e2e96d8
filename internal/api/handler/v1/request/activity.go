package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateActivityRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date" format:"DD/MM/YYYY"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (req *CreateActivityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
	)
}
