package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type DecideRequest struct {
	State  string `json:"state"`
	Reason string `json:"reason,omitempty"`
}

func (req *DecideRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.State, validation.Required, validation.In("accepted", "rejected")),
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}
