package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var pinCodeExp = regexp.MustCompile(`^\d{6}$`)

type GeneratePinCodesRequest struct {
	Count int `json:"count"`
}

func (req *GeneratePinCodesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Count, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}

type AttendanceRequest struct {
	PinCode string `json:"pin_code"`
	NRIC    string `json:"nric"`
}

func (req *AttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PinCode, validation.Required, validation.Match(pinCodeExp)),
		validation.Field(&req.NRIC, validation.Required, validation.Match(nricExp)),
	)
}
