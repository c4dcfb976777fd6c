package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	// The pattern needs lookaheads, which the stdlib engine rejects.
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	nricExp  = regexp.MustCompile(`^[STFGM]\d{7}[A-Z]$`)
	phoneExp = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Name, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password, req.ConfirmPassword)
}

type AgentSignupRequest struct {
	SignupRequest

	Phone     string `json:"phone"`
	NRIC      string `json:"nric"`
	AgentCode string `json:"agent_code"`
	UnitName  string `json:"unit_name"`
	TierID    uint   `json:"tier_id"`
}

func (req *AgentSignupRequest) Validate() error {
	if err := req.SignupRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
		validation.Field(&req.NRIC, validation.Required, validation.Match(nricExp)),
		validation.Field(&req.AgentCode, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.UnitName, validation.Length(0, 100)),
		validation.Field(&req.TierID, validation.Required),
	)
}

type UpdateAgentRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	UnitName string `json:"unit_name"`
	TierID   uint   `json:"tier_id"`
	Status   string `json:"status"`
}

func (req *UpdateAgentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Phone, validation.Required, validation.Match(phoneExp)),
		validation.Field(&req.UnitName, validation.Length(0, 100)),
		validation.Field(&req.TierID, validation.Required),
		validation.Field(&req.Status, validation.Required, validation.In("active", "inactive")),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

func validatePassword(password, confirm string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	if password != confirm {
		return errConfirmPasswordMismatch
	}

	return nil
}
