package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required"`
	Surname         string `json:"surname" validate:"required"`
	PhoneNumber     string `json:"phoneNumber"`
}

type Confirmation struct {
	UserID string `json:"userId" validate:"required"`
	Token  string `json:"token" validate:"required"`
}

// LoginResult is what the backend hands back on a successful login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ID          string `json:"id"`
	Email       string `json:"email"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var result LoginResult
	creds.Email = strings.TrimSpace(creds.Email)
	if err := checkInput(creds); err != nil {
		return result, err
	}
	if err := c.send(ctx, fhttp.MethodPost, authPath+"/login", creds, &result); err != nil {
		return result, err
	}
	if strings.TrimSpace(result.AccessToken) == "" {
		return result, fmt.Errorf("login: response carried no access token")
	}
	return result, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) error {
	reg.Email = strings.TrimSpace(reg.Email)
	if err := checkInput(reg); err != nil {
		return err
	}
	return c.send(ctx, fhttp.MethodPost, authPath+"/register", reg, nil)
}

func (c *Client) ConfirmEmail(ctx context.Context, confirm Confirmation) error {
	if err := checkInput(confirm); err != nil {
		return err
	}
	return c.send(ctx, fhttp.MethodPost, authPath+"/confirm-email", confirm, nil)
}

func checkInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
