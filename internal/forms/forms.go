// Package forms declares the validated shapes of the four HTML forms and
// decodes them from POST bodies. A submission either yields a fully valid
// form or a per-field error map; there is no partial acceptance.
package forms

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-shop/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the submitted field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Errors maps field names to user-facing validation messages.
type Errors map[string]string

type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type AddProductForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Price       string `form:"price" validate:"required,numeric"`
	ImageURL    string `form:"image_url" validate:"required,url"`
}

type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required"`
	Number  string `form:"number" validate:"required"`
	Message string `form:"message" validate:"required"`
}

func ParseRegister(values url.Values) RegisterForm {
	return RegisterForm{
		Name:     strings.TrimSpace(values.Get("name")),
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
}

func ParseLogin(values url.Values) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
}

func ParseAddProduct(values url.Values) AddProductForm {
	return AddProductForm{
		Name:        strings.TrimSpace(values.Get("name")),
		Description: strings.TrimSpace(values.Get("description")),
		Price:       strings.TrimSpace(values.Get("price")),
		ImageURL:    strings.TrimSpace(values.Get("image_url")),
	}
}

func ParseContact(values url.Values) ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(values.Get("name")),
		Email:   strings.TrimSpace(values.Get("email")),
		Number:  strings.TrimSpace(values.Get("number")),
		Message: strings.TrimSpace(values.Get("message")),
	}
}

func (f RegisterForm) Validate() Errors   { return check(f) }
func (f LoginForm) Validate() Errors      { return check(f) }
func (f AddProductForm) Validate() Errors { return check(f) }
func (f ContactForm) Validate() Errors    { return check(f) }

// ToRequest converts a validated form into a creation request. Price is
// accepted as free text and stored as a float; Validate must have passed.
func (f AddProductForm) ToRequest() models.NewProductRequest {
	price, _ := strconv.ParseFloat(f.Price, 64)
	return models.NewProductRequest{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		ImageURL:    f.ImageURL,
	}
}

func (f ContactForm) ToMessage() models.ContactMessage {
	return models.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Number:  f.Number,
		Message: f.Message,
	}
}

func check(form interface{}) Errors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"form": "Invalid submission."}
	}

	errs := make(Errors, len(verrs))
	for _, fe := range verrs {
		errs[fe.Field()] = messageFor(fe.Tag())
	}
	return errs
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "url":
		return "Must be a well-formed URL."
	case "numeric":
		return "Must be a number."
	default:
		return "Invalid value."
	}
}
