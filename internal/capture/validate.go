package capture

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AngelCh415/leadcalc/internal/models"
)

var (
	mobileRe  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	websiteRe = regexp.MustCompile(`^(https?://)?(www\.)?[a-z0-9-]+(\.[a-z0-9-]+)+/?$`)
)

// Business leads only; these domains are rejected at the gate.
var consumerDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"yahoo.co.in":    {},
	"ymail.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"live.com":       {},
	"rediffmail.com": {},
	"icloud.com":     {},
	"aol.com":        {},
	"protonmail.com": {},
}

// Messages shown next to the form field, keyed by the failing tag.
var tagMessages = map[string]string{
	"required":   "required",
	"max":        "too long",
	"in_mobile":  "must be a 10-digit Indian mobile number",
	"email":      "must be a valid email address",
	"work_email": "please use your work email",
	"website":    "must be a website domain, e.g. example.com",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	custom := map[string]validator.Func{
		"in_mobile":  func(fl validator.FieldLevel) bool { return mobileRe.MatchString(fl.Field().String()) },
		"website":    func(fl validator.FieldLevel) bool { return websiteRe.MatchString(fl.Field().String()) },
		"work_email": func(fl validator.FieldLevel) bool { return !isConsumerDomain(fl.Field().String()) },
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// ValidationError maps form fields to messages.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "invalid contact: " + strings.Join(parts, "; ")
}

func fromFieldErrors(errs validator.ValidationErrors) ValidationError {
	out := make(ValidationError, len(errs))
	for _, fe := range errs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out[fe.Field()] = msg
	}
	return out
}

// Normalize trims every field, lowercases email and website, and reduces the
// phone to its ten national digits when it carries a +91, 91 or 0 prefix.
func Normalize(c models.Contact) models.Contact {
	return models.Contact{
		Name:         strings.Join(strings.Fields(c.Name), " "),
		Phone:        normalizePhone(c.Phone),
		Email:        strings.ToLower(strings.TrimSpace(c.Email)),
		Organization: strings.ToLower(strings.TrimSpace(c.Organization)),
	}
}

func normalizePhone(p string) string {
	p = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(p))
	p = strings.TrimPrefix(p, "+")
	switch {
	case len(p) == 12 && strings.HasPrefix(p, "91"):
		p = p[2:]
	case len(p) == 11 && strings.HasPrefix(p, "0"):
		p = p[1:]
	}
	return p
}

// Validate checks an already normalised contact against the tags on
// models.Contact. Field failures come back as a ValidationError.
func Validate(c models.Contact) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fe validator.ValidationErrors
	if errors.As(err, &fe) {
		return fromFieldErrors(fe)
	}
	return err
}

func isConsumerDomain(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	_, ok := consumerDomains[email[at+1:]]
	return ok
}
