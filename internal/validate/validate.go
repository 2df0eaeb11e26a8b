package validate

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"carshop/internal/domain"
)

var (
	reEmail       = regexp.MustCompile(`\S+@\S+\.\S+`)
	reCheckoutTel = regexp.MustCompile(`^[0-9]{10,11}$`)
	reProfileTel  = regexp.MustCompile(`^(0|\+84)(3|5|7|8|9)[0-9]{8}$`)
	reID          = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSpace       = regexp.MustCompile(`\s`)
)

// Errors maps a form field to the message shown next to it.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when nothing failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		e[field] = msg
	}
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Phone accepts the 10 or 11 plain digits the checkout form asks for.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCheckoutTel.MatchString(s)
}

// ID validates a simple resource identifier (car/category/brand/user ids, uuids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Q trims a search query and clamps it to 100 characters.
func Q(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 100 {
		s = string([]rune(s)[:100])
	}
	return s
}

// Password enforces the length window bcrypt can actually hash.
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 72
}

// Car checks a full car record the way the admin form does.
func Car(c domain.Car, now time.Time) Errors {
	e := Errors{}
	e.required("name", c.Name, "name is required")
	e.required("brand", c.Brand, "brand is required")
	e.required("model", c.Model, "model is required")
	if c.Year < 1900 || c.Year > now.Year()+1 {
		e["year"] = "year is out of range"
	}
	if !c.Price.IsPositive() {
		e["price"] = "price must be greater than 0"
	}
	e.required("category", c.Category, "category is required")
	if !c.Fuel.Valid() {
		e["fuel"] = "fuel must be gasoline, diesel, hybrid or electric"
	}
	if !c.Transmission.Valid() {
		e["transmission"] = "transmission must be manual or automatic"
	}
	if c.Mileage < 0 {
		e["mileage"] = "mileage cannot be negative"
	}
	e.required("color", c.Color, "color is required")
	e.required("description", c.Description, "description is required")
	if len(c.Images) == 0 {
		e["images"] = "at least one image is required"
	}
	if c.Status != "" && !c.Status.Valid() {
		e["status"] = "status must be available, sold or reserved"
	}
	return e
}

// Checkout checks the contact block of an order.
func Checkout(name, email, phone, address string) Errors {
	e := Errors{}
	e.required("name", name, "name is required")
	if strings.TrimSpace(email) == "" {
		e["email"] = "email is required"
	} else if _, ok := Email(email); !ok {
		e["email"] = "email is not valid"
	}
	if strings.TrimSpace(phone) == "" {
		e["phone"] = "phone is required"
	} else if _, ok := Phone(phone); !ok {
		e["phone"] = "phone must have 10 or 11 digits"
	}
	e.required("address", address, "delivery address is required")
	return e
}

// Profile checks the editable profile fields that were sent.
func Profile(p domain.ProfilePatch) Errors {
	e := Errors{}
	if p.FullName != nil {
		e.required("fullName", *p.FullName, "full name is required")
	}
	if p.Phone != nil {
		tel := reSpace.ReplaceAllString(*p.Phone, "")
		if tel == "" {
			e["phone"] = "phone is required"
		} else if !reProfileTel.MatchString(tel) {
			e["phone"] = "phone is not valid (e.g. 0901234567 or +84901234567)"
		}
	}
	if p.Address != nil {
		e.required("address", *p.Address, "address is required")
	}
	return e
}

// NewUser checks an account created from the admin surface.
func NewUser(email, password, fullName string, role domain.Role) Errors {
	e := Errors{}
	if _, ok := Email(email); !ok {
		e["email"] = "email is not valid"
	}
	if !Password(password) {
		e["password"] = "password must be 8-72 characters"
	}
	e.required("fullName", fullName, "full name is required")
	if role != "" && !role.Valid() {
		e["role"] = "role must be user or admin"
	}
	return e
}
