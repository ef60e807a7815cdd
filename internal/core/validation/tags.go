package validation

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

var (
	// Spaces are allowed between words but a value needs at least one
	// letter or digit.
	alnumSpacePattern = regexp.MustCompile(`^[a-zA-Z0-9\s]*[a-zA-Z0-9][a-zA-Z0-9\s]*$`)
	alphaSpacePattern = regexp.MustCompile(`^[a-zA-Z\s]*[a-zA-Z][a-zA-Z\s]*$`)
	clockPattern      = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):([0-5][0-9])$`)
	phonePattern      = regexp.MustCompile(`^(\+256|0)[0-9]{9}$`)
	ninPattern        = regexp.MustCompile(`^[0-9]{14}$`)
)

var customTags = map[string]validator.Func{
	"alnumspace": matches(alnumSpacePattern),
	"alphaspace": matches(alphaSpacePattern),
	"hhmm":       matches(clockPattern),
	"ugphone":    matches(phonePattern),
	"nin":        matches(ninPattern),
	"role": func(fl validator.FieldLevel) bool {
		_, err := domain.ParseRole(fl.Field().String())
		return err == nil
	},
	// maxbytes bounds the encoded length; bcrypt ignores input past 72 bytes.
	"maxbytes": func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	},
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}
