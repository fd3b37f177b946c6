package advisor

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yanqian/safeland/pkg/errors"
)

var validate = validator.New()

// check validates req, mapping any failure to an invalid_input error with message.
func check(req any, message string) error {
	if err := validate.Struct(req); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, message, err)
	}
	return nil
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
