package evaluation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/alexisbeaulieu97/rankview/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func resultValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// DecodeResultSet parses a success body. The body must be a JSON array and
// every element must satisfy the result contract; anything else is a
// DecodeError.
func DecodeResultSet(body []byte) (ResultSet, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperrors.NewDecodeError("result set", errors.New("expected a JSON array"))
	}

	var set ResultSet
	if err := json.Unmarshal(trimmed, &set); err != nil {
		return nil, apperrors.NewDecodeError("result set", err)
	}

	v := resultValidator()
	for i := range set {
		if err := v.Struct(set[i]); err != nil {
			return nil, apperrors.NewDecodeError("result set", fmt.Errorf("result %d: %w", i, err))
		}
	}
	if set == nil {
		set = ResultSet{}
	}
	return set, nil
}

type errorBody struct {
	Error *string `json:"error"`
}

// DecodeServiceError turns a non-success response into an error. A JSON
// object yields a ServiceError carrying its "error" field, or the generic
// message when that field is missing. A body that is not a JSON object is a
// DecodeError.
func DecodeServiceError(status int, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return apperrors.NewDecodeError("error response", fmt.Errorf("status %d: expected a JSON object", status))
	}

	var payload errorBody
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return apperrors.NewDecodeError("error response", fmt.Errorf("status %d: %w", status, err))
	}

	message := ""
	if payload.Error != nil {
		message = *payload.Error
	}
	return apperrors.NewServiceError(status, message)
}
