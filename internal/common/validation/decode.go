package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"adoption-workers/internal/common/errors"
)

// Validatable is implemented by worker inputs that check their own fields.
type Validatable interface {
	Validate() error
}

// DecodeJob checks raw job variables against the registered schema, decodes
// them into out and runs out.Validate. Every failure is INPUT_VALIDATION_FAILED.
// A nil validator skips the schema step.
func DecodeJob(v *SchemaValidator, taskType, variables string, out Validatable) error {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	if v != nil {
		result, err := v.ValidateJSON(taskType, variables)
		if err != nil {
			return errors.NewInputValidationError(err.Error())
		}
		if !result.Valid {
			return errors.NewInputValidationError(strings.Join(result.GetErrorMessages(), "; ")).
				WithMetadata("validationErrors", result.Errors)
		}
	}

	if err := json.Unmarshal([]byte(variables), out); err != nil {
		return errors.NewInputValidationError(fmt.Sprintf("parse variables: %v", err))
	}
	if err := out.Validate(); err != nil {
		return errors.NewInputValidationError(err.Error())
	}
	return nil
}
