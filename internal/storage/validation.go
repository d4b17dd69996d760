package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
)

// claimValidator checks ClaimInput struct tags. Constructed once per process;
// injected rather than a package-level mutable global.
type claimValidator struct {
	validate *validator.Validate
}

func newClaimValidator() *claimValidator {
	return &claimValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateInput checks a claim input before any persistence occurs.
func (v *claimValidator) ValidateInput(input model.ClaimInput) error {
	if err := v.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("%w: invalid fields %s", common.ErrValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if _, err := model.ParseIncidentDate(input.IncidentDate); err != nil {
		return fmt.Errorf("%w: incident_date must be YYYY-MM-DD", common.ErrValidation)
	}
	return nil
}

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateStatusUpdate checks a status update before it is applied.
func validateStatusUpdate(update model.ClaimStatus) error {
	if !update.Valid() {
		return fmt.Errorf("%w: unknown status %q", common.ErrValidation, update)
	}
	return nil
}
