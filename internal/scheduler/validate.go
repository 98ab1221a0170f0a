package scheduler

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
	appErrors "github.com/ruthvika-29-11/AI-TimeTable/pkg/errors"
)

// validateEntities runs struct-tag validation over every faculty, classroom
// and course supplied to a Scheduler, catching malformed input (missing IDs,
// negative capacities/hours) before the eligibility filter or solver ever
// see it.
func validateEntities(validate *validator.Validate, faculty []domain.Faculty, classrooms []domain.Classroom, courses []domain.Course) error {
	for _, f := range faculty {
		if err := validate.Struct(f); err != nil {
			return appErrors.Wrap(err, appErrors.KindInputMalformed, "INPUT_MALFORMED", fmt.Sprintf("faculty %q failed validation", f.ID))
		}
	}
	for _, c := range classrooms {
		if err := validate.Struct(c); err != nil {
			return appErrors.Wrap(err, appErrors.KindInputMalformed, "INPUT_MALFORMED", fmt.Sprintf("classroom %q failed validation", c.ID))
		}
	}
	for _, c := range courses {
		if err := validate.Struct(c); err != nil {
			return appErrors.Wrap(err, appErrors.KindInputMalformed, "INPUT_MALFORMED", fmt.Sprintf("course %q failed validation", c.ID))
		}
	}
	return nil
}
