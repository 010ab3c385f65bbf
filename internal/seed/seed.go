package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/my2a/courseselect/internal/app/models"
	appRepos "github.com/my2a/courseselect/internal/app/repositories"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// DepartmentCreator is the part of the department repository the seed needs
type DepartmentCreator interface {
	Create(ctx context.Context, department *appModels.Department) error
}

// CalendarInitializer is the part of the calendar repository the seed needs
type CalendarInitializer interface {
	EnsureRow(ctx context.Context) error
}

// DefaultDepartments are created on startup when missing
func DefaultDepartments() []*appModels.Department {
	return []*appModels.Department{
		{
			Name:       "Civil and Construction Engineering",
			Code:       "GCC",
			EndComment: "Your choices will be reviewed by the department before the start of the year.",
		},
		{
			Name:       "Industrial and Mechanical Engineering",
			Code:       "IMI",
			EndComment: "Your choices will be reviewed by the department before the start of the year.",
		},
	}
}

// CreateDefaultData creates the default departments and the calendar row if they don't exist
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	return Run(ctx, appRepos.NewDepartmentRepository(dbPool), appRepos.NewCalendarRepository(dbPool), lgr)
}

// Run seeds through the given repositories, collecting errors without stopping
func Run(ctx context.Context, departments DepartmentCreator, cal CalendarInitializer, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Departments/Calendar)...")
	var finalErr error

	for _, dept := range DefaultDepartments() {
		err := departments.Create(ctx, dept)
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			lgr.Debug().Str("code", dept.Code).Msg("Department already exists, skipping creation")
		case err != nil:
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating department")
			finalErr = errors.Join(finalErr, err)
		default:
			lgr.Info().Str("code", dept.Code).Int64("id", dept.ID).Msg("Department created")
		}
	}

	if err := cal.EnsureRow(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error creating academic calendar row")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
