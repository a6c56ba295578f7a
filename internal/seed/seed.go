package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/admissions/internal/app/models"
	appRepos "github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

type demoApplicant struct {
	fullName string
	email    string
	phone    string
	dob      string
	course   int // index into demoCourses
	status   appModels.ApplicantStatus
}

func strPtr(s string) *string { return &s }

var demoCourses = []appModels.Course{
	{Name: "MCA - Computer Applications", DurationMonths: 24, SeatsTotal: 60, Description: strPtr("Master of Computer Applications")},
	{Name: "MSc - Data Science", DurationMonths: 24, SeatsTotal: 30, Description: strPtr("MSc in Data Science")},
}

// None of the demo applicants is admitted, so every seat counter starts at zero.
var demoApplicants = []demoApplicant{
	{fullName: "Alice Kumar", email: "alice@example.com", phone: "9998887776", dob: "1999-05-23", course: 0, status: appModels.StatusApplied},
	{fullName: "Bob Roy", email: "bob@example.com", phone: "9990001112", dob: "1998-11-11", course: 1, status: appModels.StatusShortlisted},
}

// CreateDemoData inserts the demo courses and applicants when the course
// table is empty. It reports whether anything was written. All rows are
// written in one transaction.
func CreateDemoData(ctx context.Context, store appRepos.Store, lgr zerolog.Logger) (bool, error) {
	lgr.Info().Msg("Checking/Creating demo data (Courses/Applicants)...")

	seeded := false
	err := store.WithinTransaction(ctx, func(ctx context.Context, repos appRepos.Repositories) error {
		count, err := repos.Courses().Count(ctx)
		if err != nil {
			return fmt.Errorf("error counting courses: %w", err)
		}
		if count > 0 {
			lgr.Info().Int64("courses", count).Msg("Courses already present, skipping demo data")
			return nil
		}

		courseIDs := make([]int64, len(demoCourses))
		for i := range demoCourses {
			course := demoCourses[i]
			if err := repos.Courses().Create(ctx, &course); err != nil {
				return fmt.Errorf("error creating course %q: %w", course.Name, err)
			}
			courseIDs[i] = course.ID
		}

		for _, d := range demoApplicants {
			applicant := &appModels.Applicant{
				FullName:        d.fullName,
				Email:           d.email,
				Phone:           strPtr(d.phone),
				DOB:             strPtr(d.dob),
				ApplicationDate: helpers.NowUTC(),
				CourseID:        courseIDs[d.course],
				Status:          d.status,
			}
			if err := repos.Applicants().Create(ctx, applicant); err != nil {
				return fmt.Errorf("error creating applicant %s: %w", d.email, err)
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create demo data")
		return false, err
	}

	if seeded {
		lgr.Info().
			Int("courses", len(demoCourses)).
			Int("applicants", len(demoApplicants)).
			Msg("Demo data created")
	}
	return seeded, nil
}
