// Package storetest holds behaviour checks shared by every repositories.Store
// backend. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

// Factory returns a migrated store with audit infrastructure in place and
// no rows. It registers its own cleanup.
type Factory func(t *testing.T) repositories.Store

// Run executes the shared store checks, each against a fresh store.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store repositories.Store)
	}{
		{"course create and read", testCourseCreateAndRead},
		{"course name unique", testCourseNameUnique},
		{"course list order", testCourseListOrder},
		{"applicant create and read", testApplicantCreateAndRead},
		{"applicant email unique", testApplicantEmailUnique},
		{"applicant unknown course", testApplicantUnknownCourse},
		{"applicant list newest first", testApplicantListNewestFirst},
		{"update status", testUpdateStatus},
		{"delete applicant writes audit copy", testDeleteApplicantAudit},
		{"delete course cascades with audit", testDeleteCourseCascade},
		{"audit setup is idempotent", testAuditIdempotent},
		{"transaction rollback", testTransactionRollback},
		{"reports", testReports},
		{"not found", testNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func strPtr(s string) *string { return &s }

// NewCourse inserts a course with the given capacity.
func NewCourse(t *testing.T, store repositories.Store, name string, seatsTotal, seatsTaken int) *models.Course {
	t.Helper()
	course := &models.Course{
		Name:           name,
		DurationMonths: 12,
		SeatsTotal:     seatsTotal,
		SeatsTaken:     seatsTaken,
		Description:    strPtr(name + " description"),
	}
	require.NoError(t, store.Courses().Create(context.Background(), course))
	require.NotZero(t, course.ID)
	return course
}

// NewApplicant inserts an applicant of courseID in the given status.
func NewApplicant(t *testing.T, store repositories.Store, email string, courseID int64, status models.ApplicantStatus) *models.Applicant {
	t.Helper()
	applicant := &models.Applicant{
		FullName:        "Applicant " + email,
		Email:           email,
		Phone:           strPtr("9998887776"),
		DOB:             strPtr("1999-05-23"),
		ApplicationDate: helpers.NowUTC(),
		CourseID:        courseID,
		Status:          status,
	}
	require.NoError(t, store.Applicants().Create(context.Background(), applicant))
	require.NotZero(t, applicant.ID)
	return applicant
}

func testCourseCreateAndRead(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	created := NewCourse(t, store, "MCA - Computer Applications", 60, 0)

	got, err := store.Courses().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.SeatsTotal = 10
	got.Description = nil
	require.NoError(t, store.Courses().Update(ctx, got))
	require.NoError(t, store.Courses().UpdateSeatsTaken(ctx, got.ID, 4))

	updated, err := store.Courses().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.SeatsTotal)
	assert.Equal(t, 4, updated.SeatsTaken)
	assert.Nil(t, updated.Description)

	count, err := store.Courses().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func testCourseNameUnique(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	NewCourse(t, store, "MSc - Data Science", 30, 0)
	other := NewCourse(t, store, "MBA", 30, 0)

	err := store.Courses().Create(ctx, &models.Course{Name: "MSc - Data Science", DurationMonths: 12, SeatsTotal: 5})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	other.Name = "MSc - Data Science"
	assert.ErrorIs(t, store.Courses().Update(ctx, other), apperrors.ErrCourseAlreadyExists)
}

func testCourseListOrder(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	b := NewCourse(t, store, "Beta", 1, 0)
	a := NewCourse(t, store, "Alpha", 1, 0)

	byID, err := store.Courses().List(ctx, repositories.CourseOrderByID)
	require.NoError(t, err)
	require.Len(t, byID, 2)
	assert.Equal(t, b.ID, byID[0].ID)

	byName, err := store.Courses().List(ctx, repositories.CourseOrderByName)
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, a.ID, byName[0].ID)
}

func testApplicantCreateAndRead(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	course := NewCourse(t, store, "MCA", 2, 0)
	created := NewApplicant(t, store, "alice@example.com", course.ID, models.StatusApplied)

	got, err := store.Applicants().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "MCA", got.CourseName)
	assert.Equal(t, models.StatusApplied, got.Status)
	assert.Equal(t, "1999-05-23", helpers.StringValue(got.DOB))
	assert.WithinDuration(t, created.ApplicationDate, got.ApplicationDate, time.Second)

	locked, err := store.Applicants().GetByIDForUpdate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, locked.CourseID)
	assert.Empty(t, locked.CourseName)

	exists, err := store.Applicants().EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.Applicants().EmailExists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func testApplicantEmailUnique(t *testing.T, store repositories.Store) {
	course := NewCourse(t, store, "MCA", 2, 0)
	NewApplicant(t, store, "bob@example.com", course.ID, models.StatusApplied)

	err := store.Applicants().Create(context.Background(), &models.Applicant{
		FullName:        "Other Bob",
		Email:           "bob@example.com",
		ApplicationDate: helpers.NowUTC(),
		CourseID:        course.ID,
		Status:          models.StatusApplied,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func testApplicantUnknownCourse(t *testing.T, store repositories.Store) {
	err := store.Applicants().Create(context.Background(), &models.Applicant{
		FullName:        "Lost",
		Email:           "lost@example.com",
		ApplicationDate: helpers.NowUTC(),
		CourseID:        987654,
		Status:          models.StatusApplied,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func testApplicantListNewestFirst(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	course := NewCourse(t, store, "MCA", 5, 0)
	older := &models.Applicant{
		FullName:        "Older",
		Email:           "older@example.com",
		ApplicationDate: helpers.NowUTC().Add(-time.Hour),
		CourseID:        course.ID,
		Status:          models.StatusApplied,
	}
	require.NoError(t, store.Applicants().Create(ctx, older))
	newer := NewApplicant(t, store, "newer@example.com", course.ID, models.StatusApplied)

	list, err := store.Applicants().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, "MCA", list[1].CourseName)

	count, err := store.Applicants().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func testUpdateStatus(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	course := NewCourse(t, store, "MCA", 2, 0)
	applicant := NewApplicant(t, store, "carol@example.com", course.ID, models.StatusApplied)

	require.NoError(t, store.Applicants().UpdateStatus(ctx, applicant.ID, models.StatusShortlisted, strPtr("good interview")))
	got, err := store.Applicants().GetByID(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, got.Status)
	assert.Equal(t, "good interview", helpers.StringValue(got.Remarks))

	require.NoError(t, store.Applicants().UpdateStatus(ctx, applicant.ID, models.StatusRejected, nil))
	got, err = store.Applicants().GetByID(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Nil(t, got.Remarks)

	err = store.Applicants().UpdateStatus(ctx, applicant.ID, models.ApplicantStatus("Waitlisted"), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func testDeleteApplicantAudit(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	course := NewCourse(t, store, "MCA", 2, 1)
	applicant := NewApplicant(t, store, "dave@example.com", course.ID, models.StatusAdmitted)
	require.NoError(t, store.Applicants().UpdateStatus(ctx, applicant.ID, models.StatusAdmitted, strPtr("top score")))

	require.NoError(t, store.Applicants().Delete(ctx, applicant.ID))
	_, err := store.Applicants().GetByID(ctx, applicant.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicantNotFound)

	deleted, err := store.Audit().ListDeletedApplicants(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	snapshot := deleted[0]
	assert.Equal(t, applicant.ID, snapshot.ApplicantID)
	assert.Equal(t, applicant.FullName, snapshot.FullName)
	assert.Equal(t, applicant.Email, snapshot.Email)
	assert.Equal(t, applicant.Phone, snapshot.Phone)
	assert.Equal(t, applicant.DOB, snapshot.DOB)
	assert.Equal(t, course.ID, snapshot.CourseID)
	assert.Equal(t, string(models.StatusAdmitted), snapshot.Status)
	assert.Equal(t, "top score", helpers.StringValue(snapshot.Remarks))
	require.NotNil(t, snapshot.ApplicationDate)
	assert.WithinDuration(t, applicant.ApplicationDate, *snapshot.ApplicationDate, time.Second)
	assert.NotZero(t, snapshot.BackupID)
	assert.False(t, snapshot.DeletedAt.IsZero())

	assert.ErrorIs(t, store.Applicants().Delete(ctx, applicant.ID), apperrors.ErrApplicantNotFound)
}

func testDeleteCourseCascade(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	course := NewCourse(t, store, "MSc", 3, 1)
	keep := NewCourse(t, store, "MBA", 3, 0)
	first := NewApplicant(t, store, "e1@example.com", course.ID, models.StatusAdmitted)
	second := NewApplicant(t, store, "e2@example.com", course.ID, models.StatusApplied)
	NewApplicant(t, store, "e3@example.com", keep.ID, models.StatusApplied)

	locked, err := store.Applicants().LockByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{first.ID, second.ID}, locked)

	require.NoError(t, store.Courses().Delete(ctx, course.ID))

	remaining, err := store.Applicants().List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].CourseID)

	deletedApplicants, err := store.Audit().ListDeletedApplicants(ctx)
	require.NoError(t, err)
	ids := []int64{}
	for _, d := range deletedApplicants {
		ids = append(ids, d.ApplicantID)
	}
	assert.ElementsMatch(t, []int64{first.ID, second.ID}, ids)

	deletedCourses, err := store.Audit().ListDeletedCourses(ctx)
	require.NoError(t, err)
	require.Len(t, deletedCourses, 1)
	assert.Equal(t, course.ID, deletedCourses[0].CourseID)
	assert.Equal(t, "MSc", deletedCourses[0].Name)
	assert.Equal(t, 12, deletedCourses[0].DurationMonths)
	assert.Equal(t, 3, deletedCourses[0].SeatsTotal)
	assert.Equal(t, 1, deletedCourses[0].SeatsTaken)
	assert.Equal(t, "MSc description", helpers.StringValue(deletedCourses[0].Description))

	assert.ErrorIs(t, store.Courses().Delete(ctx, course.ID), apperrors.ErrCourseNotFound)
}

func testAuditIdempotent(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	require.NoError(t, store.Audit().EnsureInfrastructure(ctx))
	require.NoError(t, store.Audit().EnsureInfrastructure(ctx))

	course := NewCourse(t, store, "MCA", 1, 0)
	applicant := NewApplicant(t, store, "frank@example.com", course.ID, models.StatusApplied)
	require.NoError(t, store.Applicants().Delete(ctx, applicant.ID))
	require.NoError(t, store.Courses().Delete(ctx, course.ID))

	deletedApplicants, err := store.Audit().ListDeletedApplicants(ctx)
	require.NoError(t, err)
	assert.Len(t, deletedApplicants, 1)

	deletedCourses, err := store.Audit().ListDeletedCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, deletedCourses, 1)
}

func testTransactionRollback(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	course := NewCourse(t, store, "MCA", 2, 0)
	applicant := NewApplicant(t, store, "grace@example.com", course.ID, models.StatusApplied)

	err := store.WithinTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		if _, err := repos.Applicants().GetByIDForUpdate(ctx, applicant.ID); err != nil {
			return err
		}
		if _, err := repos.Courses().GetByIDForUpdate(ctx, course.ID); err != nil {
			return err
		}
		if err := repos.Courses().UpdateSeatsTaken(ctx, course.ID, 1); err != nil {
			return err
		}
		if err := repos.Applicants().UpdateStatus(ctx, applicant.ID, models.StatusAdmitted, nil); err != nil {
			return err
		}
		return apperrors.ErrNoSeatsAvailable
	})
	require.ErrorIs(t, err, apperrors.ErrNoSeatsAvailable)

	gotCourse, err := store.Courses().GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotCourse.SeatsTaken)

	gotApplicant, err := store.Applicants().GetByID(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, gotApplicant.Status)

	err = store.WithinTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		return repos.Courses().UpdateSeatsTaken(ctx, course.ID, 2)
	})
	require.NoError(t, err)
	gotCourse, err = store.Courses().GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotCourse.SeatsTaken)
}

func testReports(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	mca := NewCourse(t, store, "MCA", 5, 1)
	msc := NewCourse(t, store, "MSc", 5, 0)
	empty := NewCourse(t, store, "Arts", 5, 0)
	NewApplicant(t, store, "r1@example.com", mca.ID, models.StatusAdmitted)
	NewApplicant(t, store, "r2@example.com", mca.ID, models.StatusApplied)
	NewApplicant(t, store, "r3@example.com", msc.ID, models.StatusApplied)

	byCourse, err := store.Reports().ApplicantCountsByCourse(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CourseApplicantCount{
		{CourseID: empty.ID, CourseName: "Arts", Applicants: 0},
		{CourseID: mca.ID, CourseName: "MCA", Applicants: 2},
		{CourseID: msc.ID, CourseName: "MSc", Applicants: 1},
	}, byCourse)

	byStatus, err := store.Reports().ApplicantCountsByStatus(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.StatusCount{
		{Status: models.StatusAdmitted, Applicants: 1},
		{Status: models.StatusApplied, Applicants: 2},
	}, byStatus)
}

func testNotFound(t *testing.T, store repositories.Store) {
	ctx := context.Background()

	_, err := store.Courses().GetByID(ctx, 424242)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = store.Courses().GetByIDForUpdate(ctx, 424242)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.ErrorIs(t, store.Courses().UpdateSeatsTaken(ctx, 424242, 0), apperrors.ErrCourseNotFound)
	assert.ErrorIs(t, store.Courses().Update(ctx, &models.Course{ID: 424242, Name: "x", DurationMonths: 1, SeatsTotal: 1}), apperrors.ErrCourseNotFound)

	_, err = store.Applicants().GetByID(ctx, 424242)
	assert.ErrorIs(t, err, apperrors.ErrApplicantNotFound)
	_, err = store.Applicants().GetByIDForUpdate(ctx, 424242)
	assert.ErrorIs(t, err, apperrors.ErrApplicantNotFound)
	assert.ErrorIs(t, store.Applicants().UpdateStatus(ctx, 424242, models.StatusApplied, nil), apperrors.ErrApplicantNotFound)
}
