package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/controllers"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Course    *controllers.CourseController
	Applicant *controllers.ApplicantController
	Report    *controllers.ReportController
	Health    *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// API version group
	v1 := router.Group("/api/v1")

	courses := v1.Group("/courses")
	{
		courses.GET("", c.Course.GetAllCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/:id", c.Course.GetCourseByID)
		courses.PUT("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)
	}

	applicants := v1.Group("/applicants")
	{
		applicants.GET("", c.Applicant.GetAllApplicants)
		applicants.POST("", c.Applicant.CreateApplicant)
		applicants.GET("/:id", c.Applicant.GetApplicantByID)
		applicants.PATCH("/:id/status", c.Applicant.UpdateApplicantStatus)
		applicants.DELETE("/:id", c.Applicant.DeleteApplicant)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("/applicants-by-course", c.Report.ApplicantsByCourse)
		reports.GET("/applicants-by-status", c.Report.ApplicantsByStatus)
		reports.GET("/summary", c.Report.Summary)
	}

	v1.GET("/health", c.Health.Health)
}
