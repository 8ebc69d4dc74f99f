package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/controllers"
	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", ctrls.AuthController.Signup)
		auth.POST("/login", ctrls.AuthController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/switch-role", ctrls.AuthController.SwitchRole)
		authenticated.GET("/auth/me", ctrls.AuthController.GetCurrentUser)

		// User and role administration (admin only)
		adminOnly := authenticated.Group("")
		adminOnly.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			users := adminOnly.Group("/users")
			{
				users.POST("", ctrls.UserController.CreateUser)
				users.GET("", ctrls.UserController.ListUsers)
				users.GET("/:id", ctrls.UserController.GetUserByID)
				users.PUT("/:id", ctrls.UserController.UpdateUser)
				users.DELETE("/:id", ctrls.UserController.DeleteUser)
				users.POST("/import", ctrls.UserController.ImportUsers)
				users.GET("/export", ctrls.UserController.ExportUsers)
			}

			roles := adminOnly.Group("/roles")
			{
				roles.POST("", ctrls.UserController.CreateRole)
				roles.GET("", ctrls.UserController.GetRoles)
				roles.PUT("/:name", ctrls.UserController.UpdateRole)
				roles.DELETE("/:name", ctrls.UserController.DeleteRole)
			}
		}

		// Department routes
		departments := authenticated.Group("/departments")
		{
			departments.GET("", ctrls.DepartmentController.ListDepartments)
			departments.GET("/stats", ctrls.DepartmentController.GetStats)
			departments.GET("/:id", ctrls.DepartmentController.GetDepartmentByID)

			departmentsStaff := departments.Group("")
			departmentsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal))
			{
				departmentsStaff.POST("", ctrls.DepartmentController.CreateDepartment)
				departmentsStaff.PUT("/:id", ctrls.DepartmentController.UpdateDepartment)
				departmentsStaff.DELETE("/:id", ctrls.DepartmentController.DeleteDepartment)
				departmentsStaff.POST("/import", ctrls.DepartmentController.ImportDepartments)
				departmentsStaff.GET("/export", ctrls.DepartmentController.ExportDepartments)
			}
		}

		// Faculty routes
		faculty := authenticated.Group("/faculty")
		{
			faculty.GET("", ctrls.FacultyController.ListFaculty)
			faculty.GET("/:id", ctrls.FacultyController.GetFacultyByID)

			facultyStaff := faculty.Group("")
			facultyStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
			{
				facultyStaff.POST("", ctrls.FacultyController.CreateFaculty)
				facultyStaff.PUT("/:id", ctrls.FacultyController.UpdateFaculty)
				facultyStaff.DELETE("/:id", ctrls.FacultyController.DeleteFaculty)
				facultyStaff.POST("/import", ctrls.FacultyController.ImportFaculty)
				facultyStaff.GET("/export", ctrls.FacultyController.ExportFaculty)
			}
		}

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("", ctrls.StudentController.ListStudents)
			students.GET("/:id", ctrls.StudentController.GetStudentByID)

			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
			{
				studentsStaff.POST("", ctrls.StudentController.CreateStudent)
				studentsStaff.PUT("/:id", ctrls.StudentController.UpdateStudent)
				studentsStaff.DELETE("/:id", ctrls.StudentController.DeleteStudent)
				studentsStaff.POST("/import", ctrls.StudentController.ImportStudents)
				studentsStaff.GET("/export", ctrls.StudentController.ExportStudents)
				studentsStaff.POST("/sync", ctrls.StudentController.SyncStudentUsers)
			}
		}

		// Project event routes
		events := authenticated.Group("/project-events")
		{
			events.GET("", ctrls.EventController.ListEvents)
			events.GET("/active", ctrls.EventController.ListActiveEvents)
			events.GET("/:id", ctrls.EventController.GetEventByID)

			eventsStaff := events.Group("")
			eventsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
			{
				eventsStaff.POST("", ctrls.EventController.CreateEvent)
				eventsStaff.PUT("/:id", ctrls.EventController.UpdateEvent)
				eventsStaff.PATCH("/:id/schedule", ctrls.EventController.UpdateSchedule)
				eventsStaff.PATCH("/:id/publish", ctrls.EventController.PublishResults)
				eventsStaff.DELETE("/:id", ctrls.EventController.DeleteEvent)
			}
		}

		// Project team routes
		teams := authenticated.Group("/project-teams")
		{
			teams.POST("", ctrls.TeamController.CreateTeam)
			teams.GET("", ctrls.TeamController.ListTeams)
			teams.GET("/my", ctrls.TeamController.ListMyTeams)
			teams.GET("/:id", ctrls.TeamController.GetTeamByID)
			teams.PUT("/:id", ctrls.TeamController.UpdateTeam)
			teams.PATCH("/:id/leader/:memberId", ctrls.TeamController.SetLeader)
			teams.DELETE("/:id/members/:memberId", ctrls.TeamController.RemoveMember)
			teams.DELETE("/:id", ctrls.TeamController.DeleteTeam)
		}

		// Project routes
		projects := authenticated.Group("/projects")
		{
			projects.POST("", ctrls.ProjectController.CreateProject)
			projects.GET("", ctrls.ProjectController.ListProjects)
			projects.GET("/my", ctrls.ProjectController.ListMyProjects)
			projects.GET("/statistics", ctrls.ProjectController.GetStatistics)
			projects.GET("/winners", ctrls.ProjectController.GetEventWinners)
			projects.GET("/:id", ctrls.ProjectController.GetProjectByID)
			projects.PUT("/:id", ctrls.ProjectController.UpdateProject)
			projects.DELETE("/:id", ctrls.ProjectController.DeleteProject)

			projectsStaff := projects.Group("")
			projectsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
			{
				projectsStaff.POST("/import", ctrls.ProjectController.ImportProjects)
				projectsStaff.GET("/export", ctrls.ProjectController.ExportProjects)
			}

			projectsJury := projects.Group("")
			projectsJury.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleJury))
			{
				projectsJury.GET("/jury", ctrls.ProjectController.ListForJury)
				projectsJury.POST("/:id/department-evaluation", ctrls.ProjectController.EvaluateDepartment)
				projectsJury.POST("/:id/central-evaluation", ctrls.ProjectController.EvaluateCentral)
			}
		}

		// Project location routes
		locations := authenticated.Group("/project-locations")
		{
			locations.GET("", ctrls.LocationController.ListLocations)
			locations.GET("/:id", ctrls.LocationController.GetLocationByID)

			locationsStaff := locations.Group("")
			locationsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
			{
				locationsStaff.POST("", ctrls.LocationController.CreateLocation)
				locationsStaff.POST("/batch", ctrls.LocationController.CreateBatch)
				locationsStaff.PUT("/:id", ctrls.LocationController.UpdateLocation)
				locationsStaff.PATCH("/:id/assign", ctrls.LocationController.AssignProject)
				locationsStaff.PATCH("/:id/unassign", ctrls.LocationController.UnassignProject)
				locationsStaff.DELETE("/:id", ctrls.LocationController.DeleteLocation)
			}
		}

		// Exam result routes
		results := authenticated.Group("/results")
		{
			// Students may only read their own results, enforced in the service
			results.GET("/student/:enrollmentNo", ctrls.ResultController.GetStudentResults)

			resultsStaff := results.Group("")
			resultsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD, models.RoleFaculty))
			{
				resultsStaff.GET("", ctrls.ResultController.ListResults)
				resultsStaff.GET("/export", ctrls.ResultController.ExportResults)
				resultsStaff.GET("/analysis", ctrls.ResultController.GetBranchAnalysis)
				resultsStaff.GET("/batches", ctrls.ResultController.ListBatches)
				resultsStaff.GET("/:id", ctrls.ResultController.GetResultByID)
			}

			resultsAdmin := results.Group("")
			resultsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				resultsAdmin.POST("/import", ctrls.ResultController.ImportResults)
				resultsAdmin.DELETE("/:id", ctrls.ResultController.DeleteResult)
				resultsAdmin.DELETE("/batches/:batchId", ctrls.ResultController.DeleteBatch)
			}
		}

		// Feedback analysis routes
		feedback := authenticated.Group("/feedback")
		feedback.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RolePrincipal, models.RoleHOD))
		{
			feedback.GET("/sample", ctrls.FeedbackController.GetSample)
			feedback.POST("/analyze", ctrls.FeedbackController.AnalyzeCSV)
			feedback.GET("", ctrls.FeedbackController.ListAnalyses)
			feedback.GET("/:id", ctrls.FeedbackController.GetAnalysisByID)
			feedback.GET("/:id/report/latex", ctrls.FeedbackController.GetLaTeXReport)
			feedback.GET("/:id/report/pdf", ctrls.FeedbackController.GetPDFReport)
			feedback.GET("/:id/report/csv", ctrls.FeedbackController.ExportReport)
			feedback.DELETE("/:id", ctrls.FeedbackController.DeleteAnalysis)
		}
	}
}
