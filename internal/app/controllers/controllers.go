package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController       *AuthController
	UserController       *UserController
	DepartmentController *DepartmentController
	FacultyController    *FacultyController
	StudentController    *StudentController
	EventController      *EventController
	TeamController       *TeamController
	ProjectController    *ProjectController
	LocationController   *LocationController
	ResultController     *ResultController
	FeedbackController   *FeedbackController
}

// NewControllers initializes all controllers
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(svcs.AuthService),
		UserController:       NewUserController(svcs.UserService),
		DepartmentController: NewDepartmentController(svcs.DepartmentService),
		FacultyController:    NewFacultyController(svcs.FacultyService),
		StudentController:    NewStudentController(svcs.StudentService),
		EventController:      NewEventController(svcs.EventService),
		TeamController:       NewTeamController(svcs.TeamService),
		ProjectController:    NewProjectController(svcs.ProjectService),
		LocationController:   NewLocationController(svcs.LocationService),
		ResultController:     NewResultController(svcs.ResultService),
		FeedbackController:   NewFeedbackController(svcs.FeedbackService),
	}
}

// currentUserID returns the authenticated user's ID from the request context.
func currentUserID(ctx *gin.Context) string {
	id, _ := ctx.Get(middleware.ContextUserID)
	s, _ := id.(string)
	return s
}

// currentActor bundles the authenticated user's identity and selected role.
func currentActor(ctx *gin.Context) *services.Actor {
	role, _ := ctx.Get(middleware.ContextSelectedRole)
	r, _ := role.(string)
	return &services.Actor{
		UserID: currentUserID(ctx),
		Role:   r,
	}
}
