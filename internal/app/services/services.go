package services

import (
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/config"
	"github.com/milavdabgar/gpp-portal/internal/pkg/auth"
	"github.com/milavdabgar/gpp-portal/internal/pkg/filestore"
)

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	UserService       UserService
	DepartmentService DepartmentService
	FacultyService    FacultyService
	StudentService    StudentService
	EventService      EventService
	TeamService       TeamService
	ProjectService    ProjectService
	LocationService   LocationService
	ResultService     ResultService
	FeedbackService   FeedbackService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, store filestore.Store, cfg *config.Config) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, repos.DepartmentRepository, jwtService),
		UserService:       NewUserService(repos.UserRepository, repos.RoleRepository, repos.DepartmentRepository),
		DepartmentService: NewDepartmentService(repos.DepartmentRepository, repos.UserRepository),
		FacultyService:    NewFacultyService(repos.FacultyRepository, repos.UserRepository, repos.DepartmentRepository),
		StudentService:    NewStudentService(repos.StudentRepository, repos.UserRepository, repos.DepartmentRepository, cfg.Institute.EmailDomain),
		EventService:      NewEventService(repos.EventRepository, repos.DepartmentRepository),
		TeamService:       NewTeamService(repos.TeamRepository, repos.EventRepository, repos.DepartmentRepository),
		ProjectService:    NewProjectService(repos.ProjectRepository, repos.TeamRepository, repos.EventRepository, repos.DepartmentRepository),
		LocationService:   NewLocationService(repos.LocationRepository, repos.ProjectRepository, repos.EventRepository),
		ResultService:     NewResultService(repos.ResultRepository, repos.StudentRepository, store),
		FeedbackService:   NewFeedbackService(repos.FeedbackRepository, store),
	}
}
