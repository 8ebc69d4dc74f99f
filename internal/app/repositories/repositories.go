package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	RoleRepository       *RoleRepository
	DepartmentRepository *DepartmentRepository
	FacultyRepository    *FacultyRepository
	StudentRepository    *StudentRepository
	EventRepository      *EventRepository
	TeamRepository       *TeamRepository
	LocationRepository   *LocationRepository
	ProjectRepository    *ProjectRepository
	ResultRepository     *ResultRepository
	FeedbackRepository   *FeedbackRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		RoleRepository:       NewRoleRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		FacultyRepository:    NewFacultyRepository(db),
		StudentRepository:    NewStudentRepository(db),
		EventRepository:      NewEventRepository(db),
		TeamRepository:       NewTeamRepository(db),
		LocationRepository:   NewLocationRepository(db),
		ProjectRepository:    NewProjectRepository(db),
		ResultRepository:     NewResultRepository(db),
		FeedbackRepository:   NewFeedbackRepository(db),
	}
}
