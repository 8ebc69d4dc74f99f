package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
)

func TestActorIsStaff(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{models.RoleAdmin, true},
		{models.RolePrincipal, true},
		{models.RoleHOD, true},
		{models.RoleFaculty, false},
		{models.RoleStudent, false},
		{models.RoleJury, false},
		{"", false},
	}
	for _, tt := range tests {
		actor := &Actor{UserID: "u-1", Role: tt.role}
		assert.Equal(t, tt.want, actor.IsStaff(), "role %q", tt.role)
	}
}

func TestTeamHasMember(t *testing.T) {
	team := &models.ProjectTeam{
		Members: []models.TeamMember{
			{UserID: "u-1", IsLeader: true},
			{UserID: "u-2"},
		},
	}

	assert.True(t, teamHasMember(team, "u-1"))
	assert.True(t, teamHasMember(team, "u-2"))
	assert.False(t, teamHasMember(team, "u-3"))
	assert.False(t, teamHasMember(&models.ProjectTeam{}, "u-1"))
}

func TestEvaluationScore(t *testing.T) {
	score := 8.456
	assert.Equal(t, "", evaluationScore(nil))
	assert.Equal(t, "", evaluationScore(&models.ProjectEvaluation{Completed: false, Score: &score}))
	assert.Equal(t, "", evaluationScore(&models.ProjectEvaluation{Completed: true}))
	assert.Equal(t, "8.46", evaluationScore(&models.ProjectEvaluation{Completed: true, Score: &score}))
}
