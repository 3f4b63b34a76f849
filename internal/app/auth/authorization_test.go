package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

func TestRequireRole(t *testing.T) {
	student := &Identity{UserID: 1, Role: models.RoleStudent}

	assert.NoError(t, RequireRole(student, models.RoleStudent, "students only"))
	err := RequireRole(student, models.RoleAlumni, "alumni only")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.EqualError(t, err, "alumni only")
	assert.ErrorIs(t, RequireRole(nil, models.RoleStudent, "x"), apperrors.ErrPermissionDenied)
}

func TestRequireOwner(t *testing.T) {
	id := &Identity{UserID: 7}
	assert.NoError(t, RequireOwner(id, 7, "not yours"))
	assert.ErrorIs(t, RequireOwner(id, 8, "not yours"), apperrors.ErrPermissionDenied)
}

func TestRequireRequestParty(t *testing.T) {
	req := &models.MentorshipRequest{StudentID: 1, AlumniID: 2}

	assert.NoError(t, RequireRequestParty(&Identity{UserID: 1}, req))
	assert.NoError(t, RequireRequestParty(&Identity{UserID: 2}, req))
	assert.ErrorIs(t, RequireRequestParty(&Identity{UserID: 3}, req), apperrors.ErrPermissionDenied)
}
