package auth

import (
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

// Method names the credential that authenticated a request.
type Method string

const (
	MethodToken   Method = "token"
	MethodSession Method = "session"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   int64
	Username string
	Role     models.RoleType
	Method   Method
	// SessionKey is set only for session-authenticated requests.
	SessionKey string
}

func (i *Identity) IsStudent() bool { return i != nil && i.Role == models.RoleStudent }
func (i *Identity) IsAlumni() bool  { return i != nil && i.Role == models.RoleAlumni }

// RequireRole fails with a permission error unless the caller has role.
func RequireRole(id *Identity, role models.RoleType, message string) error {
	if id == nil || id.Role != role {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// RequireOwner fails with a permission error unless the caller is ownerID.
func RequireOwner(id *Identity, ownerID int64, message string) error {
	if id == nil || id.UserID != ownerID {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// RequireRequestParty fails unless the caller is the student or the alumni of req.
func RequireRequestParty(id *Identity, req *models.MentorshipRequest) error {
	if id == nil || !req.IsParty(id.UserID) {
		return apperrors.NewForbiddenError("You are not a party to this mentorship request.")
	}
	return nil
}
