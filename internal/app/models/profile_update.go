package models

// Patch is one field of a partial update. Set marks the key as present in the
// request; a nil Value writes NULL.
type Patch[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a patch that writes v.
func SetTo[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: &v}
}

// SetNull returns a patch that clears the column.
func SetNull[T any]() Patch[T] {
	return Patch[T]{Set: true}
}

// UserUpdate holds the fields of a profile update that live on the users table.
type UserUpdate struct {
	FirstName Patch[string]
	LastName  Patch[string]
	Email     Patch[string]
	Phone     Patch[string]
	College   Patch[string]
	Degree    Patch[string]
	BatchYear Patch[int]
	Bio       Patch[string]
	Image     Patch[string]
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return !(u.FirstName.Set || u.LastName.Set || u.Email.Set || u.Phone.Set || u.College.Set ||
		u.Degree.Set || u.BatchYear.Set || u.Bio.Set || u.Image.Set)
}

// AlumniProfileUpdate holds the "alumni fields" of a profile update.
// AvailableFor, when set, replaces the whole set of offered mentorship types.
type AlumniProfileUpdate struct {
	JobTitle          Patch[string]
	CurrentCompany    Patch[string]
	Industry          Patch[string]
	YearsOfExperience Patch[int]
	LinkedInURL       Patch[string]
	WillingToMentor   Patch[bool]
	AvailableFor      Patch[[]int64]
}

// HasColumns reports whether any scalar column of the profile row is set.
func (u AlumniProfileUpdate) HasColumns() bool {
	return u.JobTitle.Set || u.CurrentCompany.Set || u.Industry.Set || u.YearsOfExperience.Set ||
		u.LinkedInURL.Set || u.WillingToMentor.Set
}

// IsEmpty reports whether no field is set.
func (u AlumniProfileUpdate) IsEmpty() bool {
	return !u.HasColumns() && !u.AvailableFor.Set
}
