package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	"github.com/gradnexus/campusconnect/internal/pkg/validation"
)

var fieldValidator = validation.New()

// ProfilePayload is a profile update body keyed by field name. Keys that are not
// profile fields (username, role, password) are ignored.
type ProfilePayload map[string]json.RawMessage

// ProfilePayloadFromForm builds a payload from multipart form values. Repeated
// available_for values form the list.
func ProfilePayloadFromForm(values map[string][]string) ProfilePayload {
	p := make(ProfilePayload, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		var raw []byte
		if key == "available_for" {
			raw, _ = json.Marshal(vals)
		} else {
			raw, _ = json.Marshal(vals[0])
		}
		p[key] = raw
	}
	return p
}

// Split separates the payload into the users-table update and the alumni-profile
// update. Empty strings become NULL for batch_year and for the nullable alumni fields.
func (p ProfilePayload) Split() (models.UserUpdate, models.AlumniProfileUpdate, error) {
	var (
		u    models.UserUpdate
		a    models.AlumniProfileUpdate
		errs = make(map[string]string)
	)

	u.FirstName = p.requiredString("first_name", "max=150", errs)
	u.LastName = p.requiredString("last_name", "max=150", errs)
	u.Email = p.requiredString("email", "omitempty,email,max=254", errs)
	u.Phone = p.nullableString("phone", "max=15", false, errs)
	u.College = p.requiredString("college", "max=100", errs)
	u.Degree = p.requiredString("degree", "max=100", errs)
	u.BatchYear = p.nullableInt("batch_year", "gte=1900,max=2100", errs)
	u.Bio = p.nullableString("bio", "", false, errs)
	u.Image = p.nullableString("image", "max=255", false, errs)

	a.JobTitle = p.nullableString("job_title", "max=100", true, errs)
	a.CurrentCompany = p.nullableString("current_company", "max=100", true, errs)
	a.Industry = p.nullableString("industry", "max=100", true, errs)
	a.YearsOfExperience = p.nullableInt("years_of_experience", "gte=0,max=80", errs)
	a.LinkedInURL = p.nullableString("linkedin_url", "url,max=200", true, errs)
	a.WillingToMentor = p.boolean("willing_to_mentor", errs)
	a.AvailableFor = p.ids("available_for", errs)

	if len(errs) > 0 {
		return u, a, apperrors.NewValidationError("Validation failed", errs)
	}
	return u, a, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (p ProfilePayload) checkTag(key, value, tag string, errs map[string]string) bool {
	if tag == "" {
		return true
	}
	if fieldErrs := validation.FieldErrors(fieldValidator.Var(value, tag)); len(fieldErrs) > 0 {
		for _, msg := range fieldErrs {
			errs[key] = msg
		}
		return false
	}
	return true
}

// requiredString reads a non-nullable text column.
func (p ProfilePayload) requiredString(key, tag string, errs map[string]string) models.Patch[string] {
	raw, ok := p[key]
	if !ok {
		return models.Patch[string]{}
	}
	if isNull(raw) {
		errs[key] = "This field may not be null."
		return models.Patch[string]{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs[key] = "Not a valid string."
		return models.Patch[string]{}
	}
	if !p.checkTag(key, s, tag, errs) {
		return models.Patch[string]{}
	}
	return models.SetTo(s)
}

// nullableString reads a nullable text column; emptyIsNull maps "" to NULL.
func (p ProfilePayload) nullableString(key, tag string, emptyIsNull bool, errs map[string]string) models.Patch[string] {
	raw, ok := p[key]
	if !ok {
		return models.Patch[string]{}
	}
	if isNull(raw) {
		return models.SetNull[string]()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs[key] = "Not a valid string."
		return models.Patch[string]{}
	}
	if s == "" {
		if emptyIsNull {
			return models.SetNull[string]()
		}
		return models.SetTo(s)
	}
	if !p.checkTag(key, s, tag, errs) {
		return models.Patch[string]{}
	}
	return models.SetTo(s)
}

// nullableInt reads a nullable integer column given as a number or a numeric
// string. The empty string is NULL since the column cannot hold "".
func (p ProfilePayload) nullableInt(key, tag string, errs map[string]string) models.Patch[int] {
	raw, ok := p[key]
	if !ok {
		return models.Patch[int]{}
	}
	if isNull(raw) {
		return models.SetNull[int]()
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs[key] = "A valid integer is required."
			return models.Patch[int]{}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return models.SetNull[int]()
		}
		if n, err = strconv.Atoi(s); err != nil {
			errs[key] = "A valid integer is required."
			return models.Patch[int]{}
		}
	}
	if fieldErrs := validation.FieldErrors(fieldValidator.Var(n, tag)); len(fieldErrs) > 0 {
		for _, msg := range fieldErrs {
			errs[key] = msg
		}
		return models.Patch[int]{}
	}
	return models.SetTo(n)
}

// boolean reads a boolean given as JSON bool or as a form string.
func (p ProfilePayload) boolean(key string, errs map[string]string) models.Patch[bool] {
	raw, ok := p[key]
	if !ok {
		return models.Patch[bool]{}
	}
	if isNull(raw) {
		errs[key] = "This field may not be null."
		return models.Patch[bool]{}
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return models.SetTo(b)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return models.SetTo(b)
		}
	}
	errs[key] = "Must be a valid boolean."
	return models.Patch[bool]{}
}

// ids reads a list of primary keys given as numbers or numeric strings.
func (p ProfilePayload) ids(key string, errs map[string]string) models.Patch[[]int64] {
	raw, ok := p[key]
	if !ok {
		return models.Patch[[]int64]{}
	}
	if isNull(raw) {
		errs[key] = "This field may not be null."
		return models.Patch[[]int64]{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		errs[key] = "Expected a list of items."
		return models.Patch[[]int64]{}
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		var id int64
		if err := json.Unmarshal(item, &id); err != nil {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				errs[key] = fmt.Sprintf("Incorrect type. Expected pk value, received %s.", string(item))
				return models.Patch[[]int64]{}
			}
			if id, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
				errs[key] = fmt.Sprintf("Incorrect type. Expected pk value, received %q.", s)
				return models.Patch[[]int64]{}
			}
		}
		if id <= 0 {
			errs[key] = fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
			return models.Patch[[]int64]{}
		}
		ids = append(ids, id)
	}
	return models.SetTo(ids)
}
