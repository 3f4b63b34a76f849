package dto

import "github.com/gradnexus/campusconnect/internal/app/models"

// AlumniCard is the directory view of an alumni user.
type AlumniCard struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Role       *string  `json:"role"`
	Company    *string  `json:"company"`
	Dept       string   `json:"dept"`
	Batch      *int     `json:"batch"`
	Skills     []string `json:"skills"`
	Mentorship bool     `json:"mentorship"`
	Industry   *string  `json:"industry"`
	Image      *string  `json:"image"`
}

// NewAlumniCard maps an alumni user with its profile loaded.
func NewAlumniCard(u *models.User) AlumniCard {
	card := AlumniCard{
		ID:     u.ID,
		Name:   u.FirstName + " " + u.LastName,
		Dept:   u.Degree,
		Batch:  u.BatchYear,
		Skills: []string{},
		Image:  u.Image,
	}
	if p := u.AlumniProfile; p != nil {
		card.Role = p.JobTitle
		card.Company = p.CurrentCompany
		card.Industry = p.Industry
		card.Mentorship = p.WillingToMentor
		for _, t := range p.AvailableFor {
			card.Skills = append(card.Skills, t.Name)
		}
	}
	return card
}
