package user

import (
	"context"

	"go-fleet/internal/features/report"
)

// Directory adapts the user repository to the report engine's directory
// collaborator.
type Directory struct {
	repo UserRepository
}

func NewDirectory(repo UserRepository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) FindMembers(ctx context.Context, organizationID, workplace string) ([]report.Member, error) {
	users, err := d.repo.FindMembers(ctx, organizationID, workplace)
	if err != nil {
		return nil, err
	}

	members := make([]report.Member, 0, len(users))
	for _, u := range users {
		members = append(members, report.Member{
			ID:           u.ID.Hex(),
			Name:         u.Name,
			Email:        u.Email,
			Workplace:    u.WorkplaceName,
			CredentialID: u.CredentialID,
		})
	}
	return members, nil
}
