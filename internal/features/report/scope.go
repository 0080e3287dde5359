package report

import (
	"context"
	"strings"

	"go-fleet/pkg/utils"

	"go.uber.org/zap"
)

// Scope is the resolved audience of a report: which owner user ids the query
// is restricted to and whether the request spans an organization.
type Scope struct {
	OwnerIDs         []string
	Members          []Member
	IsOrganizational bool
	Workplace        string // specific workplace in effect, "" when unrestricted
	CredentialID     string // set only when the scope is a single user with a known credential
}

type ScopeResolver struct {
	directory UserDirectory
	log       *zap.Logger
}

func NewScopeResolver(directory UserDirectory, log *zap.Logger) *ScopeResolver {
	return &ScopeResolver{directory: directory, log: log}
}

func workplaceWildcard(workplace string) bool {
	return workplace == "" || workplace == "all" || workplace == "organizational"
}

// Resolve classifies the request against the three-tier permission model.
// A USER is always scoped to themself no matter what the request claims; the
// caller is carried as a one-element member set so per-member aggregation
// still produces their own row. An explicit isOrganizational flag makes the
// scope organizational, and a named workplace further restricts the member
// set rather than being discarded.
func (r *ScopeResolver) Resolve(ctx context.Context, identity Identity, req GenerateRequest) (*Scope, error) {
	if identity.Role != utils.RoleAdmin && identity.Role != utils.RoleSuperAdmin {
		return &Scope{
			OwnerIDs:         []string{identity.UserID},
			Members:          []Member{{ID: identity.UserID, CredentialID: identity.CredentialID}},
			IsOrganizational: false,
			CredentialID:     identity.CredentialID,
		}, nil
	}

	orgRestriction := identity.OrganizationID
	if identity.Role == utils.RoleSuperAdmin {
		// Super admins see everything unless the request narrows to one org.
		orgRestriction = req.OrganizationID
	}

	workplace := strings.TrimSpace(req.Workplace)
	wildcard := workplaceWildcard(workplace)
	organizational := strings.HasPrefix(req.Type, "org-") || req.IsOrganizational || wildcard

	if organizational {
		wpFilter := workplace
		if wildcard {
			wpFilter = ""
		}
		members, err := r.directory.FindMembers(ctx, orgRestriction, wpFilter)
		if err != nil {
			return nil, err
		}
		r.log.Debug("resolved organizational scope",
			zap.String("organization", orgRestriction),
			zap.String("workplace", wpFilter),
			zap.Int("members", len(members)))
		return r.scopeFromMembers(members, true, wpFilter), nil
	}

	// A specific workplace was named on a plain report type.
	members, err := r.directory.FindMembers(ctx, orgRestriction, workplace)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, &EmptyWorkplaceError{Workplace: workplace}
	}
	r.log.Debug("resolved workplace scope",
		zap.String("workplace", workplace),
		zap.Int("members", len(members)))
	return r.scopeFromMembers(members, false, workplace), nil
}

func (r *ScopeResolver) scopeFromMembers(members []Member, organizational bool, workplace string) *Scope {
	scope := &Scope{
		Members:          members,
		IsOrganizational: organizational,
		Workplace:        workplace,
	}
	for _, m := range members {
		scope.OwnerIDs = append(scope.OwnerIDs, m.ID)
	}
	if !organizational && len(members) == 1 {
		scope.CredentialID = members[0].CredentialID
	}
	return scope
}
