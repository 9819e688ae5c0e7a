package ldapsource

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/Mamut3D/foremanctl/internal/common/errors"
	"github.com/Mamut3D/foremanctl/internal/foreman"
)

// Client is the subset of the Foreman API the reconciler depends on. It is
// satisfied by *foreman.Client and injected by the caller.
type Client interface {
	SearchAuthSourceLDAP(ctx context.Context, name string) (*foreman.AuthSourceLDAP, error)
	GetAuthSourceLDAP(ctx context.Context, id int) (*foreman.AuthSourceLDAP, error)
	CreateAuthSourceLDAP(ctx context.Context, in *foreman.AuthSourceLDAPInput) (*foreman.AuthSourceLDAP, error)
	UpdateAuthSourceLDAP(ctx context.Context, id int, in *foreman.AuthSourceLDAPInput) (*foreman.AuthSourceLDAP, error)
	DeleteAuthSourceLDAP(ctx context.Context, id int) error
	SearchOrganization(ctx context.Context, name string) (*foreman.Organization, error)
	SearchLocation(ctx context.Context, name string) (*foreman.Location, error)
	SearchUser(ctx context.Context, login string) (*foreman.User, error)
}

// Result reports the outcome of one reconciliation
type Result struct {
	Changed bool   `json:"changed"`
	Name    string `json:"name"`

	// Record is the auth source after reconciliation, when one exists
	Record *foreman.AuthSourceLDAP `json:"-"`
}

// Reconciler brings a single named LDAP auth source into conformance with a
// desired-state spec, issuing at most one mutating call per invocation
type Reconciler struct {
	client Client
	logger *zap.Logger
}

// NewReconciler creates a new reconciler
func NewReconciler(client Client, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		client: client,
		logger: logger.With(zap.String("component", "ldapsource-reconciler")),
	}
}

// Reconcile computes and applies the minimal action needed to match spec:
// create when present and missing, delete when absent and found, update when
// present and drifted, otherwise no-op. Any remote failure aborts the
// invocation; nothing is retried.
func (r *Reconciler) Reconcile(ctx context.Context, spec *Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	in := spec.toInput()

	if spec.Organizations != nil {
		ids, err := resolveIDs(ctx, kindOrganization, spec.Organizations, func(ctx context.Context, name string) (int, bool, error) {
			org, err := r.client.SearchOrganization(ctx, name)
			if err != nil || org == nil {
				return 0, false, err
			}
			return org.ID, true, nil
		})
		if err != nil {
			return nil, err
		}
		in.OrganizationIDs = &ids
	}

	if spec.Locations != nil {
		ids, err := resolveIDs(ctx, kindLocation, spec.Locations, func(ctx context.Context, name string) (int, bool, error) {
			loc, err := r.client.SearchLocation(ctx, name)
			if err != nil || loc == nil {
				return 0, false, err
			}
			return loc.ID, true, nil
		})
		if err != nil {
			return nil, err
		}
		in.LocationIDs = &ids
	}

	current, err := r.fetch(ctx, spec.Name)
	if err != nil {
		return nil, err
	}

	result := &Result{Name: spec.Name, Record: current}

	switch {
	case current == nil && spec.State == StatePresent:
		record, err := r.client.CreateAuthSourceLDAP(ctx, in)
		if err != nil {
			return nil, apperrors.RemoteOperation("create", err)
		}
		r.logger.Info("ldap auth source created", zap.String("name", spec.Name))
		result.Changed = true
		result.Record = record

	case current == nil:
		// absent and already gone

	case spec.State == StateAbsent:
		if err := r.client.DeleteAuthSourceLDAP(ctx, current.ID); err != nil {
			return nil, apperrors.RemoteOperation("delete", err)
		}
		r.logger.Info("ldap auth source deleted", zap.String("name", spec.Name), zap.Int("id", current.ID))
		result.Changed = true
		result.Record = nil

	case !Matches(in, current, CompareKeys):
		record, err := r.client.UpdateAuthSourceLDAP(ctx, current.ID, in)
		if err != nil {
			return nil, apperrors.RemoteOperation("update", err)
		}
		r.logger.Info("ldap auth source updated", zap.String("name", spec.Name), zap.Int("id", current.ID))
		result.Changed = true
		result.Record = record

	default:
		r.logger.Debug("ldap auth source up to date", zap.String("name", spec.Name))
	}

	return result, nil
}

// ResolveUserIDs translates user logins into remote identifiers. It is not
// consumed by the reconciliation path; it exists for callers that need
// user-scoped association lookups.
func (r *Reconciler) ResolveUserIDs(ctx context.Context, logins []string) ([]int, error) {
	return resolveIDs(ctx, kindUser, logins, func(ctx context.Context, login string) (int, bool, error) {
		user, err := r.client.SearchUser(ctx, login)
		if err != nil || user == nil {
			return 0, false, err
		}
		return user.ID, true, nil
	})
}

// fetch looks up the current record by name, then retrieves the full show
// representation: the search listing omits organization and location
// assignments
func (r *Reconciler) fetch(ctx context.Context, name string) (*foreman.AuthSourceLDAP, error) {
	found, err := r.client.SearchAuthSourceLDAP(ctx, name)
	if err != nil {
		return nil, apperrors.RemoteOperation("fetch", err)
	}
	if found == nil {
		return nil, nil
	}
	record, err := r.client.GetAuthSourceLDAP(ctx, found.ID)
	if err != nil {
		return nil, apperrors.RemoteOperation("fetch", err)
	}
	return record, nil
}
