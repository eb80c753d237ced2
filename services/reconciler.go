package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

// UserStore is the local record store, the system of record for accounts.
// A nil user with a nil error means "not found", which is an expected
// outcome, not a failure.
type UserStore interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
	Update(ctx context.Context, id uint, user models.User) (*models.User, error)
	Delete(ctx context.Context, id uint) bool
}

// IdentityProvider is the federated identity store. Errors it returns are
// surfaced verbatim so callers can inspect provider-specific codes.
type IdentityProvider interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateWithPassword(ctx context.Context, user models.User, password string) (*models.FederatedIdentity, error)
	UpdateDisplayName(ctx context.Context, uid, name string) error
	SendPasswordReset(ctx context.Context, email string) error
	Delete(ctx context.Context, uid string) error
	ListAccounts(ctx context.Context) ([]models.FederatedIdentity, error)
}

// Reconciler keeps the local user store and the federated identity provider
// in agreement, keyed by email. The two stores are eventually consistent, not
// transactional: every operation documents which side wins when they disagree.
//
// Concurrent Reconcile calls for the same email are not deduplicated; two
// racing calls can create two local records. Callers that need stronger
// guarantees must serialize externally.
type Reconciler struct {
	store    UserStore
	provider IdentityProvider
	logger   *zap.SugaredLogger
}

func NewReconciler(store UserStore, provider IdentityProvider, logger *zap.SugaredLogger) *Reconciler {
	return &Reconciler{store: store, provider: provider, logger: logger}
}

// FindLocalUserByEmail scans the full user collection for a case-insensitive
// email match and returns the first hit, or nil when nothing matches.
func (r *Reconciler) FindLocalUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Reconcile maps a federated identity onto a local user record, creating one
// when none exists. Local data is authoritative: the federated display name
// only fills an empty full name and never overwrites one. Role and work mode
// are never touched on an existing record. Returns nil when the store rejects
// the write.
func (r *Reconciler) Reconcile(ctx context.Context, identity models.FederatedIdentity) (*models.User, error) {
	if identity.Email == "" {
		return nil, &models.IdentityError{UID: identity.UID, Reason: "missing email reconciliation key"}
	}

	existing, err := r.FindLocalUserByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if existing != nil {
		if existing.FullName == "" && identity.DisplayName != "" {
			existing.FullName = identity.DisplayName
		}
		existing.Active = true
		existing.LastLogin = &now
		existing.UpdatedAt = now
		updated, err := r.store.Update(ctx, existing.ID, *existing)
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	user := models.User{
		Username:  usernameFor(identity),
		Email:     identity.Email,
		FullName:  identity.DisplayName,
		Role:      models.RoleDeveloper,
		WorkMode:  models.WorkModeRemote,
		Active:    true,
		LastLogin: &now,
	}
	created, err := r.store.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// usernameFor derives a username from the email local-part, falling back to
// the first 8 characters of the external id.
func usernameFor(identity models.FederatedIdentity) string {
	if at := strings.Index(identity.Email, "@"); at > 0 {
		return identity.Email[:at]
	}
	if len(identity.UID) > 8 {
		return identity.UID[:8]
	}
	return identity.UID
}

// UpdateProfile applies the non-nil fields of patch to the local record and,
// when the full name changed, mirrors it to the federated identity. The
// mirror is best effort: a provider failure is logged and does not roll back
// the local update.
func (r *Reconciler) UpdateProfile(ctx context.Context, userID uint, identity models.FederatedIdentity, patch models.UpdateProfileRequest) (*models.User, error) {
	user, err := r.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.WorkMode != nil {
		user.WorkMode = *patch.WorkMode
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := r.store.Update(ctx, userID, *user)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		if err := r.provider.UpdateDisplayName(ctx, identity.UID, *patch.FullName); err != nil {
			r.logger.Errorw("display name mirror failed",
				"userID", userID,
				"uid", identity.UID,
				"error", err,
			)
		}
	}
	return updated, nil
}

// DeleteUser removes the local record first and only then the federated
// identity. The local store is the source of truth, so a surviving local
// record must never lose its federated counterpart; an orphaned federated
// identity is the acceptable inconsistency, the reverse is not.
func (r *Reconciler) DeleteUser(ctx context.Context, userID uint, identity models.FederatedIdentity) bool {
	if !r.store.Delete(ctx, userID) {
		return false
	}
	if err := r.provider.Delete(ctx, identity.UID); err != nil {
		r.logger.Errorw("federated identity delete failed after local delete",
			"userID", userID,
			"uid", identity.UID,
			"error", err,
		)
	}
	return true
}

// ReconcileAll walks every federated account and reconciles each one,
// counting outcomes. Per-account failures increment Failed and the walk
// continues; the report is the only place failures show up.
func (r *Reconciler) ReconcileAll(ctx context.Context) models.ReconcileReport {
	var report models.ReconcileReport

	accounts, err := r.provider.ListAccounts(ctx)
	if err != nil {
		r.logger.Errorw("listing federated accounts failed", "error", err)
		return report
	}

	for _, account := range accounts {
		existing, err := r.FindLocalUserByEmail(ctx, account.Email)
		if err != nil || account.Email == "" {
			report.Failed++
			continue
		}
		user, err := r.Reconcile(ctx, account)
		if err != nil || user == nil {
			report.Failed++
			continue
		}
		if existing != nil {
			report.Existing++
		} else {
			report.Created++
		}
	}
	return report
}
