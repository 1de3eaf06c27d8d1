package policy

import "github.com/spec-kit/resort-admin-service/internal/domain"

// TargetScope selects which account class a status endpoint governs. The
// admin and staff status endpoints share one rule set and differ only in
// which targets they accept.
type TargetScope string

const (
	ScopeAdminAccounts TargetScope = "admin_accounts"
	ScopeStaffAccounts TargetScope = "staff_accounts"
)

// StatusChange describes a requested active-flag mutation.
type StatusChange struct {
	ActorRole       domain.Role
	TargetRole      domain.Role
	TargetActive    bool
	RequestedActive bool
	ActorIsTarget   bool
}

// Decision is the outcome of a policy evaluation. NoChange marks an
// allowed request whose requested state already holds; callers must not
// mutate anything for it.
type Decision struct {
	Allowed  bool
	NoChange bool
	Reason   string
}

// Deny reasons for status changes. Handlers surface these verbatim so a
// denied caller can tell which rule fired.
const (
	ReasonSuperAdminImmutable = "super admin accounts cannot be deactivated"
	ReasonAdminPeerProtected  = "admins cannot change another admin's status"
	ReasonAdminSelfDeactivate = "admins cannot deactivate their own account"
	ReasonWrongEndpointStaff  = "target is not an admin account; use the staff status endpoint"
	ReasonWrongEndpointAdmin  = "target is an admin account; use the admin status endpoint"
	ReasonCustomerNotGoverned = "customer accounts are not governed by staff status"
)

func allow() Decision { return Decision{Allowed: true} }

func allowNoChange() Decision { return Decision{Allowed: true, NoChange: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// AuthorizeStatusChange evaluates an active-flag change against the shared
// rule set. Rules are checked in order; the first match wins.
func AuthorizeStatusChange(scope TargetScope, in StatusChange) Decision {
	// A super admin account can never be switched off, no matter who asks.
	if in.TargetRole == domain.RoleSuperAdmin && !in.RequestedActive {
		return deny(ReasonSuperAdminImmutable)
	}

	if in.TargetRole == domain.RoleAdmin && in.ActorRole != domain.RoleSuperAdmin {
		if !in.ActorIsTarget {
			return deny(ReasonAdminPeerProtected)
		}
		if !in.RequestedActive {
			return deny(ReasonAdminSelfDeactivate)
		}
	}

	switch scope {
	case ScopeAdminAccounts:
		if in.TargetRole != domain.RoleAdmin && in.TargetRole != domain.RoleSuperAdmin {
			return deny(ReasonWrongEndpointStaff)
		}
	case ScopeStaffAccounts:
		if in.TargetRole == domain.RoleAdmin || in.TargetRole == domain.RoleSuperAdmin {
			return deny(ReasonWrongEndpointAdmin)
		}
		if in.TargetRole == domain.RoleCustomer {
			return deny(ReasonCustomerNotGoverned)
		}
	}

	if in.TargetActive == in.RequestedActive {
		return allowNoChange()
	}
	return allow()
}
