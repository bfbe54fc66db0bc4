package services

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/you/contactsvc/domain"
)

// Policy-gated routes
const (
	AvatarResource = "/users/avatar"
	AdminResource  = "/admin/*"
)

// Subject returns the casbin subject for a role
func Subject(role domain.Role) string {
	return "role_" + string(role)
}

// DefaultPolicies returns the policies seeded at startup.
// selfServiceAvatar lets USER accounts upload their own avatar.
func DefaultPolicies(selfServiceAvatar bool) [][]string {
	policies := [][]string{
		{Subject(domain.RoleAdmin), AvatarResource, "POST"},
		{Subject(domain.RoleAdmin), AdminResource, "(GET)|(POST)|(DELETE)"},
	}
	if selfServiceAvatar {
		policies = append(policies, []string{Subject(domain.RoleUser), AvatarResource, "POST"})
	}
	return policies
}

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// AddPolicy implements domain.PolicyService. role is a role name such as "USER".
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	rule, err := policyRule(role, resource, action)
	if err != nil {
		return err
	}
	_, err = p.enforcer.AddPolicy(rule...)
	return err
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	rule, err := policyRule(role, resource, action)
	if err != nil {
		return err
	}
	_, err = p.enforcer.RemovePolicy(rule...)
	return err
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role domain.Role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(Subject(role), resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// SyncDefaults adds the startup policies and takes the USER avatar grant away
// again when self service is switched off. Each rule is written through the
// adapter on its own; the stored policy is never rewritten as a whole.
func (p *PolicyServiceImpl) SyncDefaults(selfServiceAvatar bool) error {
	for _, rule := range DefaultPolicies(selfServiceAvatar) {
		if _, err := p.enforcer.AddPolicy(toParams(rule)...); err != nil {
			return fmt.Errorf("failed to seed policy %v: %w", rule, err)
		}
	}
	if !selfServiceAvatar {
		if _, err := p.enforcer.RemovePolicy(Subject(domain.RoleUser), AvatarResource, "POST"); err != nil {
			return fmt.Errorf("failed to drop self-service avatar policy: %w", err)
		}
	}
	return nil
}

func policyRule(role, resource, action string) ([]interface{}, error) {
	if strings.TrimSpace(role) == "" {
		return nil, domain.ErrInvalidRole
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if resource == "" || action == "" {
		return nil, fmt.Errorf("%w: resource and action are required", domain.ErrInvalidInput)
	}
	return []interface{}{Subject(parsed), resource, action}, nil
}

func toParams(rule []string) []interface{} {
	params := make([]interface{}, len(rule))
	for i, v := range rule {
		params[i] = v
	}
	return params
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*PolicyServiceImpl)(nil)
