package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	userSubjectFmt  = "user:%d"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service Casbin 授权服务
// 统一封装策略加载、授权判定与角色绑定逻辑
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforcer 返回底层 enforcer
func (s *Service) Enforcer() *casbin.SyncedEnforcer {
	if s == nil {
		return nil
	}
	return s.enforcer
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceUser 按用户 ID 判定授权
func (s *Service) EnforceUser(userID uint, obj, act string) (bool, error) {
	return s.Enforce(SubjectForUser(userID), obj, act)
}

// ReloadPolicy 重新加载策略
func (s *Service) ReloadPolicy() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.LoadPolicy()
}

// BindUserRole 将用户绑定到角色
func (s *Service) BindUserRole(userID uint, role string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	normalized, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	subject := SubjectForUser(userID)
	exists, err := s.enforcer.HasNamedGroupingPolicy("g", subject, normalized)
	if err != nil {
		return fmt.Errorf("check user role failed: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, normalized); err != nil {
		return fmt.Errorf("bind user role failed: %w", err)
	}
	return s.saveAndReload()
}

// UnbindUserRole 解除用户的角色绑定
func (s *Service) UnbindUserRole(userID uint, role string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	normalized, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveNamedGroupingPolicy("g", SubjectForUser(userID), normalized); err != nil {
		return fmt.Errorf("unbind user role failed: %w", err)
	}
	return s.saveAndReload()
}

// GetUserRoles 列出用户角色
func (s *Service) GetUserRoles(userID uint) ([]string, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	rules, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0, SubjectForUser(userID))
	if err != nil {
		return nil, fmt.Errorf("list user roles failed: %w", err)
	}
	roles := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 2 {
			continue
		}
		roles = append(roles, strings.TrimPrefix(rule[1], rolePrefix))
	}
	return roles, nil
}

func (s *Service) saveAndReload() error {
	if err := s.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("save authz policy failed: %w", err)
	}
	return s.enforcer.LoadPolicy()
}

// SubjectForUser 用户主体标识
func SubjectForUser(userID uint) string {
	return fmt.Sprintf(userSubjectFmt, userID)
}

// NormalizeRole 规范化角色标识
func NormalizeRole(role string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(role))
	trimmed = strings.TrimPrefix(trimmed, rolePrefix)
	if trimmed == "" {
		return "", fmt.Errorf("role is required")
	}
	return rolePrefix + trimmed, nil
}

// NormalizeObject 规范化资源路径（统一带 /api/v1 前缀）
func NormalizeObject(object string) string {
	trimmed := strings.TrimSpace(object)
	if trimmed == "" {
		return trimmed
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if !strings.HasPrefix(trimmed, apiV1Prefix) {
		trimmed = apiV1Prefix + trimmed
	}
	return trimmed
}

// NormalizeAction 规范化动作
func NormalizeAction(action string) string {
	trimmed := strings.TrimSpace(action)
	if trimmed == "*" {
		return trimmed
	}
	return strings.ToUpper(trimmed)
}
