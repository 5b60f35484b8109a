// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "fmt"

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Security SecurityServiceConfig // Security related config // 安全相关配置
}

// SecurityServiceConfig security configuration
// SecurityServiceConfig 安全配置
type SecurityServiceConfig struct {
	DeletePolicy DeletePolicy // Who may delete which items // 谁可以删除哪些条目
}

// DeletePolicy decides whether a caller may delete an item
// DeletePolicy 决定调用者能否删除条目
type DeletePolicy string

const (
	// DeletePolicyOwner public items by anyone, owned items only by their owner
	// DeletePolicyOwner 公开条目任何人可删，私有条目仅所有者可删
	DeletePolicyOwner DeletePolicy = "owner"
	// DeletePolicyOpen any caller may delete any item
	// DeletePolicyOpen 任何调用者都可删除任意条目
	DeletePolicyOpen DeletePolicy = "open"
)

// ParseDeletePolicy empty means owner
// ParseDeletePolicy 为空时使用 owner
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case "", DeletePolicyOwner:
		return DeletePolicyOwner, nil
	case DeletePolicyOpen:
		return DeletePolicyOpen, nil
	}
	return "", fmt.Errorf("unknown delete policy %q, must be owner or open", s)
}
