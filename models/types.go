package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleSUPER_ADMIN UserRole = "SUPER_ADMIN" // 超级管理员
	UserRoleEXECUTIVE   UserRole = "EXECUTIVE"   // 集团高管
	UserRoleMANAGER     UserRole = "MANAGER"     // 部门管理者
	UserRoleVIEWER      UserRole = "VIEWER"      // 只读用户
)

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// User 用户类型
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"` // 不返回密码
	Phone     string             `bson:"phone" json:"phone"`
	Role      UserRole           `bson:"role" json:"role"`
	Status    UserStatus         `bson:"status" json:"status"`
	CompanyID string             `bson:"companyId" json:"companyId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrgLevel 组织层级枚举，自上而下：集团 -> 子公司 -> 部门 -> 团队 -> 个人
type OrgLevel string

const (
	OrgLevelGroup      OrgLevel = "group"
	OrgLevelSubsidiary OrgLevel = "subsidiary"
	OrgLevelDepartment OrgLevel = "department"
	OrgLevelTeam       OrgLevel = "team"
	OrgLevelIndividual OrgLevel = "individual"
)

// ChildLevel 返回下一级组织层级，个人层级没有下级
func (l OrgLevel) ChildLevel() (OrgLevel, bool) {
	switch l {
	case OrgLevelGroup:
		return OrgLevelSubsidiary, true
	case OrgLevelSubsidiary:
		return OrgLevelDepartment, true
	case OrgLevelDepartment:
		return OrgLevelTeam, true
	case OrgLevelTeam:
		return OrgLevelIndividual, true
	default:
		return "", false
	}
}

// PerformanceDomain 绩效评分域
type PerformanceDomain string

const (
	DomainCombined PerformanceDomain = "combined" // 加权综合
	DomainStrategy PerformanceDomain = "strategy" // 战略执行
	DomainOKR      PerformanceDomain = "okr"      // OKR达成
	DomainKPI      PerformanceDomain = "kpi"      // KPI达成
)

// PerformanceRating 绩效评级（六档）
type PerformanceRating string

const (
	RatingExceptional    PerformanceRating = "exceptional"
	RatingStrong         PerformanceRating = "strong"
	RatingOnTrack        PerformanceRating = "on_track"
	RatingNeedsAttention PerformanceRating = "needs_attention"
	RatingAtRisk         PerformanceRating = "at_risk"
	RatingCritical       PerformanceRating = "critical"
)

// PerformanceTrend 环比趋势（五档）
type PerformanceTrend string

const (
	TrendStrongUp   PerformanceTrend = "strong_up"
	TrendUp         PerformanceTrend = "up"
	TrendStable     PerformanceTrend = "stable"
	TrendDown       PerformanceTrend = "down"
	TrendStrongDown PerformanceTrend = "strong_down"
)

// HealthStatus 健康状态（四档），反映数据是否可信、执行是否在轨，区别于评级
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
	HealthNoData   HealthStatus = "no_data"
)

// OrgEntityRef 组织实体引用，由组织目录查询返回
type OrgEntityRef struct {
	ID   string `bson:"entityId" json:"id"`
	Name string `bson:"name" json:"name"`
}

// OrgEntity 组织目录文档
type OrgEntity struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CompanyID      string             `bson:"companyId" json:"companyId"`
	EntityID       string             `bson:"entityId" json:"entityId"`
	Name           string             `bson:"name" json:"name"`
	Level          OrgLevel           `bson:"level" json:"level"`
	ParentEntityID string             `bson:"parentEntityId,omitempty" json:"parentEntityId,omitempty"`
	Status         string             `bson:"status" json:"status"` // active / archived
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
)
