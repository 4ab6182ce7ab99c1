package utils

import (
	"fmt"
	"math"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// LoginUser 当前登录用户信息
type LoginUser struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Username  string `json:"name"`
	CompanyID string `json:"companyId"`
}

// GetUser 从请求上下文中获取当前登录用户
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("GetUser 未授权访问")
	}

	// 处理不同类型的 claims
	var claims map[string]interface{}
	switch v := currentUser.(type) {
	case jwt.MapClaims:
		claims = make(map[string]interface{})
		for key, val := range v {
			claims[key] = val
		}
	case map[string]interface{}:
		claims = v
	default:
		return nil, fmt.Errorf("无法处理用户信息格式")
	}

	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户ID")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户角色")
	}

	username, _ := claims["username"].(string)
	companyID, _ := claims["companyId"].(string)

	return &LoginUser{
		ID:        id,
		Role:      role,
		Username:  username,
		CompanyID: companyID,
	}, nil
}

// Clamp 将数值限制在[min, max]区间内
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Round2 四舍五入保留两位小数
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
