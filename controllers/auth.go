package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/repository"
	"github.com/BerniceZTT/strategy_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Login 用户登录
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("请求参数无效: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := repository.Collection(repository.UsersCollection).
		FindOne(ctx, bson.M{"username": req.Username}).
		Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.NewApiError("用户名或密码错误", http.StatusUnauthorized, "INVALID_CREDENTIALS"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if user.Status != models.UserStatusAPPROVED {
		utils.HandleError(c, utils.NewApiError("账户未审核通过", http.StatusForbidden, "ACCOUNT_NOT_APPROVED"))
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.HandleError(c, utils.NewApiError("用户名或密码错误", http.StatusUnauthorized, "INVALID_CREDENTIALS"))
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, models.LoginResponse{Token: token, User: user}, "登录成功")
}

// GetCurrentUser 获取当前登录用户信息
func GetCurrentUser(c *gin.Context) {
	loginUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := repository.FindUserByID(loginUser.ID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("用户"))
		return
	}

	utils.SuccessResponse(c, user, "成功")
}
