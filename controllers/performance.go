package controllers

import (
	"net/http"
	"strconv"

	"github.com/BerniceZTT/strategy_end/models"
	"github.com/BerniceZTT/strategy_end/service"
	"github.com/BerniceZTT/strategy_end/utils"

	"github.com/gin-gonic/gin"
)

// PerformanceController 绩效聚合接口
type PerformanceController struct {
	engine *service.PerformanceEngine
}

// NewPerformanceController 创建绩效聚合接口
func NewPerformanceController(engine *service.PerformanceEngine) *PerformanceController {
	return &PerformanceController{engine: engine}
}

// Aggregate 计算单个实体的综合绩效
func (pc *PerformanceController) Aggregate(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.AggregationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("请求参数无效: "+err.Error()))
		return
	}

	result, err := pc.engine.Aggregate(c.Request.Context(), req.CompanyID, req.AggregationInput, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, result, "成功")
}

// SaveSnapshot 显式持久化一条聚合结果
func (pc *PerformanceController) SaveSnapshot(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.AggregationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("请求参数无效: "+err.Error()))
		return
	}

	// 快照持久化是独立于计算的显式写入
	record, err := pc.engine.Aggregate(c.Request.Context(), req.CompanyID, req.AggregationInput, user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := pc.engine.SaveAggregation(c.Request.Context(), req.CompanyID, record); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, record, "快照已保存", http.StatusCreated)
}

// GetSnapshot 按实体与期间读取已持久化的聚合结果
func (pc *PerformanceController) GetSnapshot(c *gin.Context) {
	entityID := c.Param("entityId")
	companyID := c.Query("companyId")
	if companyID == "" {
		utils.HandleError(c, utils.CreateBadRequestError("缺少companyId参数"))
		return
	}

	fiscalYear, err := strconv.Atoi(c.Query("fiscalYear"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的fiscalYear参数"))
		return
	}

	quarter, err := optionalIntQuery(c, "quarter")
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的quarter参数"))
		return
	}

	record, err := pc.engine.GetAggregation(c.Request.Context(), companyID, entityID, fiscalYear, quarter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if record == nil {
		utils.HandleError(c, utils.CreateNotFoundError("绩效快照"))
		return
	}

	utils.SuccessResponse(c, record, "成功")
}

// Hierarchy 构建整个公司的绩效层级树
func (pc *PerformanceController) Hierarchy(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		utils.HandleError(c, utils.CreateBadRequestError("缺少companyId参数"))
		return
	}

	fiscalYear, err := strconv.Atoi(c.Query("fiscalYear"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的fiscalYear参数"))
		return
	}

	quarter, err := optionalIntQuery(c, "quarter")
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的quarter参数"))
		return
	}

	hierarchy, err := pc.engine.BuildHierarchy(c.Request.Context(), companyID, fiscalYear, quarter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, hierarchy, "成功")
}

// Compare 跨实体绩效对比
func (pc *PerformanceController) Compare(c *gin.Context) {
	var req models.ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("请求参数无效: "+err.Error()))
		return
	}

	comparison, err := pc.engine.Compare(c.Request.Context(), req.CompanyID, req.Entities, req.Domain, req.FiscalYear, req.Quarter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, comparison, "成功")
}

// Heatmap 生成实体×评分域热力图
func (pc *PerformanceController) Heatmap(c *gin.Context) {
	var req models.HeatmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("请求参数无效: "+err.Error()))
		return
	}

	heatmap, err := pc.engine.Heatmap(c.Request.Context(), req.CompanyID, req.Entities, req.Domains, req.FiscalYear, req.Quarter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, heatmap, "成功")
}

// optionalIntQuery 解析可选的整数查询参数
func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
