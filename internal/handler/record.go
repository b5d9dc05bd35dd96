package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"budget-tracker/internal/middleware"
	"budget-tracker/internal/models"
	"budget-tracker/internal/util"
	"budget-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
)

// RecordHandler 负责预算记录相关接口
type RecordHandler struct {
	Engine *workflow.Engine
}

func NewRecordHandler(engine *workflow.Engine) *RecordHandler {
	return &RecordHandler{Engine: engine}
}

// ---------- 请求/响应结构 ----------

type createRecordReq struct {
	Month   int    `form:"month" json:"month"`
	Day     int    `form:"day" json:"day"`
	Purpose string `form:"purpose" json:"purpose" binding:"required"`
	Amount  string `form:"amount" json:"amount" binding:"required"`
}

type recordResp struct {
	ID                 uint      `json:"id"`
	Month              int       `json:"month"`
	Day                int       `json:"day"`
	Purpose            string    `json:"purpose"`
	Amount             string    `json:"amount"`
	Balance            string    `json:"balance"`
	Submitter          string    `json:"submitter"`
	ReceiptReceived    bool      `json:"receipt_received"`
	ReceiptVerified    bool      `json:"receipt_verified"`
	ManagerApproved    bool      `json:"manager_approved"`
	AccountantApproved bool      `json:"accountant_approved"`
	CreatedAt          time.Time `json:"created_at"`
}

func toRecordResp(r *models.BudgetRecord) recordResp {
	return recordResp{
		ID:                 r.ID,
		Month:              r.Month,
		Day:                r.Day,
		Purpose:            r.Purpose,
		Amount:             util.FormatAmount(r.Amount),
		Balance:            util.FormatAmount(r.Balance),
		Submitter:          r.Submitter,
		ReceiptReceived:    r.ReceiptReceived,
		ReceiptVerified:    r.ReceiptVerified,
		ManagerApproved:    r.ManagerApproved,
		AccountantApproved: r.AccountantApproved,
		CreatedAt:          r.CreatedAt,
	}
}

// ---------- 记录列表 ----------

// ListRecords returns the records visible to the caller: submitters see
// only their own, every other role sees all.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登入")
		return
	}

	records, err := h.Engine.ListVisible(user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢失敗")
		return
	}

	items := make([]recordResp, 0, len(records))
	for i := range records {
		items = append(items, toRecordResp(&records[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

// ---------- 新增记录 ----------

// AddRecord creates a budget record for the caller. Any authenticated
// caller may create one regardless of role. Month and day ranges are not
// enforced; only malformed numeric input is rejected.
func (h *RecordHandler) AddRecord(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登入")
		return
	}

	var req createRecordReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	req.Purpose = strings.TrimSpace(req.Purpose)
	if req.Purpose == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "請填寫用途")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "金額格式錯誤")
		return
	}

	record, err := h.Engine.CreateRecord(user, req.Month, req.Day, req.Purpose, amount)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "儲存失敗，請重試")
		return
	}

	util.Success(c, util.Response{
		"record": toRecordResp(record),
	})
}

// ---------- 审批流转 ----------

// UpdateReceiptReceived marks the receipt as signed for (role: signer).
func (h *RecordHandler) UpdateReceiptReceived(c *gin.Context) {
	h.applyTransitions(c, workflow.ReceiptReceived)
}

// UpdateReceiptVerified marks the receipt as verified (role: verifier).
func (h *RecordHandler) UpdateReceiptVerified(c *gin.Context) {
	h.applyTransitions(c, workflow.ReceiptVerified)
}

// Approve sets the manager and/or accountant approval depending on which
// form fields are present; both can land in one call. Each flag still
// requires its own role, a mismatch is silently ignored.
func (h *RecordHandler) Approve(c *gin.Context) {
	var transitions []workflow.Transition
	if _, ok := c.GetPostForm("manager_approve"); ok {
		transitions = append(transitions, workflow.ManagerApproved)
	}
	if _, ok := c.GetPostForm("accountant_approve"); ok {
		transitions = append(transitions, workflow.AccountantApproved)
	}
	h.applyTransitions(c, transitions...)
}

func (h *RecordHandler) applyTransitions(c *gin.Context, transitions ...workflow.Transition) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登入")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID 不合法")
		return
	}

	record, err := h.Engine.Apply(user, uint(id), transitions...)
	if err != nil {
		if errors.Is(err, workflow.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "記錄不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "更新失敗")
		}
		return
	}

	util.Success(c, util.Response{
		"record": toRecordResp(record),
	})
}
