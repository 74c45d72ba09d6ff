package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/presentation"
)

// ContractHandler serves /api/contracts.
type ContractHandler struct {
	svc    presentation.Contracts
	logger *zap.Logger
}

func NewContractHandler(svc presentation.Contracts, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{svc: svc, logger: logger}
}

// Register attaches the routes.
//
//	GET    /contracts                    all contracts
//	GET    /contracts/active             active contracts
//	GET    /contracts/:id                one contract
//	GET    /contracts/summary/:id        installment totals
//	GET    /contracts/beneficiary/:id    contracts of a beneficiary
//	GET    /contracts/schedule/:id       dated installments
//	POST   /contracts                    create with schedule
//	POST   /contracts/preview            schedule without storing
//	PUT    /contracts/:id                update terms
//	PUT    /contracts/finalize/:id       finalize
//	DELETE /contracts/:id                delete when nothing is paid
func (h *ContractHandler) Register(r gin.IRouter) {
	g := r.Group("/contracts")
	g.GET("", h.list)
	g.GET("/:action", h.getOne)
	g.GET("/:action/:id", h.getBy)
	g.POST("", h.create)
	g.POST("/:action", h.postAction)
	g.PUT("/:action", h.update)
	g.PUT("/:action/:id", h.putAction)
	g.DELETE("/:action", h.delete)
}

func (h *ContractHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, "list contracts", err)
		return
	}
	respond(c, http.StatusOK, "", nonNil(list))
}

func (h *ContractHandler) getOne(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Param("action") == "active" {
		list, err := h.svc.ListActive(ctx)
		if err != nil {
			fail(c, h.logger, "list active contracts", err)
			return
		}
		respond(c, http.StatusOK, "", nonNil(list))
		return
	}

	contract, err := h.svc.Get(ctx, c.Param("action"))
	if err != nil {
		fail(c, h.logger, "get contract", err)
		return
	}
	respond(c, http.StatusOK, "", contract)
}

func (h *ContractHandler) getBy(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	switch c.Param("action") {
	case "summary":
		summary, err := h.svc.Summary(ctx, id)
		if err != nil {
			fail(c, h.logger, "contract summary", err)
			return
		}
		respond(c, http.StatusOK, "", summary)
	case "beneficiary":
		list, err := h.svc.ListByBeneficiary(ctx, id)
		if err != nil {
			fail(c, h.logger, "list contracts by beneficiary", err)
			return
		}
		respond(c, http.StatusOK, "", nonNil(list))
	case "schedule":
		schedule, err := h.svc.Schedule(ctx, id)
		if err != nil {
			fail(c, h.logger, "contract schedule", err)
			return
		}
		respond(c, http.StatusOK, "", schedule)
	default:
		reject(c, http.StatusNotFound, "unknown action")
	}
}

func (h *ContractHandler) create(c *gin.Context) {
	var req dto.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, http.StatusBadRequest, "invalid request body")
		return
	}
	contract, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, "create contract", err)
		return
	}
	respond(c, http.StatusCreated, "Contract created", contract)
}

func (h *ContractHandler) postAction(c *gin.Context) {
	if c.Param("action") != "preview" {
		reject(c, http.StatusNotFound, "unknown action")
		return
	}
	var req dto.SchedulePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, http.StatusBadRequest, "invalid request body")
		return
	}
	preview, err := h.svc.Preview(req)
	if err != nil {
		fail(c, h.logger, "preview schedule", err)
		return
	}
	respond(c, http.StatusOK, "", preview)
}

func (h *ContractHandler) update(c *gin.Context) {
	var req dto.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = c.Param("action")
	contract, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, "update contract", err)
		return
	}
	respond(c, http.StatusOK, "Contract updated", contract)
}

func (h *ContractHandler) putAction(c *gin.Context) {
	if c.Param("action") != "finalize" {
		reject(c, http.StatusNotFound, "unknown action")
		return
	}
	contract, err := h.svc.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, "finalize contract", err)
		return
	}
	respond(c, http.StatusOK, "Contract finalized", contract)
}

func (h *ContractHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("action")); err != nil {
		fail(c, h.logger, "delete contract", err)
		return
	}
	respond(c, http.StatusOK, "Contract deleted", nil)
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
