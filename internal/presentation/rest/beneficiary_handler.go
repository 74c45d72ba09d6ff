package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/presentation"
)

// BeneficiaryHandler serves /api/beneficiaries.
type BeneficiaryHandler struct {
	svc    presentation.Beneficiaries
	logger *zap.Logger
}

func NewBeneficiaryHandler(svc presentation.Beneficiaries, logger *zap.Logger) *BeneficiaryHandler {
	return &BeneficiaryHandler{svc: svc, logger: logger}
}

// Register attaches the routes. The :action segment is either an id or the
// name of a lookup.
func (h *BeneficiaryHandler) Register(r gin.IRouter) {
	g := r.Group("/beneficiaries")
	g.GET("", h.list)
	g.GET("/:action", h.get)
	g.GET("/:action/:id", h.lookup)
	g.POST("", h.create)
	g.PUT("/:action", h.update)
	g.DELETE("/:action", h.delete)
}

func (h *BeneficiaryHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), dto.SearchBeneficiariesRequest{Term: c.Query("q")})
	if err != nil {
		fail(c, h.logger, "list beneficiaries", err)
		return
	}
	respond(c, http.StatusOK, "", nonNil(list))
}

func (h *BeneficiaryHandler) get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("action"))
	if err != nil {
		fail(c, h.logger, "get beneficiary", err)
		return
	}
	respond(c, http.StatusOK, "", b)
}

func (h *BeneficiaryHandler) lookup(c *gin.Context) {
	if c.Param("action") != "dni" {
		reject(c, http.StatusNotFound, "unknown action")
		return
	}
	found, err := h.svc.FindByDNI(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, "find beneficiary by dni", err)
		return
	}
	respond(c, http.StatusOK, "", found)
}

func (h *BeneficiaryHandler) create(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, http.StatusBadRequest, "invalid request body")
		return
	}
	b, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, "register beneficiary", err)
		return
	}
	respond(c, http.StatusCreated, "Beneficiary registered", b)
}

func (h *BeneficiaryHandler) update(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = c.Param("action")
	b, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, "update beneficiary", err)
		return
	}
	respond(c, http.StatusOK, "Beneficiary updated", b)
}

func (h *BeneficiaryHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("action")); err != nil {
		fail(c, h.logger, "delete beneficiary", err)
		return
	}
	respond(c, http.StatusOK, "Beneficiary deleted", nil)
}
