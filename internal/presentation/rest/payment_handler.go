package rest

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/presentation"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "payments.xlsx"
)

// PaymentHandler serves /api/payments.
type PaymentHandler struct {
	svc    presentation.Payments
	logger *zap.Logger
}

func NewPaymentHandler(svc presentation.Payments, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, logger: logger}
}

// Register attaches the routes.
//
//	GET /payments                          paid installments
//	GET /payments/upcoming?limit=n         pending installments of active contracts
//	GET /payments/export                   paid installments as xlsx
//	GET /payments/pending/:contractId      pending installments of a contract
//	GET /payments/dni/:dni                 active contract and pending installments
//	POST /payments/:installmentId          register a payment, body {"medium": ...}
//	PUT /payments/reverse/:installmentId   undo a payment
func (h *PaymentHandler) Register(r gin.IRouter) {
	g := r.Group("/payments")
	g.GET("", h.paid)
	g.GET("/:action", h.getAction)
	g.GET("/:action/:id", h.getBy)
	g.POST("/:action", h.register)
	g.PUT("/:action/:id", h.putAction)
}

func (h *PaymentHandler) paid(c *gin.Context) {
	list, err := h.svc.Paid(c.Request.Context())
	if err != nil {
		fail(c, h.logger, "list payments", err)
		return
	}
	respond(c, http.StatusOK, "", nonNil(list))
}

func (h *PaymentHandler) getAction(c *gin.Context) {
	switch c.Param("action") {
	case "upcoming":
		h.upcoming(c)
	case "export":
		h.export(c)
	default:
		reject(c, http.StatusNotFound, "unknown action")
	}
}

func (h *PaymentHandler) upcoming(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			reject(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	list, err := h.svc.Upcoming(c.Request.Context(), limit)
	if err != nil {
		fail(c, h.logger, "list upcoming installments", err)
		return
	}
	respond(c, http.StatusOK, "", nonNil(list))
}

// export renders into a buffer first so that a failure can still produce
// an error envelope.
func (h *PaymentHandler) export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request.Context(), &buf); err != nil {
		fail(c, h.logger, "export payments", err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *PaymentHandler) getBy(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Param("action") {
	case "pending":
		list, err := h.svc.Pending(ctx, c.Param("id"))
		if err != nil {
			fail(c, h.logger, "list pending installments", err)
			return
		}
		respond(c, http.StatusOK, "", nonNil(list))
	case "dni":
		found, err := h.svc.ActiveContractByDNI(ctx, c.Param("id"))
		if err != nil {
			fail(c, h.logger, "find active contract by dni", err)
			return
		}
		respond(c, http.StatusOK, "", found)
	default:
		reject(c, http.StatusNotFound, "unknown action")
	}
}

func (h *PaymentHandler) register(c *gin.Context) {
	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.InstallmentID = c.Param("action")
	payment, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, "register payment", err)
		return
	}
	respond(c, http.StatusOK, "Payment registered", payment)
}

func (h *PaymentHandler) putAction(c *gin.Context) {
	if c.Param("action") != "reverse" {
		reject(c, http.StatusNotFound, "unknown action")
		return
	}
	inst, err := h.svc.Reverse(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, "reverse payment", err)
		return
	}
	respond(c, http.StatusOK, "Payment reversed", inst)
}
