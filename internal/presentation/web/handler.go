// Package web serves the server-rendered pages. Every mutation is a form
// post that redirects back with a one-shot flash message.
package web

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/infrastructure/flash"
	"github.com/prestamos/loan-service/internal/presentation"
	"github.com/prestamos/loan-service/pkg/money"
)

// Handler renders the beneficiaries, contracts and payments pages.
type Handler struct {
	svc    presentation.Services
	flash  flash.Store
	pages  pages
	money  money.Formatter
	logger *zap.Logger
}

// NewHandler parses the embedded templates. Amounts are rendered with f.
func NewHandler(svc presentation.Services, store flash.Store, f money.Formatter, logger *zap.Logger) (*Handler, error) {
	p, err := parsePages(f)
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, flash: store, pages: p, money: f, logger: logger}, nil
}

// Register attaches the page and form routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/contracts") })

	r.GET("/beneficiaries", h.beneficiariesPage)
	r.POST("/beneficiaries", h.createBeneficiary)
	r.POST("/beneficiaries/:id/update", h.updateBeneficiary)
	r.POST("/beneficiaries/:id/delete", h.deleteBeneficiary)

	r.GET("/contracts", h.contractsPage)
	r.GET("/contracts/:id", h.contractPage)
	r.POST("/contracts", h.createContract)
	r.POST("/contracts/:id/update", h.updateContract)
	r.POST("/contracts/:id/finalize", h.finalizeContract)
	r.POST("/contracts/:id/delete", h.deleteContract)

	r.GET("/payments", h.paymentsPage)
	r.GET("/payments/export", h.exportPayments)
	r.POST("/payments/:id", h.registerPayment)
	r.POST("/payments/:id/reverse", h.reversePayment)
}

// ---------------------------------------------------------------------------
// Flash plumbing
// ---------------------------------------------------------------------------

// done stores the outcome of a form post and redirects to target.
func (h *Handler) done(c *gin.Context, target, success string, err error) {
	msg := flash.Message{Level: flash.LevelSuccess, Text: success}
	if err != nil {
		msg = flash.Message{Level: flash.LevelError, Text: presentation.PublicMessage(err)}
		if presentation.HTTPStatus(err) >= http.StatusInternalServerError {
			h.logger.Error("form post failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
	}
	if perr := h.flash.Put(c.Request.Context(), sessionID(c), msg); perr != nil {
		h.logger.Warn("store flash message", zap.Error(perr))
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) popFlash(c *gin.Context) *flash.Message {
	msg, ok, err := h.flash.Pop(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logger.Warn("read flash message", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return &msg
}

// show renders a page, or a plain error when loading its data failed.
func (h *Handler) show(c *gin.Context, page, title string, data any, err error) {
	if err != nil {
		status := presentation.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("load page", zap.String("page", page), zap.Error(err))
		}
		c.String(status, presentation.PublicMessage(err))
		return
	}
	v := view{Title: title, Active: page, Flash: h.popFlash(c), Data: data}
	if err := h.pages.render(c, page, v); err != nil {
		h.logger.Error("render page", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, presentation.InternalErrorMessage)
	}
}

// ---------------------------------------------------------------------------
// Beneficiaries
// ---------------------------------------------------------------------------

type beneficiariesData struct {
	Query string
	List  []dto.BeneficiaryResponse
	Edit  *dto.BeneficiaryResponse
}

func (h *Handler) beneficiariesPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := beneficiariesData{Query: c.Query("q")}

	list, err := h.svc.Beneficiaries.List(ctx, dto.SearchBeneficiariesRequest{Term: data.Query})
	if err == nil && c.Query("edit") != "" {
		var b dto.BeneficiaryResponse
		if b, err = h.svc.Beneficiaries.Get(ctx, c.Query("edit")); err == nil {
			data.Edit = &b
		}
	}
	data.List = list
	h.show(c, "beneficiaries", "Beneficiaries", data, err)
}

func (h *Handler) createBeneficiary(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBind(&req); err != nil {
		h.done(c, "/beneficiaries", "", badForm(err))
		return
	}
	b, err := h.svc.Beneficiaries.Register(c.Request.Context(), req)
	h.done(c, "/beneficiaries", fmt.Sprintf("Beneficiary %s registered", b.FullName), err)
}

func (h *Handler) updateBeneficiary(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBind(&req); err != nil {
		h.done(c, "/beneficiaries", "", badForm(err))
		return
	}
	req.ID = c.Param("id")
	b, err := h.svc.Beneficiaries.Update(c.Request.Context(), req)
	h.done(c, "/beneficiaries", fmt.Sprintf("Beneficiary %s updated", b.FullName), err)
}

func (h *Handler) deleteBeneficiary(c *gin.Context) {
	err := h.svc.Beneficiaries.Delete(c.Request.Context(), c.Param("id"))
	h.done(c, "/beneficiaries", "Beneficiary deleted", err)
}

// ---------------------------------------------------------------------------
// Contracts
// ---------------------------------------------------------------------------

type contractsData struct {
	List          []dto.ContractResponse
	Beneficiaries []dto.BeneficiaryResponse
	Edit          *dto.ContractResponse
	ActiveOnly    bool
}

func (h *Handler) contractsPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := contractsData{ActiveOnly: c.Query("active") == "1"}

	var err error
	if data.ActiveOnly {
		data.List, err = h.svc.Contracts.ListActive(ctx)
	} else {
		data.List, err = h.svc.Contracts.List(ctx)
	}
	if err == nil {
		data.Beneficiaries, err = h.svc.Beneficiaries.List(ctx, dto.SearchBeneficiariesRequest{})
	}
	if err == nil && c.Query("edit") != "" {
		var contract dto.ContractResponse
		if contract, err = h.svc.Contracts.Get(ctx, c.Query("edit")); err == nil {
			data.Edit = &contract
		}
	}
	h.show(c, "contracts", "Contracts", data, err)
}

type contractData struct {
	Summary  dto.ContractSummaryResponse
	Schedule dto.ContractScheduleResponse
}

func (h *Handler) contractPage(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var data contractData
	summary, err := h.svc.Contracts.Summary(ctx, id)
	if err == nil {
		data.Summary = summary
		data.Schedule, err = h.svc.Contracts.Schedule(ctx, id)
	}
	h.show(c, "contract", "Contract", data, err)
}

func (h *Handler) createContract(c *gin.Context) {
	var req dto.ContractRequest
	if err := c.ShouldBind(&req); err != nil {
		h.done(c, "/contracts", "", badForm(err))
		return
	}
	contract, err := h.svc.Contracts.Create(c.Request.Context(), req)
	h.done(c, "/contracts", fmt.Sprintf("Contract created, monthly installment %s", h.money.Format(contract.Installment)), err)
}

func (h *Handler) updateContract(c *gin.Context) {
	var req dto.ContractRequest
	if err := c.ShouldBind(&req); err != nil {
		h.done(c, "/contracts", "", badForm(err))
		return
	}
	req.ID = c.Param("id")
	_, err := h.svc.Contracts.Update(c.Request.Context(), req)
	h.done(c, "/contracts", "Contract updated", err)
}

func (h *Handler) finalizeContract(c *gin.Context) {
	_, err := h.svc.Contracts.Finalize(c.Request.Context(), c.Param("id"))
	h.done(c, "/contracts", "Contract finalized", err)
}

func (h *Handler) deleteContract(c *gin.Context) {
	err := h.svc.Contracts.Delete(c.Request.Context(), c.Param("id"))
	h.done(c, "/contracts", "Contract deleted", err)
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

type paymentsData struct {
	DNI      string
	Lookup   *dto.ActiveContractLookupResponse
	NotFound string
	Upcoming []dto.PaymentResponse
	Paid     []dto.PaymentResponse
}

func (h *Handler) paymentsPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := paymentsData{DNI: c.Query("dni")}

	if data.DNI != "" {
		found, err := h.svc.Payments.ActiveContractByDNI(ctx, data.DNI)
		switch {
		case err == nil:
			data.Lookup = &found
		case presentation.HTTPStatus(err) < http.StatusInternalServerError:
			data.NotFound = presentation.PublicMessage(err)
		default:
			h.show(c, "payments", "Payments", nil, err)
			return
		}
	}

	upcoming, err := h.svc.Payments.Upcoming(ctx, 0)
	if err == nil {
		data.Upcoming = upcoming
		data.Paid, err = h.svc.Payments.Paid(ctx)
	}
	h.show(c, "payments", "Payments", data, err)
}

func (h *Handler) registerPayment(c *gin.Context) {
	req := dto.RegisterPaymentRequest{InstallmentID: c.Param("id"), Medium: c.PostForm("medium")}
	payment, err := h.svc.Payments.Register(c.Request.Context(), req)

	msg := "Payment registered"
	if err == nil && payment.Penalty.IsPositive() {
		msg = fmt.Sprintf("Payment registered with a late penalty of %s", h.money.Format(payment.Penalty))
	}
	h.done(c, paymentsTarget(c), msg, err)
}

func (h *Handler) reversePayment(c *gin.Context) {
	_, err := h.svc.Payments.Reverse(c.Request.Context(), c.Param("id"))
	h.done(c, paymentsTarget(c), "Payment reversed", err)
}

func (h *Handler) exportPayments(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.Payments.Export(c.Request.Context(), &buf); err != nil {
		h.done(c, "/payments", "", err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=payments.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// paymentsTarget returns to the DNI lookup the form was posted from.
func paymentsTarget(c *gin.Context) string {
	if dni := c.PostForm("dni"); dni != "" {
		return "/payments?" + url.Values{"dni": {dni}}.Encode()
	}
	return "/payments"
}

func badForm(err error) error {
	return apperror.Validation("invalid form data: %v", err)
}
