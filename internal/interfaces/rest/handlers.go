package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/application/services"
	"github.com/billingbridge/getnet-gateway/internal/domain"
)

// tenantHeader scopes every call to a billing tenant.
const tenantHeader = "X-Tenant-Id"

// Handlers exposes the orchestration services over HTTP to the host
// platform.
type Handlers struct {
	authorize *services.AuthorizeService
	capture   *services.CaptureService
	void      *services.VoidService
	refund    *services.RefundService
	methods   *services.PaymentMethodService
	query     *services.QueryService
	now       func() time.Time
}

func NewHandlers(
	authorize *services.AuthorizeService,
	capture *services.CaptureService,
	void *services.VoidService,
	refund *services.RefundService,
	methods *services.PaymentMethodService,
	query *services.QueryService,
) *Handlers {
	return &Handlers{
		authorize: authorize,
		capture:   capture,
		void:      void,
		refund:    refund,
		methods:   methods,
		query:     query,
		now:       time.Now,
	}
}

func (h *Handlers) callContext(r *http.Request) (domain.CallContext, error) {
	tenantID, err := uuid.Parse(r.Header.Get(tenantHeader))
	if err != nil {
		return domain.CallContext{}, application.NewInvalidInputError(
			errors.New("missing or malformed " + tenantHeader + " header"))
	}
	return domain.CallContext{TenantID: tenantID, Now: h.now().UTC()}, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, application.NewInvalidInputError(
			errors.New("malformed " + name + " path parameter"))
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}

func (h *Handlers) paymentCommand(r *http.Request) (services.PaymentCommand, error) {
	callCtx, err := h.callContext(r)
	if err != nil {
		return services.PaymentCommand{}, err
	}
	kbPaymentID, err := pathUUID(r, "kbPaymentId")
	if err != nil {
		return services.PaymentCommand{}, err
	}

	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		return services.PaymentCommand{}, err
	}
	accountID, err := uuid.Parse(req.KbAccountID)
	if err != nil {
		return services.PaymentCommand{}, application.NewInvalidInputError(errors.New("malformed kbAccountId"))
	}
	transactionID, err := uuid.Parse(req.KbTransactionID)
	if err != nil {
		return services.PaymentCommand{}, application.NewInvalidInputError(errors.New("malformed kbTransactionId"))
	}
	methodID, err := uuid.Parse(req.KbPaymentMethodID)
	if err != nil {
		return services.PaymentCommand{}, application.NewInvalidInputError(errors.New("malformed kbPaymentMethodId"))
	}

	return services.PaymentCommand{
		KbAccountID:       accountID,
		KbPaymentID:       kbPaymentID,
		KbTransactionID:   transactionID,
		KbPaymentMethodID: methodID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Context:           callCtx,
	}, nil
}

func (h *Handlers) AuthorizePayment(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.paymentCommand(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	result := h.authorize.Authorize(r.Context(), cmd)
	WriteJSON(w, http.StatusOK, toTransactionResponse(result))
}

func (h *Handlers) PurchasePayment(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.paymentCommand(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	result := h.authorize.Purchase(r.Context(), cmd)
	WriteJSON(w, http.StatusOK, toTransactionResponse(result))
}

func (h *Handlers) CapturePayment(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	kbPaymentID, err := pathUUID(r, "kbPaymentId")
	if err != nil {
		WriteError(w, err)
		return
	}
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	accountID, err := uuid.Parse(req.KbAccountID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbAccountId")))
		return
	}
	transactionID, err := uuid.Parse(req.KbTransactionID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbTransactionId")))
		return
	}

	result, err := h.capture.Capture(r.Context(), services.CaptureCommand{
		KbAccountID:     accountID,
		KbPaymentID:     kbPaymentID,
		KbTransactionID: transactionID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Context:         callCtx,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toTransactionResponse(*result))
}

func (h *Handlers) VoidPayment(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	kbPaymentID, err := pathUUID(r, "kbPaymentId")
	if err != nil {
		WriteError(w, err)
		return
	}
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	accountID, err := uuid.Parse(req.KbAccountID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbAccountId")))
		return
	}
	transactionID, err := uuid.Parse(req.KbTransactionID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbTransactionId")))
		return
	}

	result := h.void.Void(r.Context(), services.VoidCommand{
		KbAccountID:     accountID,
		KbPaymentID:     kbPaymentID,
		KbTransactionID: transactionID,
		Context:         callCtx,
	})
	WriteJSON(w, http.StatusOK, toTransactionResponse(result))
}

func (h *Handlers) RefundPayment(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	kbPaymentID, err := pathUUID(r, "kbPaymentId")
	if err != nil {
		WriteError(w, err)
		return
	}
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	accountID, err := uuid.Parse(req.KbAccountID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbAccountId")))
		return
	}
	transactionID, err := uuid.Parse(req.KbTransactionID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbTransactionId")))
		return
	}

	result := h.refund.Refund(r.Context(), services.RefundCommand{
		KbAccountID:     accountID,
		KbPaymentID:     kbPaymentID,
		KbTransactionID: transactionID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Context:         callCtx,
	})
	WriteJSON(w, http.StatusOK, toTransactionResponse(result))
}

func (h *Handlers) GetPaymentInfo(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	kbPaymentID, err := pathUUID(r, "kbPaymentId")
	if err != nil {
		WriteError(w, err)
		return
	}

	results, err := h.query.GetPaymentInfo(r.Context(), kbPaymentID, callCtx)
	if err != nil {
		WriteError(w, err)
		return
	}
	responses := make([]transactionResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, toTransactionResponse(result))
	}
	WriteJSON(w, http.StatusOK, responses)
}

func (h *Handlers) AddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	var req addPaymentMethodRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	accountID, err := uuid.Parse(req.KbAccountID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbAccountId")))
		return
	}
	methodID, err := uuid.Parse(req.KbPaymentMethodID)
	if err != nil {
		WriteError(w, application.NewInvalidInputError(errors.New("malformed kbPaymentMethodId")))
		return
	}

	err = h.methods.Add(r.Context(), services.AddPaymentMethodCommand{
		KbAccountID:       accountID,
		KbPaymentMethodID: methodID,
		Card: services.CardInput{
			CardID:          req.Card.CardID,
			Number:          req.Card.Number,
			ExpirationMonth: req.Card.ExpirationMonth,
			ExpirationYear:  req.Card.ExpirationYear,
			HolderName:      req.Card.HolderName,
		},
		SetDefault: req.IsDefault,
		Context:    callCtx,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, nil)
}

func (h *Handlers) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	methodID, err := pathUUID(r, "kbPaymentMethodId")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.methods.Delete(r.Context(), methodID, callCtx); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) SetDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	accountID, err := pathUUID(r, "kbAccountId")
	if err != nil {
		WriteError(w, err)
		return
	}
	methodID, err := pathUUID(r, "kbPaymentMethodId")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.methods.SetDefault(r.Context(), accountID, methodID, callCtx); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	accountID, err := pathUUID(r, "kbAccountId")
	if err != nil {
		WriteError(w, err)
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"

	infos, err := h.methods.List(r.Context(), accountID, refresh, callCtx)
	if err != nil {
		WriteError(w, err)
		return
	}
	responses := make([]paymentMethodInfoResponse, 0, len(infos))
	for _, info := range infos {
		responses = append(responses, paymentMethodInfoResponse{
			KbAccountID:       info.KbAccountID.String(),
			KbPaymentMethodID: info.KbPaymentMethodID.String(),
			ExternalKey:       info.ExternalKey,
			IsDefault:         info.IsDefault,
		})
	}
	WriteJSON(w, http.StatusOK, responses)
}

func (h *Handlers) GetPaymentMethodDetail(w http.ResponseWriter, r *http.Request) {
	callCtx, err := h.callContext(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	methodID, err := pathUUID(r, "kbPaymentMethodId")
	if err != nil {
		WriteError(w, err)
		return
	}

	detail, err := h.methods.GetDetail(r.Context(), methodID, callCtx)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, paymentMethodDetailResponse{
		CardID:          detail.CardID,
		Brand:           detail.Brand,
		LastFourDigits:  detail.LastFourDigits,
		ExpirationMonth: detail.ExpirationMonth,
		ExpirationYear:  detail.ExpirationYear,
		CardholderName:  detail.CardholderName,
		CustomerID:      detail.CustomerID,
		Status:          detail.Status,
	})
}
