package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharmaflow-backend/api/responses"
	"github.com/pharmaflow/pharmaflow-backend/api/validators"
	"github.com/pharmaflow/pharmaflow-backend/internal/orders"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
	"github.com/pharmaflow/pharmaflow-backend/pkg/logger"
)

type orderItemBody struct {
	MedicineID   string          `json:"medicineId" validate:"required,uuid"`
	MedicineName string          `json:"medicineName" validate:"required,max=256"`
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

type createOrderBody struct {
	DistributorID       string          `json:"distributorId" validate:"required,uuid"`
	Items               []orderItemBody `json:"items" validate:"required,min=1,dive"`
	SpecialInstructions *string         `json:"specialInstructions" validate:"omitempty,max=1024"`
}

type editOrderBody struct {
	Items               []orderItemBody `json:"items" validate:"omitempty,min=1,dive"`
	SpecialInstructions *string         `json:"specialInstructions" validate:"omitempty,max=1024"`
}

type statusBody struct {
	Status string `json:"status" validate:"required"`
}

type ordersResponse struct {
	Orders []orders.OrderView `json:"orders"`
}

type orderResponse struct {
	Order *orders.OrderView `json:"order"`
}

func itemInputs(body []orderItemBody) ([]orders.ItemInput, error) {
	items := make([]orders.ItemInput, 0, len(body))
	for _, item := range body {
		medicineID, err := validators.ParsePathUUID(item.MedicineID, "medicineId")
		if err != nil {
			return nil, err
		}
		items = append(items, orders.ItemInput{
			MedicineID:   medicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}
	return items, nil
}

// OrdersList returns the caller's orders, scoped by role.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		result, err := svc.List(r.Context(), actorFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ordersResponse{Orders: orders.FromModels(result)})
	}
}

// OrdersCreate places a new order against a distributor.
func OrdersCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var body createOrderBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		distributorID, err := validators.ParsePathUUID(body.DistributorID, "distributorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := itemInputs(body.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), orders.CreateOrderInput{
			Actor:               actorFromContext(r.Context()),
			DistributorID:       distributorID,
			Items:               items,
			SpecialInstructions: body.SpecialInstructions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, orderResponse{Order: orders.FromModel(order)})
	}
}

// OrdersGet returns one order the caller may see.
func OrdersGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), actorFromContext(r.Context()), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orderResponse{Order: orders.FromModel(order)})
	}
}

// OrdersEdit replaces items or instructions on a pending order.
func OrdersEdit(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body editOrderBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.EditOrderInput{
			Actor:               actorFromContext(r.Context()),
			OrderID:             orderID,
			SpecialInstructions: body.SpecialInstructions,
		}
		if body.Items != nil {
			items, err := itemInputs(body.Items)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Items = items
		}

		order, err := svc.Edit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orderResponse{Order: orders.FromModel(order)})
	}
}

// OrdersCancel hard-deletes a pending order.
func OrdersCancel(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Cancel(r.Context(), orders.CancelOrderInput{
			Actor:   actorFromContext(r.Context()),
			OrderID: orderID,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "order cancelled")
	}
}

// OrdersAdvanceStatus moves an order along the fulfillment lifecycle.
func OrdersAdvanceStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body statusBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.AdvanceStatus(r.Context(), orders.AdvanceStatusInput{
			Actor:   actorFromContext(r.Context()),
			OrderID: orderID,
			Status:  enums.OrderStatus(body.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orderResponse{Order: orders.FromModel(order)})
	}
}
