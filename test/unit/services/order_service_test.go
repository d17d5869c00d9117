package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	impl "github.com/commercelab/microshop/internal/application/services"
	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/commercelab/microshop/internal/core/domain/order"
	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/commercelab/microshop/internal/infrastructure/memstore"
	tmocks "github.com/commercelab/microshop/test/mocks"
)

func newOrderRequest() *order.CreateOrderRequest {
	return &order.CreateOrderRequest{
		UserID: "u1",
		Products: []order.Item{
			{ProductID: 1, Quantity: 2, ProductPrice: 10},
		},
	}
}

func TestCreateOrder_StoresAndPublishes(t *testing.T) {
	store := memstore.NewOrderStore(nil)
	publisher := &tmocks.PublisherMock{StateVal: ports.StateReady}
	svc := impl.NewOrderService(store, publisher, time.Second, quietLogger())

	id, err := svc.CreateOrder(context.Background(), newOrderRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := store.Get(id)
	if !ok {
		t.Fatalf("order %d not in store", id)
	}
	if stored.Status != order.StatusPending {
		t.Fatalf("status = %s, want PENDING", stored.Status)
	}
	if stored.TotalAmount != 20 {
		t.Fatalf("total = %v, want 20", stored.TotalAmount)
	}

	msgs := publisher.Messages()
	if len(msgs) != 1 || msgs[0].Queue != order.QueueCreated {
		t.Fatalf("unexpected publications: %+v", msgs)
	}

	// the enqueued bytes must be exactly the stored order's serialization
	want, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(msgs[0].Body, want) {
		t.Fatalf("published bytes differ from stored order:\n got %s\nwant %s", msgs[0].Body, want)
	}
}

func TestCreateOrder_RefusedWhileBrokerNotReady(t *testing.T) {
	store := memstore.NewOrderStore(nil)
	for _, state := range []ports.ConnectionState{ports.StateDisconnected, ports.StateConnecting, ports.StateReconnecting} {
		publisher := &tmocks.PublisherMock{StateVal: state}
		svc := impl.NewOrderService(store, publisher, time.Second, quietLogger())

		_, err := svc.CreateOrder(context.Background(), newOrderRequest())
		if apperror.KindOf(err) != apperror.KindDependencyUnavailable {
			t.Fatalf("state %s: expected dependency-unavailable, got %v", state, err)
		}
		if len(publisher.Messages()) != 0 {
			t.Fatalf("state %s: event published while not ready", state)
		}
	}
	if got := len(store.List()); got != 0 {
		t.Fatalf("%d orders stored while broker not ready", got)
	}
}

func TestCreateOrder_PublishFailureIsSurfaced(t *testing.T) {
	store := memstore.NewOrderStore(nil)
	publisher := &tmocks.PublisherMock{
		StateVal:  ports.StateReady,
		PublishFn: func(context.Context, string, any) error { return errors.New("broker timeout") },
	}
	svc := impl.NewOrderService(store, publisher, time.Second, quietLogger())

	_, err := svc.CreateOrder(context.Background(), newOrderRequest())
	if apperror.KindOf(err) != apperror.KindDependencyUnavailable {
		t.Fatalf("expected dependency-unavailable, got %v", err)
	}

	// the order stays stored and the error names it so callers can compensate
	orders := store.List()
	if len(orders) != 1 {
		t.Fatalf("expected 1 stored order, got %d", len(orders))
	}
	var ae *apperror.Error
	if !errors.As(err, &ae) || !strings.Contains(ae.Message(), "was stored") {
		t.Fatalf("error does not surface the stored order: %v", err)
	}
}

func TestCreateOrder_TotalMismatchRejected(t *testing.T) {
	svc := impl.NewOrderService(memstore.NewOrderStore(nil), &tmocks.PublisherMock{StateVal: ports.StateReady}, time.Second, quietLogger())

	req := newOrderRequest()
	badTotal := 19.5
	req.TotalAmount = &badTotal
	if _, err := svc.CreateOrder(context.Background(), req); apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrder_MatchingClientTotalAccepted(t *testing.T) {
	svc := impl.NewOrderService(memstore.NewOrderStore(nil), &tmocks.PublisherMock{StateVal: ports.StateReady}, time.Second, quietLogger())

	req := newOrderRequest()
	total := 20.0
	req.TotalAmount = &total
	if _, err := svc.CreateOrder(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateOrder_ItemValidation(t *testing.T) {
	svc := impl.NewOrderService(memstore.NewOrderStore(nil), &tmocks.PublisherMock{StateVal: ports.StateReady}, time.Second, quietLogger())

	cases := []*order.CreateOrderRequest{
		{UserID: "", Products: []order.Item{{ProductID: 1, Quantity: 1, ProductPrice: 1}}},
		{UserID: "u1"},
		{UserID: "u1", Products: []order.Item{{ProductID: 0, Quantity: 1, ProductPrice: 1}}},
		{UserID: "u1", Products: []order.Item{{ProductID: 1, Quantity: 0, ProductPrice: 1}}},
		{UserID: "u1", Products: []order.Item{{ProductID: 1, Quantity: 1, ProductPrice: -1}}},
	}
	for i, req := range cases {
		if _, err := svc.CreateOrder(context.Background(), req); apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestGetOrder_SeedAndNotFound(t *testing.T) {
	store := memstore.NewOrderStore(order.Seed())
	svc := impl.NewOrderService(store, &tmocks.PublisherMock{StateVal: ports.StateReady}, time.Second, quietLogger())

	o, err := svc.GetOrder(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.TotalAmount != order.Total(o.Products) {
		t.Fatalf("seed total %v is not derived from its items", o.TotalAmount)
	}

	if _, err := svc.GetOrder(context.Background(), 99); !apperror.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
