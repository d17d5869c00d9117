package services

import (
	"context"
	"fmt"
	"time"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/commercelab/microshop/internal/core/domain/order"
	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// OrderService owns order creation and the order_created publication
// contract. Reads go straight to the record store.
type OrderService struct {
	store          ports.OrderStore
	publisher      ports.EventPublisher
	publishTimeout time.Duration
	logger         *logrus.Logger
}

func NewOrderService(store ports.OrderStore, publisher ports.EventPublisher, publishTimeout time.Duration, logger *logrus.Logger) *OrderService {
	return &OrderService{store: store, publisher: publisher, publishTimeout: publishTimeout, logger: logger}
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	o, ok := s.store.Get(id)
	if !ok {
		return nil, apperror.NotFound("there are no orders with id %d", id)
	}
	return &o, nil
}

// CreateOrder stores the order and publishes it to order_created. Creation is
// refused while the broker connection is not ready, so an accepted order is
// never silently unpublished. If publication fails after the store write the
// error names the stored order so the caller can compensate.
func (s *OrderService) CreateOrder(ctx context.Context, req *order.CreateOrderRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if !s.publisher.Ready() {
		return 0, apperror.Unavailable(
			fmt.Sprintf("order events cannot be published while the broker is %s", s.publisher.State()), nil)
	}

	o := order.Order{
		UserID:      req.UserID,
		Products:    req.Products,
		TotalAmount: order.Total(req.Products),
		Status:      order.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	id := s.store.Add(o)
	o.ID = id

	pubCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, order.QueueCreated, o); err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("order stored but event publication failed")
		return 0, apperror.Unavailable(
			fmt.Sprintf("order %d was stored but its creation event was not published", id), err)
	}

	s.logger.WithFields(logrus.Fields{"order_id": id, "user_id": o.UserID, "total": o.TotalAmount}).Info("order created")
	return id, nil
}

var _ ports.OrderService = (*OrderService)(nil)
