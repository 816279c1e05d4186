package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shahil8848/Quickcart/internal/client"
	"github.com/shahil8848/Quickcart/internal/dto"
	"github.com/shahil8848/Quickcart/internal/model"
	"github.com/shahil8848/Quickcart/internal/repository"
)

// Surcharge of 3.6% added to every order subtotal, floored to an integer
// minor-currency unit.
const (
	surchargeNumerator   = 36
	surchargeDenominator = 1000
)

// Provider webhook event types this service reconciles.
const (
	eventPaymentSucceeded = "payment_intent.succeeded"
	eventPaymentCanceled  = "payment_intent.canceled"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID, addressID string, items []*dto.Item) (string, error)
	PlaceStripeOrder(ctx context.Context, userID, addressID string, items []*dto.Item) (string, error)
	HandleWebhook(ctx context.Context, signatureHeader string, body []byte) error
	ListOrders(ctx context.Context, userID string) ([]*model.Order, error)
	ListAllOrders(ctx context.Context) ([]*model.Order, error)
}

type orderServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	serviceBaseUrl   string
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	cartRepo         repository.CartRepository
	addressRepo      repository.AddressRepository
	webhookEventRepo repository.WebhookEventRepository
	logger           *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	serviceBaseUrl string,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	webhookEventRepo repository.WebhookEventRepository,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		serviceBaseUrl:   serviceBaseUrl,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		cartRepo:         cartRepo,
		addressRepo:      addressRepo,
		webhookEventRepo: webhookEventRepo,
		logger:           logger,
	}
}

// surcharge returns floor(subtotal * 3.6%).
func surcharge(subtotal int64) int64 {
	return subtotal * surchargeNumerator / surchargeDenominator
}

// validateItems walks the requested items in input order, failing fast on the
// first violation, and returns the matching products with the pre-surcharge
// subtotal in minor units.
func (s *orderServiceImpl) validateItems(ctx context.Context, items []*dto.Item) ([]*model.Product, int64, error) {
	products := make([]*model.Product, 0, len(items))
	var subtotal int64

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, &InvalidQuantityError{ProductID: item.Product}
		}

		product, err := s.productRepo.FindByID(ctx, item.Product)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, &ProductNotFoundError{ProductID: item.Product}
			}
			return nil, 0, fmt.Errorf("find product %s: %w", item.Product, err)
		}

		if product.Stock < item.Quantity {
			return nil, 0, &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}

		subtotal += product.EffectivePrice() * item.Quantity
		products = append(products, product)
	}

	return products, subtotal, nil
}

func (s *orderServiceImpl) resolveAddress(ctx context.Context, userID, addressID string) error {
	if addressID == "" {
		return ErrMissingAddress
	}
	if _, err := s.addressRepo.FindOwned(ctx, addressID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMissingAddress
		}
		return fmt.Errorf("find address %s: %w", addressID, err)
	}
	return nil
}

func buildOrderItems(orderID string, items []*dto.Item, products []*model.Product) []*model.OrderItem {
	orderItems := make([]*model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = &model.OrderItem{
			OrderID:   orderID,
			ProductID: item.Product,
			Quantity:  item.Quantity,
			UnitPrice: products[i].EffectivePrice(),
		}
	}
	return orderItems
}

// PlaceOrder places a pay-on-delivery order: validate every item, then
// decrement stock, write the order, and clear the cart in one transaction.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, userID, addressID string, items []*dto.Item) (string, error) {
	if err := s.resolveAddress(ctx, userID, addressID); err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyItems
	}

	products, subtotal, err := s.validateItems(ctx, items)
	if err != nil {
		return "", err
	}
	amount := subtotal + surcharge(subtotal)

	order := &model.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      amount,
		AddressID:   addressID,
		Status:      model.StatusPending,
		PaymentType: model.PaymentTypeCOD,
		Date:        time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, item := range items {
			if err := s.productRepo.DecrementStock(ctx, tx, item.Product, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrOutOfStock) {
					// Lost a race against a concurrent checkout since validation.
					return &InsufficientStockError{
						ProductName: products[i].Name,
						Available:   products[i].Stock,
						Requested:   item.Quantity,
					}
				}
				return fmt.Errorf("decrement stock for %s: %w", item.Product, err)
			}
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, buildOrderItems(order.ID, items, products)); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}

		if err := s.cartRepo.Clear(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear user cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return order.ID, nil
}

// PlaceStripeOrder places a hosted-checkout order. Stock is not reserved and
// the cart is not cleared here; both wait for the provider's payment
// confirmation webhook.
func (s *orderServiceImpl) PlaceStripeOrder(ctx context.Context, userID, addressID string, items []*dto.Item) (string, error) {
	if err := s.resolveAddress(ctx, userID, addressID); err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyItems
	}

	products, subtotal, err := s.validateItems(ctx, items)
	if err != nil {
		return "", err
	}
	tax := surcharge(subtotal)

	order := &model.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      subtotal + tax,
		AddressID:   addressID,
		Status:      model.StatusPlaced,
		PaymentType: model.PaymentTypeStripe,
		Date:        time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		return s.orderRepo.CreateOrderItems(ctx, tx, buildOrderItems(order.ID, items, products))
	})
	if err != nil {
		return "", err
	}

	lineItems := make([]client.LineItem, 0, len(items)+1)
	for i, item := range items {
		lineItems = append(lineItems, client.LineItem{
			Name:       products[i].Name,
			UnitAmount: products[i].EffectivePrice(),
			Quantity:   item.Quantity,
		})
	}
	lineItems = append(lineItems, client.LineItem{
		Name:       "Tax (3.6%)",
		UnitAmount: tax,
		Quantity:   1,
	})

	session, err := s.stripeClient.CreateCheckoutSession(ctx,
		lineItems,
		s.serviceBaseUrl+"/order-placed",
		s.serviceBaseUrl+"/cart",
		model.SessionMetadata{OrderID: order.ID, UserID: userID},
	)
	if err != nil {
		return "", fmt.Errorf("stripe create checkout session: %w", err)
	}

	return session.RedirectURL, nil
}

// HandleWebhook reconciles an asynchronous provider notification. Signature
// failures reject the whole request; once verified, internal reconciliation
// failures are logged but acknowledged so the provider does not retry-storm a
// transient fault.
func (s *orderServiceImpl) HandleWebhook(ctx context.Context, signatureHeader string, body []byte) error {
	if err := s.stripeClient.VerifyWebhookSignature(signatureHeader, body); err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	var event model.StripeWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		s.logger.Error("check webhook event", zap.String("event_id", event.ID), zap.Error(err))
		return nil
	}
	if processed {
		s.logger.Info("skipping already processed webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type))
		return nil
	}

	switch event.Type {
	case eventPaymentSucceeded:
		if err := s.handlePaymentIntent(ctx, &event, true); err != nil {
			s.logger.Error("handle payment succeeded",
				zap.String("event_id", event.ID), zap.Error(err))
		}
	case eventPaymentCanceled:
		if err := s.handlePaymentIntent(ctx, &event, false); err != nil {
			s.logger.Error("handle payment canceled",
				zap.String("event_id", event.ID), zap.Error(err))
		}
	default:
		s.logger.Warn("unhandled webhook event type", zap.String("event_type", event.Type))
	}

	return nil
}

// handlePaymentIntent resolves the payment intent back to its checkout
// session to recover the order and user, then settles or voids the order.
func (s *orderServiceImpl) handlePaymentIntent(ctx context.Context, event *model.StripeWebhookEvent, isPaid bool) error {
	session, err := s.stripeClient.GetSessionByPaymentIntent(ctx, event.Data.Object.ID)
	if err != nil {
		return fmt.Errorf("lookup checkout session: %w", err)
	}
	if session == nil {
		s.logger.Warn("no session found for payment intent",
			zap.String("payment_intent", event.Data.Object.ID))
		return nil
	}
	if session.Metadata.OrderID == "" || session.Metadata.UserID == "" {
		s.logger.Warn("missing metadata in session", zap.String("session_id", session.ID))
		return nil
	}

	orderID := session.Metadata.OrderID
	userID := session.Metadata.UserID

	if !isPaid {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.orderRepo.Delete(ctx, tx, orderID); err != nil {
				return fmt.Errorf("delete canceled order: %w", err)
			}
			return s.webhookEventRepo.MarkProcessed(ctx, tx, event.ID, event.Type)
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marked, err := s.orderRepo.MarkPaid(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if !marked {
			// Already settled or voided: record the event, touch nothing else.
			s.logger.Info("order already resolved", zap.String("order_id", orderID))
			return s.webhookEventRepo.MarkProcessed(ctx, tx, event.ID, event.Type)
		}

		items, err := s.orderRepo.GetOrderItems(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("get order items: %w", err)
		}
		for _, item := range items {
			if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
			}
		}

		if err := s.cartRepo.Clear(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear user cart: %w", err)
		}

		return s.webhookEventRepo.MarkProcessed(ctx, tx, event.ID, event.Type)
	})
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}
