package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/bonappetit-bakery/bakery-backend/internal/delivery"
	"github.com/bonappetit-bakery/bakery-backend/internal/pricing"
	"github.com/bonappetit-bakery/bakery-backend/pkg/config"
	"github.com/bonappetit-bakery/bakery-backend/pkg/db"
	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
	pkgerrors "github.com/bonappetit-bakery/bakery-backend/pkg/errors"
	"github.com/bonappetit-bakery/bakery-backend/pkg/logger"
	"github.com/bonappetit-bakery/bakery-backend/pkg/security"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service places orders. Placement is a single transaction covering customer,
// address, order and item rows together with the server side price check.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*PlacedOrder, error)
}

type service struct {
	tx          txRunner
	repo        Repository
	pricingRepo pricing.Repository
	delivery    delivery.Repository
	log         *logger.Logger
	password    config.PasswordConfig
	maxAttempts int

	now       func() time.Time
	newNumber func(time.Time) string
}

// NewService builds the order placement service.
func NewService(
	tx txRunner,
	repo Repository,
	pricingRepo pricing.Repository,
	deliveryRepo delivery.Repository,
	log *logger.Logger,
	password config.PasswordConfig,
	ordersCfg config.OrdersConfig,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if pricingRepo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if deliveryRepo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	maxAttempts := ordersCfg.NumberMaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &service{
		tx:          tx,
		repo:        repo,
		pricingRepo: pricingRepo,
		delivery:    deliveryRepo,
		log:         log,
		password:    password,
		maxAttempts: maxAttempts,
		now:         time.Now,
		newNumber:   NewOrderNumber,
	}, nil
}

// Place runs the placement transaction. An order number collision aborts the
// whole transaction, so the retry regenerates the number and replays every
// step against a fresh transaction.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*PlacedOrder, error) {
	if len(input.OrderItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one order item is required")
	}

	hashedPw, err := security.HashPassword(input.OrderPw, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash order password")
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		placed, err := s.place(ctx, input, hashedPw)
		if err == nil {
			return placed, nil
		}
		if !db.IsUniqueViolation(err, "uq_orders_order_number") {
			return nil, err
		}
		lastErr = err
		s.log.Warn(s.log.WithField(ctx, "attempt", attempt), "order number collision, regenerating")
	}

	return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, lastErr, "could not allocate a unique order number")
}

func (s *service) place(ctx context.Context, input PlaceOrderInput, hashedPw string) (*PlacedOrder, error) {
	now := s.now()

	var placed *PlacedOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		pricingRepo := s.pricingRepo.WithTx(tx)
		deliveryRepo := s.delivery.WithTx(tx)
		repo := s.repo.WithTx(tx)

		breadNos := make([]int64, 0, len(input.OrderItems))
		for _, item := range input.OrderItems {
			breadNos = append(breadNos, item.BreadNo)
		}

		unitPrices, err := pricingRepo.UnitPrices(ctx, breadNos)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load unit prices")
		}

		// Breads missing from the price book price at zero rather than
		// failing the order.
		items := make([]models.OrderItem, 0, len(input.OrderItems))
		var originalTotal int64
		for _, item := range input.OrderItems {
			unitPrice := unitPrices[item.BreadNo]
			lineTotal := unitPrice * int64(item.Quantity)
			originalTotal += lineTotal
			items = append(items, models.OrderItem{
				BreadNo:    item.BreadNo,
				Quantity:   item.Quantity,
				UnitPrice:  unitPrice,
				TotalPrice: lineTotal,
			})
		}

		var discountAmount int64
		discount, err := pricingRepo.ActiveDiscount(ctx, enums.DiscountTypePeriod, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load active discount")
		}
		if discount != nil {
			discountAmount = discount.Amount
		}

		var deliveryFee int64
		method, err := deliveryRepo.FindByNo(ctx, input.DeliveryMethodNo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load delivery method")
		}
		if method != nil {
			deliveryFee = method.Fee
		}

		expectedTotal := originalTotal - discountAmount + deliveryFee
		if input.TotalPrice != expectedTotal {
			return pkgerrors.New(pkgerrors.CodePriceMismatch, "total price does not match the current catalog").
				WithDetails(PriceMismatchDetails{
					ExpectedTotal:  expectedTotal,
					ReceivedTotal:  input.TotalPrice,
					OriginalPrice:  originalTotal,
					DiscountAmount: discountAmount,
					DeliveryFee:    deliveryFee,
				})
		}

		customer, err := repo.CreateCustomer(ctx, &models.Customer{
			Name:         input.Name,
			MobileNumber: input.MobileNumber,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
		}

		address, err := repo.CreateAddress(ctx, &models.Address{
			CustomerNo:      customer.No,
			Address:         input.Address,
			AddressDetail:   input.AddressDetail,
			Zipcode:         input.Zipcode,
			Message:         input.Message,
			RecipientName:   input.RecipientName,
			RecipientMobile: input.RecipientMobile,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
		}

		if err := repo.SetDefaultAddress(ctx, customer.No, address.No); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set default address")
		}

		order, err := repo.CreateOrder(ctx, &models.Order{
			OrderNumber:      s.newNumber(s.now()),
			CustomerNo:       customer.No,
			AddressNo:        address.No,
			DeliveryMethodNo: input.DeliveryMethodNo,
			OrderStatus:      enums.OrderStatusReceived,
			TotalPrice:       expectedTotal,
			OrderPw:          hashedPw,
		})
		if err != nil {
			return err
		}

		for i := range items {
			items[i].OrderNo = order.No
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
		}

		placed = &PlacedOrder{
			OrderNo:          order.No,
			OrderNumber:      order.OrderNumber,
			OrderStatus:      order.OrderStatus,
			Name:             input.Name,
			MobileNumber:     input.MobileNumber,
			Address:          input.Address,
			AddressDetail:    input.AddressDetail,
			Zipcode:          input.Zipcode,
			Message:          input.Message,
			RecipientName:    input.RecipientName,
			RecipientMobile:  input.RecipientMobile,
			OrderItems:       input.OrderItems,
			DeliveryMethodNo: input.DeliveryMethodNo,
			TotalPrice:       order.TotalPrice,
			CreatedAt:        order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.log.WithOrderNumber(ctx, placed.OrderNumber)
	s.log.Info(ctx, "order placed")
	return placed, nil
}
