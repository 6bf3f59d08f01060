package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/webshoplabs/webshop-backend/services/cart-service/cache"
	"github.com/webshoplabs/webshop-backend/services/cart-service/models"
	"github.com/webshoplabs/webshop-backend/services/cart-service/repository"
	"github.com/webshoplabs/webshop-backend/services/common/logger"
)

// SettlementService converts cart contents into immutable payment records and
// keeps the stored cart amount in sync with its items. The amount is a derived
// field recomputed and persisted after every item mutation, never computed on
// read.
//
// Multi-step sequences (append+recompute, the settle writes) are serialized
// per cart: two concurrent settles of the same cart cannot both observe a
// non-empty cart and double-insert a payment.
type SettlementService struct {
	carts    repository.CartRepository
	payments repository.PaymentRepository
	cache    cache.CartCache
	now      func() time.Time

	sfg singleflight.Group // prevents cache stampede on cart reads

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-cart settlement locks
}

func NewSettlementService(carts repository.CartRepository, payments repository.PaymentRepository, cartCache cache.CartCache) *SettlementService {
	return &SettlementService{
		carts:    carts,
		payments: payments,
		cache:    cartCache,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *SettlementService) cartLock(cartID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.locks[cartID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[cartID] = l
	return l
}

func (s *SettlementService) CreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, repository.ErrInvalidCartID
	}
	return s.carts.CreateCart(ctx, userID)
}

func (s *SettlementService) GetCartByID(ctx context.Context, cartID string) (*models.Cart, error) {
	return s.carts.GetCartByID(ctx, cartID)
}

// GetCartByUserID reads through the cache. Concurrent misses for the same user
// collapse into one repository call.
func (s *SettlementService) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		if s.cache != nil {
			cart, err := s.cache.Get(ctx, userID)
			if err == nil {
				return cart, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				logger.Log.Warn("cart cache get failed", zap.Error(err))
			}
		}

		cart, err := s.carts.GetCartByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				cacheCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := s.cache.Set(cacheCtx, userID, cart); err != nil {
					logger.Log.Warn("cart cache set failed", zap.Error(err))
				}
			}()
		}

		return cart, nil
	})

	if err != nil {
		return nil, err
	}
	return v.(*models.Cart), nil
}

func (s *SettlementService) ReplaceCart(ctx context.Context, cartID string, cart *models.Cart) (bool, error) {
	matched, err := s.carts.ReplaceCart(ctx, cartID, cart)
	if err != nil {
		return false, err
	}
	if matched && cart != nil {
		s.invalidateCache(cart.UserID)
	}
	return matched, nil
}

func (s *SettlementService) DeleteCart(ctx context.Context, cartID string) error {
	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		return err
	}
	// cart id doubles as the owner id
	s.invalidateCache(cartID)
	return nil
}

// AddItem appends the snapshot to the cart and recomputes the stored total.
// The append and the amount update are two separate writes.
func (s *SettlementService) AddItem(ctx context.Context, cartID string, item models.CartItem) error {
	l := s.cartLock(cartID)
	l.Lock()
	defer l.Unlock()

	if err := s.carts.AppendItem(ctx, cartID, item); err != nil {
		return err
	}
	if err := s.recomputeAmount(ctx, cartID); err != nil {
		return err
	}
	s.invalidateCache(cartID)
	return nil
}

// RemoveItem pulls the item by id and recomputes the stored total. Removing an
// absent item is a no-op.
func (s *SettlementService) RemoveItem(ctx context.Context, cartID, itemID string) error {
	l := s.cartLock(cartID)
	l.Lock()
	defer l.Unlock()

	if err := s.carts.PullItem(ctx, cartID, itemID); err != nil {
		return err
	}
	if err := s.recomputeAmount(ctx, cartID); err != nil {
		return err
	}
	s.invalidateCache(cartID)
	return nil
}

// RecomputeAmount re-derives and persists the cart total from its items.
func (s *SettlementService) RecomputeAmount(ctx context.Context, cartID string) error {
	l := s.cartLock(cartID)
	l.Lock()
	defer l.Unlock()

	return s.recomputeAmount(ctx, cartID)
}

// recomputeAmount must be called with the cart lock held. A missing cart is
// not an error.
func (s *SettlementService) recomputeAmount(ctx context.Context, cartID string) error {
	cart, err := s.carts.GetCartByID(ctx, cartID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.carts.SetAmount(ctx, cartID, cart.Total())
}

// Settle converts the cart's current contents into a payment record and resets
// the cart. Settling an absent, empty or zero-amount cart is a silent no-op;
// the cart itself is never deleted.
func (s *SettlementService) Settle(ctx context.Context, cartID string) error {
	l := s.cartLock(cartID)
	l.Lock()
	defer l.Unlock()

	return s.settle(ctx, cartID)
}

func (s *SettlementService) settle(ctx context.Context, cartID string) error {
	cart, err := s.carts.GetCartByID(ctx, cartID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if len(cart.Items) == 0 || cart.Amount == nil || *cart.Amount == 0 {
		return nil
	}

	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)

	payment := &models.Payment{
		ID:          uuid.NewString(),
		CartID:      cart.ID,
		UserID:      cart.UserID,
		Amount:      *cart.Amount,
		Items:       items,
		PaymentDate: s.now(),
	}

	if err := s.payments.InsertPayment(ctx, payment); err != nil {
		return err
	}

	if err := s.carts.SetItems(ctx, cartID, []models.CartItem{}); err != nil {
		return err
	}
	if err := s.recomputeAmount(ctx, cartID); err != nil {
		return err
	}

	s.invalidateCache(cart.UserID)
	return nil
}

// AcceptExternalPayment records a payment computed outside this service (the
// caller-supplied amount is trusted), then settles the originating cart to
// clear its items.
func (s *SettlementService) AcceptExternalPayment(ctx context.Context, payment *models.Payment) error {
	if payment == nil || len(payment.Items) == 0 || payment.Amount == 0 {
		return repository.ErrInvalidPayment
	}

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = s.now()
	}

	if err := s.payments.InsertPayment(ctx, payment); err != nil {
		return err
	}

	if payment.CartID == "" {
		return nil
	}
	return s.Settle(ctx, payment.CartID)
}

func (s *SettlementService) invalidateCache(userID string) {
	if s.cache == nil || userID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		logger.Log.Warn("cart cache invalidate failed", zap.Error(err))
	}
}
