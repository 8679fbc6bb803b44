package cart

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"soldout-pos/internal/domain"
)

type snapshotRepo interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Replace(ctx context.Context, lines []domain.CartLine) error
}

// Service is the cart aggregator: the authoritative in-memory collection
// of lines for the sale in progress. Mutations update memory synchronously
// and dispatch a best-effort durable write of the whole snapshot; a crash
// between the two loses at most the latest mutation, which the recovery
// model accepts.
type Service struct {
	mu     sync.Mutex
	lines  []domain.CartLine
	repo   snapshotRepo
	logger *log.Logger

	// Writer state. A single drain goroutine owns repo.Replace, so
	// snapshots land in storage in mutation order and a Clear is never
	// overtaken by the write of an earlier mutation.
	wmu        sync.Mutex
	pending    []domain.CartLine
	hasPending bool
	writing    bool
}

func New(repo snapshotRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

// Load restores the persisted snapshot, replacing the in-memory cart.
// Called once at startup before the aggregator serves mutations.
func (s *Service) Load(ctx context.Context) error {
	lines, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	return nil
}

// Lines returns a copy of the current cart.
func (s *Service) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// AddLine records one unit of the product (or of one of its variants).
// The same product+variant selection always lands on the same line, so a
// repeat selection increments quantity instead of appending. Stock is not
// consulted here; only checkout validates it.
func (s *Service) AddLine(product domain.Product, variant *domain.Variant) []domain.CartLine {
	key := domain.LineKey{ProductID: product.ID}
	if variant != nil {
		key.VariantName = variant.Name
	}

	s.mu.Lock()
	if existing := s.find(key); existing != nil {
		existing.Quantity++
	} else {
		s.lines = append(s.lines, domain.CartLine{
			LineKey:   key,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
		})
	}
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot
}

// SetQuantity sets the line's quantity; zero or negative removes the line,
// so the cart never stores a non-positive quantity.
func (s *Service) SetQuantity(key domain.LineKey, quantity int) []domain.CartLine {
	s.mu.Lock()
	if quantity <= 0 {
		kept := s.lines[:0]
		for _, line := range s.lines {
			if line.LineKey != key {
				kept = append(kept, line)
			}
		}
		s.lines = kept
	} else if line := s.find(key); line != nil {
		line.Quantity = quantity
	}
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot
}

// ToggleGift flags a single line as a giveaway; other lines are untouched.
func (s *Service) ToggleGift(key domain.LineKey, isGift bool) []domain.CartLine {
	s.mu.Lock()
	if line := s.find(key); line != nil {
		line.IsGift = isGift
	}
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot
}

// Clear empties the cart.
func (s *Service) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	s.persist(nil)
}

// find returns a pointer into s.lines; callers hold s.mu.
func (s *Service) find(key domain.LineKey) *domain.CartLine {
	for i := range s.lines {
		if s.lines[i].LineKey == key {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *Service) snapshot() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// persist hands the snapshot to the writer without blocking the caller.
// The writer always takes the latest pending snapshot, so back-to-back
// mutations may coalesce into one write; what it never does is write an
// older snapshot after a newer one. Failures are logged and otherwise
// ignored: the in-memory cart stays authoritative until checkout.
func (s *Service) persist(snapshot []domain.CartLine) {
	s.wmu.Lock()
	s.pending = snapshot
	s.hasPending = true
	if s.writing {
		s.wmu.Unlock()
		return
	}
	s.writing = true
	s.wmu.Unlock()

	go s.drain()
}

func (s *Service) drain() {
	for {
		s.wmu.Lock()
		if !s.hasPending {
			s.writing = false
			s.wmu.Unlock()
			return
		}
		snapshot := s.pending
		s.hasPending = false
		s.wmu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Replace(ctx, snapshot); err != nil {
			s.logger.Printf("cart: persist snapshot (%d lines): %v", len(snapshot), err)
		}
		cancel()
	}
}
