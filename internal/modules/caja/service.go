package caja

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// cashMethod is the sales-by-method bucket that feeds expected cash.
const cashMethod = "CASH"

// Service defines till business logic.
type Service interface {
	// Current returns the current session, open or closed.
	Current(ctx context.Context) (*Session, error)

	// Open starts a new session with a non-negative opening float. Fails
	// while a session is still open.
	Open(ctx context.Context, req OpenRequest) (*Session, error)

	// Close performs the arqueo: stores the counted cash, fixes the
	// variance (counted − expected) and locks the session. One-way.
	Close(ctx context.Context, req CloseRequest) (*Session, error)

	// RecordMovement appends a manual cash movement and recomputes
	// expected cash.
	RecordMovement(ctx context.Context, req MovementRequest) (*Session, error)

	// RegisterSale posts a paid order's financial effect: method bucket,
	// running totals, margin, expected cash. Returns ErrSessionClosed when
	// no session is open; the caller decides whether that degrades or
	// fails the operation.
	RegisterSale(ctx context.Context, method string, amount, margin float64) (*Session, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new caja service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Current(ctx context.Context) (*Session, error) {
	return s.repo.Get(ctx)
}

func (s *service) Open(ctx context.Context, req OpenRequest) (*Session, error) {
	if req.OpeningFloat < 0 {
		return nil, fmt.Errorf("opening_float must be >= 0")
	}
	current, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, ErrNoSession) {
		return nil, err
	}
	if current != nil && current.State == StateOpen {
		return nil, ErrSessionOpen
	}
	session := &Session{
		State:         StateOpen,
		OpenedAt:      s.now(),
		OpeningFloat:  req.OpeningFloat,
		SalesByMethod: map[string]float64{},
		ExpectedCash:  req.OpeningFloat,
		Movements:     []Movement{},
	}
	if err := s.repo.Replace(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) Close(ctx context.Context, req CloseRequest) (*Session, error) {
	if req.CountedCash < 0 {
		return nil, fmt.Errorf("counted_cash must be >= 0")
	}
	return s.repo.Update(ctx, func(sess *Session) error {
		if sess.State != StateOpen {
			return ErrSessionClosed
		}
		now := s.now()
		counted := req.CountedCash
		variance := round2(counted - sess.ExpectedCash)
		sess.State = StateClosed
		sess.ClosedAt = &now
		sess.CountedCash = &counted
		sess.Variance = &variance
		return nil
	})
}

func (s *service) RecordMovement(ctx context.Context, req MovementRequest) (*Session, error) {
	kind := MovementKind(strings.ToUpper(req.Kind))
	if kind != MovementIn && kind != MovementOut {
		return nil, fmt.Errorf("invalid movement kind: %q (allowed: IN, OUT)", req.Kind)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	return s.repo.Update(ctx, func(sess *Session) error {
		if sess.State != StateOpen {
			return ErrSessionClosed
		}
		sess.Movements = append(sess.Movements, Movement{
			Kind:        kind,
			Amount:      req.Amount,
			Description: strings.TrimSpace(req.Description),
			At:          s.now(),
		})
		recomputeExpected(sess)
		return nil
	})
}

func (s *service) RegisterSale(ctx context.Context, method string, amount, margin float64) (*Session, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount must be >= 0")
	}
	sess, err := s.repo.Update(ctx, func(sess *Session) error {
		if sess.State != StateOpen {
			return ErrSessionClosed
		}
		key := strings.ToUpper(method)
		sess.SalesByMethod[key] = round2(sess.SalesByMethod[key] + amount)
		sess.TotalSales = round2(sess.TotalSales + amount)
		sess.TotalMargin = round2(sess.TotalMargin + margin)
		recomputeExpected(sess)
		return nil
	})
	if errors.Is(err, ErrNoSession) {
		// No session at all behaves like a closed till.
		return nil, ErrSessionClosed
	}
	return sess, err
}

// recomputeExpected enforces the cash conservation invariant:
// expected = openingFloat + cash sales + Σ in − Σ out.
func recomputeExpected(sess *Session) {
	expected := sess.OpeningFloat + sess.SalesByMethod[cashMethod]
	for _, m := range sess.Movements {
		if m.Kind == MovementIn {
			expected += m.Amount
		} else {
			expected -= m.Amount
		}
	}
	sess.ExpectedCash = round2(expected)
}

func round2(v float64) float64 {
	if v < 0 {
		return -round2(-v)
	}
	return float64(int(v*100+0.5)) / 100
}
