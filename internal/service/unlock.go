package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"paylock/internal/client"
	"paylock/internal/repository"
)

type UnlockState string

const (
	StateIdle                 UnlockState = "idle"
	StateInitiating           UnlockState = "initiating"
	StateAwaitingConfirmation UnlockState = "awaiting_confirmation"
	StateConfirmed            UnlockState = "confirmed"
	StateFailed               UnlockState = "failed"
)

// Terminal reports whether the session can no longer change state.
func (s UnlockState) Terminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// SessionView is the immutable snapshot handed to the HTTP layer.
type SessionView struct {
	ID          string
	ContentID   string
	State       UnlockState
	Token       string
	RedirectURL string
	Error       string
}

type unlockSession struct {
	id        string
	contentID string
	payerName string
	amount    decimal.Decimal

	mu          sync.Mutex
	state       UnlockState
	token       string
	redirectURL string
	errMsg      string

	cancel context.CancelFunc
	done   chan struct{}
}

func (s *unlockSession) view() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionView{
		ID:          s.id,
		ContentID:   s.contentID,
		State:       s.state,
		Token:       s.token,
		RedirectURL: s.redirectURL,
		Error:       s.errMsg,
	}
}

// setState moves the session forward unless it is already terminal.
// Returns false when the transition was refused.
func (s *unlockSession) setState(state UnlockState, errMsg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return false
	}
	s.state = state
	s.errMsg = errMsg
	return true
}

// UnlockManager runs one state machine per viewing session. The
// buyer's client observes progress by fetching the session; the poll
// goroutine is the only writer after initiation.
type UnlockManager struct {
	payments     PaymentService
	pollInterval time.Duration
	log          *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*unlockSession

	baseCtx    context.Context
	baseCancel context.CancelFunc
}

func NewUnlockManager(payments PaymentService, pollInterval time.Duration, log *logrus.Logger) *UnlockManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &UnlockManager{
		payments:     payments,
		pollInterval: pollInterval,
		log:          log,
		sessions:     make(map[string]*unlockSession),
		baseCtx:      ctx,
		baseCancel:   cancel,
	}
}

var ErrSessionNotFound = errors.New("unlock session not found")

// Begin validates the payer fields, initiates the payment and starts
// the confirmation poll. On adapter failure the session ends up
// failed; validation failures never create a session at all.
func (m *UnlockManager) Begin(ctx context.Context, contentID, payerName, phone string) (SessionView, error) {
	if payerName == "" {
		return SessionView{}, validationErr("payer_name", "required")
	}
	if phone == "" {
		return SessionView{}, validationErr("phone", "required")
	}

	session := &unlockSession{
		id:        uuid.New().String(),
		contentID: contentID,
		payerName: payerName,
		state:     StateInitiating,
		done:      make(chan struct{}),
	}

	m.mu.Lock()
	m.sessions[session.id] = session
	m.mu.Unlock()

	intent, err := m.payments.InitiatePayment(ctx, contentID, payerName, phone)
	if err != nil {
		session.setState(StateFailed, err.Error())
		close(session.done)
		return session.view(), fmt.Errorf("initiate payment: %w", err)
	}

	pollCtx, cancel := context.WithCancel(m.baseCtx)

	session.mu.Lock()
	session.token = intent.Token
	session.redirectURL = intent.RedirectURL
	session.amount = intent.Amount
	session.state = StateAwaitingConfirmation
	session.cancel = cancel
	session.mu.Unlock()

	go m.poll(pollCtx, session)

	return session.view(), nil
}

func (m *UnlockManager) Get(sessionID string) (SessionView, error) {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	return session.view(), nil
}

// Close tears the session down: the poll ticker is released whatever
// state the session is in.
func (m *UnlockManager) Close(sessionID string) error {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	session.mu.Lock()
	cancel := session.cancel
	session.mu.Unlock()

	if cancel != nil {
		cancel()
		<-session.done
	}
	return nil
}

// Shutdown stops every poll loop. Used on server shutdown.
func (m *UnlockManager) Shutdown() {
	m.baseCancel()

	m.mu.Lock()
	sessions := make([]*unlockSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.mu.Lock()
		started := s.cancel != nil
		s.mu.Unlock()
		if started {
			<-s.done
		}
	}
}

func (m *UnlockManager) poll(ctx context.Context, session *unlockSession) {
	defer close(session.done)

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	log := m.log.WithFields(logrus.Fields{
		"session_id": session.id,
		"content_id": session.contentID,
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := m.payments.CheckStatus(ctx, session.token)
			if err != nil {
				// Transport trouble is transient: keep the attempt
				// alive and try again on the next tick.
				if errors.Is(err, client.ErrGatewayUnavailable) {
					log.WithError(err).Warn("status check failed, will retry")
					continue
				}
				log.WithError(err).Warn("status check error, will retry")
				continue
			}

			switch status {
			case client.StatusPaid:
				m.confirm(ctx, session, log)
				return
			case client.StatusFailed, client.StatusCancelled:
				session.setState(StateFailed, "Le paiement a été annulé ou a échoué.")
				log.WithError(ErrPaymentDeclined).WithField("status", status).Info("payment attempt ended without payment")
				return
			default:
				// pending, keep polling
			}
		}
	}
}

func (m *UnlockManager) confirm(ctx context.Context, session *unlockSession, log *logrus.Entry) {
	_, err := m.payments.RecordPayment(ctx, session.contentID, session.token, session.amount, session.payerName)
	if err != nil && !errors.Is(err, repository.ErrDuplicateTransaction) {
		log.WithError(err).Error("record confirmed payment")
		// The provider says paid; the buyer still gets the unlock and
		// the webhook remains as the reconciliation path.
	}
	session.setState(StateConfirmed, "")
	log.Info("payment confirmed, content unlocked")
}
