package escrow

import (
	"context"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Service exposes the escrow operations. Each operation runs as a single
// transaction of the underlying ledger: it is either fully applied together
// with all asset movements or has no effect at all.
type Service struct {
	tx   timelock.Transactor
	ctrl *Controller
	now  func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the source of the current time. It is used only when the
// context of a call does not carry the block time.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService returns a service that keeps its state in tx and moves the
// asset with transfer.
func NewService(tx timelock.Transactor, transfer Transferer, opts ...ServiceOption) *Service {
	s := &Service{
		tx:   tx,
		ctrl: NewController(transfer),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Lock pulls amount from the creator into custody and creates a deposit that
// the beneficiary can withdraw at or after lockedUntil.
func (s *Service) Lock(
	ctx context.Context,
	creator, beneficiary timelock.Address,
	amount uint64,
	lockedUntil timelock.UnixTime,
) (uint64, error) {
	ctx = s.withTime(ctx)
	var id uint64
	err := s.tx.Update(func(db timelock.KVStore) error {
		var err error
		id, err = s.ctrl.Lock(ctx, db, creator, beneficiary, amount, lockedUntil)
		return err
	})
	log := timelock.GetLogger(ctx)
	if err != nil {
		log.Debug("lock rejected",
			"creator", creator,
			"beneficiary", beneficiary,
			"amount", amount,
			"err", err)
		return 0, err
	}
	log.Info("deposit locked",
		"id", id,
		"creator", creator,
		"beneficiary", beneficiary,
		"amount", amount,
		"locked_until", lockedUntil)
	return id, nil
}

// Withdrawal releases the deposit to its beneficiary. Anybody can call it,
// the caller is recorded in the withdrawal event only.
func (s *Service) Withdrawal(
	ctx context.Context,
	caller timelock.Address,
	id uint64,
	beneficiary timelock.Address,
) error {
	ctx = s.withTime(ctx)
	var d *Deposit
	err := s.tx.Update(func(db timelock.KVStore) error {
		var err error
		d, err = s.ctrl.Withdraw(ctx, db, caller, id, beneficiary)
		return err
	})
	log := timelock.GetLogger(ctx)
	if err != nil {
		log.Debug("withdrawal rejected",
			"id", id,
			"beneficiary", beneficiary,
			"caller", caller,
			"err", err)
		return err
	}
	log.Info("deposit withdrawn",
		"id", id,
		"beneficiary", beneficiary,
		"caller", caller,
		"amount", d.Amount)
	return nil
}

// GetDeposit returns the active deposit with given id that belongs to the
// beneficiary.
func (s *Service) GetDeposit(ctx context.Context, id uint64, beneficiary timelock.Address) (*Deposit, error) {
	var d *Deposit
	err := s.tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		d, err = s.ctrl.Deposit(db, id, beneficiary)
		return err
	})
	return d, err
}

// GetDepositIDsForBeneficiary returns ids of all deposits ever created for
// the beneficiary, in creation order. Withdrawn deposits are included.
func (s *Service) GetDepositIDsForBeneficiary(ctx context.Context, beneficiary timelock.Address) ([]uint64, error) {
	var ids []uint64
	err := s.tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		ids, err = s.ctrl.DepositIDs(db, beneficiary)
		return err
	})
	return ids, err
}

// Events returns up to limit events numbered after given one.
func (s *Service) Events(ctx context.Context, after uint64, limit int) ([]NumberedEvent, error) {
	var events []NumberedEvent
	err := s.tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		events, err = s.ctrl.Events(db, after, limit)
		return err
	})
	return events, err
}

// Audit verifies that the custody covers all active deposits.
func (s *Service) Audit(ctx context.Context) (*AuditReport, error) {
	var report *AuditReport
	err := s.tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		report, err = s.ctrl.Audit(db)
		return err
	})
	if err != nil {
		timelock.GetLogger(ctx).Error("audit failed", "err", err)
	}
	return report, err
}

// Approve grants the custody an allowance to pull amount from the owner. It
// is available only when the transferer supports it.
func (s *Service) Approve(ctx context.Context, owner timelock.Address, amount uint64) error {
	a, ok := s.ctrl.transfer.(Approver)
	if !ok {
		return errors.Wrap(errors.ErrHuman, "transferer does not support approvals")
	}
	err := s.tx.Update(func(db timelock.KVStore) error {
		return a.Approve(db, owner, amount)
	})
	if err != nil {
		return err
	}
	timelock.GetLogger(ctx).Info("custody approved", "owner", owner, "amount", amount)
	return nil
}

// withTime ensures the context carries the current time.
func (s *Service) withTime(ctx context.Context) context.Context {
	if _, ok := timelock.BlockTime(ctx); ok {
		return ctx
	}
	return timelock.WithBlockTime(ctx, s.now())
}
