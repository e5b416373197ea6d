package escrow

import (
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		db := store.MemStore()
		r := NewRegistry()

		creator := timelocktest.RandomAddr(t)
		alice := timelocktest.RandomAddr(t)
		bob := timelocktest.RandomAddr(t)
		now := timelock.UnixTime(1000)

		Convey("Ids are assigned from 1 across beneficiaries", func() {
			for i, b := range []timelock.Address{alice, bob, alice} {
				id, err := r.Create(db, creator, b, 10, now+3600, now)
				So(err, ShouldBeNil)
				So(id, ShouldEqual, uint64(i+1))
			}
			last, err := r.LastID(db)
			So(err, ShouldBeNil)
			So(last, ShouldEqual, 3)
		})

		Convey("Invalid input creates nothing", func() {
			cases := map[string]struct {
				beneficiary timelock.Address
				amount      uint64
				want        *errors.Error
			}{
				"nil beneficiary":   {beneficiary: nil, amount: 1, want: errors.ErrInvalidBeneficiary},
				"zero beneficiary":  {beneficiary: timelocktest.ZeroAddr(), amount: 1, want: errors.ErrInvalidBeneficiary},
				"short beneficiary": {beneficiary: timelock.Address("short"), amount: 1, want: errors.ErrInvalidBeneficiary},
				"zero amount":       {beneficiary: alice, amount: 0, want: errors.ErrInvalidAmount},
			}
			for _, tc := range cases {
				_, err := r.Create(db, creator, tc.beneficiary, tc.amount, now, now)
				So(tc.want.Is(err), ShouldBeTrue)
			}
			last, err := r.LastID(db)
			So(err, ShouldBeNil)
			So(last, ShouldEqual, 0)
		})

		Convey("A past lock time is accepted", func() {
			id, err := r.Create(db, creator, alice, 10, 1, now)
			So(err, ShouldBeNil)
			d, err := r.Get(db, id, alice)
			So(err, ShouldBeNil)
			So(d.LockedUntil, ShouldEqual, timelock.UnixTime(1))
		})

		Convey("Given a deposit", func() {
			id, err := r.Create(db, creator, alice, 5000, now+3600, now)
			So(err, ShouldBeNil)

			Convey("It can be read by its beneficiary", func() {
				d, err := r.Get(db, id, alice)
				So(err, ShouldBeNil)
				So(d.Creator, ShouldResemble, creator)
				So(d.Beneficiary, ShouldResemble, alice)
				So(d.Amount, ShouldEqual, 5000)
				So(d.LockedUntil, ShouldEqual, now+3600)
				So(d.CreatedAt, ShouldEqual, now)
				So(d.IsActive(), ShouldBeTrue)
			})

			Convey("Another beneficiary does not find it", func() {
				_, err := r.Get(db, id, bob)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			})

			Convey("Unknown id is not found", func() {
				_, err := r.Get(db, id+1, alice)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			})

			Convey("Marking withdrawn keeps a tombstone", func() {
				So(r.MarkWithdrawn(db, id, now+4000), ShouldBeNil)

				_, err := r.Get(db, id, alice)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)

				d, err := r.Deposit(db, id)
				So(err, ShouldBeNil)
				So(d.Withdrawn, ShouldBeTrue)
				So(d.WithdrawnAt, ShouldEqual, now+4000)
				So(d.Amount, ShouldEqual, 5000)

				err = r.MarkWithdrawn(db, id, now+5000)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			})

			Convey("Iterate visits deposits in id order", func() {
				_, err := r.Create(db, creator, bob, 1, now, now)
				So(err, ShouldBeNil)

				var ids []uint64
				err = r.Iterate(db, func(id uint64, d *Deposit) error {
					ids = append(ids, id)
					return nil
				})
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, []uint64{1, 2})
			})
		})
	})
}
