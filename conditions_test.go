package timelock_test

import (
	"encoding/json"
	"flag"
	"fmt"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := timelock.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", b))
		So(timelock.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexademical condition printing", t, func() {
		cond := timelock.NewCondition("escrow", "custody", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldEqual, fmt.Sprintf("escrow/custody/%X", []byte("ABCD123456LHB")))
	})
}

func TestAddressIsZero(t *testing.T) {
	cases := map[string]struct {
		addr timelock.Address
		want bool
	}{
		"nil":           {addr: nil, want: true},
		"all zeros":     {addr: make(timelock.Address, 20), want: true},
		"regular":       {addr: timelock.NewAddress([]byte("x")), want: false},
		"last byte set": {addr: append(make(timelock.Address, 19), 1), want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.addr.IsZero())
		})
	}
}

func TestParseAddress(t *testing.T) {
	addr := timelock.NewAddress([]byte("alice"))
	b32, err := addr.Bech32("tlk")
	require.NoError(t, err)

	cases := map[string]struct {
		enc      string
		wantErr  *errors.Error
		wantAddr timelock.Address
	}{
		"default decoding": {
			enc:      addr.String(),
			wantAddr: addr,
		},
		"hex decoding": {
			enc:      "hex:" + addr.String(),
			wantAddr: addr,
		},
		"bech32 decoding": {
			enc:      "bech32:" + b32,
			wantAddr: addr,
		},
		"cond decoding": {
			enc:      "cond:foo/bar/636f6e646974696f6e64617461",
			wantAddr: timelock.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			enc:     "cond:foo/636f6e646974696f6e64617461",
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			enc:     "cond:foo/bar/zzzzz",
			wantErr: errors.ErrInput,
		},
		"short hex": {
			enc:     "hex:6865782d61646472",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "foobar:xxx",
			wantErr: errors.ErrType,
		},
		"zero address": {
			enc:      "",
			wantAddr: nil,
		},
		"zero hex address": {
			enc:      "hex:",
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := timelock.ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			assert.Equal(t, tc.wantAddr, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := timelock.NewAddress([]byte("bob"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got timelock.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	err = json.Unmarshal([]byte(`"foobar:xxx"`), &got)
	assert.True(t, errors.ErrType.Is(err))
}

func TestAddressFlag(t *testing.T) {
	var a timelock.Address
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.Var(&a, "beneficiary", "")

	want := timelock.NewAddress([]byte("carol"))
	require.NoError(t, fl.Parse([]string{"-beneficiary", want.String()}))
	assert.Equal(t, want, a)
}

func TestConditionAddressIsStable(t *testing.T) {
	c := timelock.NewCondition("escrow", "custody", []byte("timelock"))
	require.NoError(t, c.Validate())
	assert.Equal(t, c.Address(), c.Address())
	assert.Len(t, c.Address(), timelock.AddressLength)
	assert.NotEqual(t, c.Address(), timelock.NewCondition("escrow", "custody", []byte("other")).Address())
}
