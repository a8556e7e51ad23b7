package barter_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("address printing", t, func() {
		addr := barter.Address([]byte("ABCD123456LHB"))
		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		So(barter.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("condition printing", t, func() {
		cond := barter.NewCondition("abc", "xyz", []byte{0xCA, 0xFE})
		So(cond.String(), ShouldEqual, "abc/xyz/CAFE")
	})

	Convey("escrow authority printing", t, func() {
		cond := barter.NewCondition("escrow", "pda", []byte("seed"))

		Convey("the address is the hash of the condition", func() {
			So(cond.Address(), ShouldResemble, cond.Address())
			So(cond.Address().Validate(), ShouldBeNil)
			So(len(cond.Address()), ShouldEqual, barter.AddressLength)
		})

		Convey("JSON keeps the printed form", func() {
			raw, err := json.Marshal(cond)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, fmt.Sprintf("%q", cond.String()))

			var addr barter.Address
			So(json.Unmarshal([]byte(`"cond:`+cond.String()+`"`), &addr), ShouldBeNil)
			So(addr.Equals(cond.Address()), ShouldBeTrue)
		})
	})
}

func TestConditionParse(t *testing.T) {
	cond := barter.NewCondition("escrow", "pda", []byte("some data"))
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "escrow", ext)
	assert.Equal(t, "pda", typ)
	assert.Equal(t, []byte("some data"), data)

	_, _, _, err = barter.Condition("no-slashes").Parse()
	if !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	hexAddr := barter.NewAddress([]byte("hex-addr"))
	bechAddr, err := hexAddr.Bech32("tbar")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr barter.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf("%q", hexAddr.String()),
			wantAddr: hexAddr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, hexAddr.String()),
			wantAddr: hexAddr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: barter.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, bechAddr),
			wantAddr: hexAddr,
		},
		"address too short": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			json:    `"bech32:tbar1qqqq"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a barter.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionJSONRoundtrip(t *testing.T) {
	cond := barter.NewCondition("sigs", "ed25519", []byte{1, 2, 3, 4})
	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, `"sigs/ed25519/01020304"`, string(raw))

	var got barter.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, got.Equals(cond))
}

func TestAddressClone(t *testing.T) {
	addr := barter.NewAddress([]byte("foo"))
	cpy := addr.Clone()
	assert.True(t, addr.Equals(cpy))
	cpy[0]++
	assert.False(t, addr.Equals(cpy))
	assert.Nil(t, barter.Address(nil).Clone())
}
