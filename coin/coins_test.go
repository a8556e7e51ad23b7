package coin

import (
	"testing"

	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(5, "XYZ"),
		NewCoin(10, "ABC"),
		NewCoin(0, "DEF"),
		NewCoin(3, "XYZ"),
	)
	assert.Nil(t, err)
	assert.Nil(t, cs.Validate())
	assert.Equal(t, 2, cs.Count())
	assert.Equal(t, uint64(10), cs.Balance("ABC"))
	assert.Equal(t, uint64(8), cs.Balance("XYZ"))
	assert.Equal(t, uint64(0), cs.Balance("DEF"))
	assert.Equal(t, "[10 ABC, 8 XYZ]", cs.String())

	_, err = CombineCoins(NewCoin(1, "bad"))
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestCoinsSubtract(t *testing.T) {
	base, err := CombineCoins(NewCoin(10, "ABC"), NewCoin(5, "XYZ"))
	assert.Nil(t, err)

	cases := map[string]struct {
		sub     Coin
		want    Coins
		wantErr *errors.Error
	}{
		"partial": {
			sub:  NewCoin(4, "ABC"),
			want: Coins{NewCoinp(6, "ABC"), NewCoinp(5, "XYZ")},
		},
		"whole asset is removed": {
			sub:  NewCoin(5, "XYZ"),
			want: Coins{NewCoinp(10, "ABC")},
		},
		"zero is noop": {
			sub:  NewCoin(0, "DEF"),
			want: Coins{NewCoinp(10, "ABC"), NewCoinp(5, "XYZ")},
		},
		"missing asset": {
			sub:     NewCoin(1, "DEF"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"not enough": {
			sub:     NewCoin(11, "ABC"),
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := base.Subtract(tc.sub)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				if !tc.want.Equals(got) {
					t.Fatalf("want %s, got %s", tc.want, got)
				}
			}
			// receiver is never modified
			assert.Equal(t, uint64(10), base.Balance("ABC"))
			assert.Equal(t, uint64(5), base.Balance("XYZ"))
		})
	}
}

func TestCoinsContains(t *testing.T) {
	cs, err := CombineCoins(NewCoin(10, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, true, cs.Contains(NewCoin(10, "ABC")))
	assert.Equal(t, false, cs.Contains(NewCoin(11, "ABC")))
	assert.Equal(t, false, cs.Contains(NewCoin(1, "XYZ")))
	assert.Equal(t, true, cs.Contains(NewCoin(0, "XYZ")))
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":    {coins: nil},
		"sorted":   {coins: Coins{NewCoinp(1, "ABC"), NewCoinp(2, "XYZ")}},
		"unsorted": {coins: Coins{NewCoinp(2, "XYZ"), NewCoinp(1, "ABC")}, wantErr: errors.ErrState},
		"dup":      {coins: Coins{NewCoinp(1, "ABC"), NewCoinp(2, "ABC")}, wantErr: errors.ErrState},
		"zero":     {coins: Coins{NewCoinp(0, "ABC")}, wantErr: errors.ErrAmount},
		"nil coin": {coins: Coins{nil}, wantErr: errors.ErrEmpty},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.coins.Validate())
		})
	}
}
