package coin

import (
	"math"
	"testing"

	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same ticker": {
			a:    NewCoin(100, "ABC"),
			b:    NewCoin(50, "ABC"),
			want: NewCoin(150, "ABC"),
		},
		"zero without ticker is ignored": {
			a:    Coin{},
			b:    NewCoin(7, "ABC"),
			want: NewCoin(7, "ABC"),
		},
		"different tickers": {
			a:       NewCoin(1, "ABC"),
			b:       NewCoin(1, "XYZ"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxUint64, "ABC"),
			b:       NewCoin(1, "ABC"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"enough": {
			a:    NewCoin(100, "ABC"),
			b:    NewCoin(40, "ABC"),
			want: NewCoin(60, "ABC"),
		},
		"everything": {
			a:    NewCoin(100, "ABC"),
			b:    NewCoin(100, "ABC"),
			want: NewCoin(0, "ABC"),
		},
		"too much": {
			a:       NewCoin(10, "ABC"),
			b:       NewCoin(11, "ABC"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"different tickers": {
			a:       NewCoin(10, "ABC"),
			b:       NewCoin(1, "XYZ"),
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Subtract(tc.b)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid":            {coin: NewCoin(1, "ABC")},
		"zero is valid":    {coin: NewCoin(0, "ABCD")},
		"lower case":       {coin: NewCoin(1, "abc"), wantErr: errors.ErrCurrency},
		"too long ticker":  {coin: NewCoin(1, "ABCDE"), wantErr: errors.ErrCurrency},
		"missing ticker":   {coin: NewCoin(1, ""), wantErr: errors.ErrCurrency},
		"ticker with nums": {coin: NewCoin(1, "AB1"), wantErr: errors.ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.coin.Validate())
		})
	}
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    Coin
		wantErr *errors.Error
	}{
		"valid":          {input: "100 ABC", want: NewCoin(100, "ABC")},
		"extra spaces":   {input: "  7   XYZ ", want: NewCoin(7, "XYZ")},
		"missing ticker": {input: "100", wantErr: errors.ErrInput},
		"negative":       {input: "-1 ABC", wantErr: errors.ErrAmount},
		"fraction":       {input: "1.5 ABC", wantErr: errors.ErrAmount},
		"bad ticker":     {input: "1 abc", wantErr: errors.ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.input)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
				assert.Equal(t, tc.want.Human(), got.Human())
			}
		})
	}
}
