package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxAmountString = "340282366920938463463374607431768211455"

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    string
		wantErr *errors.Error
	}{
		"zero":              {raw: "0", want: "0"},
		"small":             {raw: "1000000", want: "1000000"},
		"leading zeros":     {raw: "007", want: "7"},
		"maximum":           {raw: maxAmountString, want: maxAmountString},
		"above maximum":     {raw: "340282366920938463463374607431768211456", wantErr: errors.ErrOverflow},
		"negative":          {raw: "-1", wantErr: errors.ErrAmount},
		"explicit positive": {raw: "+1", wantErr: errors.ErrAmount},
		"empty":             {raw: "", wantErr: errors.ErrAmount},
		"fraction":          {raw: "1.5", wantErr: errors.ErrAmount},
		"hex":               {raw: "0x10", wantErr: errors.ErrAmount},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a, err := ParseAmount(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, a.String())
			}
		})
	}
}

func TestMaxAmount(t *testing.T) {
	assert.Equal(t, maxAmountString, MaxAmount().String())
	require.NoError(t, MaxAmount().Validate())

	_, err := MaxAmount().Add(NewAmount(1))
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestAmountArithmetic(t *testing.T) {
	sum, err := NewAmount(40).Add(NewAmount(2))
	require.NoError(t, err)
	assert.True(t, sum.Equals(NewAmount(42)))

	diff, err := sum.Sub(NewAmount(42))
	require.NoError(t, err)
	assert.True(t, diff.IsZero())

	_, err = NewAmount(1).Sub(NewAmount(2))
	assert.True(t, errors.ErrOverflow.Is(err))

	assert.Equal(t, -1, NewAmount(1).Cmp(NewAmount(2)))
	assert.Equal(t, 0, NewAmount(2).Cmp(NewAmount(2)))
	assert.Equal(t, 1, MaxAmount().Cmp(NewAmount(2)))
}

func TestAmountJSON(t *testing.T) {
	raw, err := json.Marshal(map[string]Amount{"alice": MaxAmount()})
	require.NoError(t, err)
	assert.Equal(t, `{"alice":"`+maxAmountString+`"}`, string(raw))

	var got map[string]Amount
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, got["alice"].Equals(MaxAmount()))

	var a Amount
	assert.True(t, errors.ErrAmount.Is(json.Unmarshal([]byte(`1000`), &a)), "numbers must be strings")
	assert.True(t, errors.ErrOverflow.Is(json.Unmarshal([]byte(`"`+maxAmountString+`0"`), &a)))
}
