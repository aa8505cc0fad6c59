package rscode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var vectors = []struct {
	id   uint64
	body string
}{
	{0, "2222-2222-2222-22222"},
	{1, "2223-2222-KB8Y-22222"},
	{399812073269533888, "B982-YTG4-ZS2F-2C55D"},
	{1234567890123456789, "M2AP-YKYY-P84J-3JJA4"},
	{1 << 60, "2222-2222-SWSN-32222"},
	{1<<63 - 1, "ZZZZ-ZZZZ-A7Y2-9ZZZZ"},
	{1 << 63, "2222-2222-YVYK-A2222"},
	{^uint64(0), "ZZZZ-ZZZZ-QY2K-HZZZZ"},
}

func TestEncode(t *testing.T) {
	for _, v := range vectors {
		assert.Equal(t, v.body, Encode(v.id), "id %d", v.id)
	}
}

func TestDecode(t *testing.T) {
	for _, v := range vectors {
		got, err := Decode(v.body)
		require.NoError(t, err, v.body)
		assert.Equal(t, v.id, got)
	}
}

func TestRoundTrip(t *testing.T) {
	id := uint64(1)
	for i := 0; i < 64; i++ {
		for _, v := range []uint64{id, id - 1, id + 1, ^id} {
			got, err := Decode(Encode(v))
			require.NoError(t, err)
			require.Equal(t, v, got)
		}
		id <<= 1
	}
}

func TestFromID(t *testing.T) {
	cw := FromID(399812073269533888)
	assert.Equal(t, []byte{0, 6, 7, 9, 2, 14, 25, 30, 10, 3, 3, 11, 0}, cw[:DataLength])
	assert.True(t, cw.Valid())
}

func TestCodeword_Valid(t *testing.T) {
	cw := FromID(399812073269533888)
	require.True(t, cw.Valid())

	for i := range cw {
		bad := cw
		bad[i] ^= 1
		assert.False(t, bad.Valid(), "flip at %d", i)
	}

	assert.True(t, Codeword{}.Valid())
}

func TestParse_Lenient(t *testing.T) {
	inputs := []string{
		"B982-YTG4-ZS2F-2C55D",
		"B982YTG4ZS2F2C55D",
		" B982 YTG4 ZS2F 2C55D\n",
		"B982_YTG4.ZS2F/2C55D",
	}
	for _, s := range inputs {
		id, err := Decode(s)
		require.NoError(t, err, s)
		assert.Equal(t, uint64(399812073269533888), id)
	}
}

func TestParse_TooLong(t *testing.T) {
	for _, s := range []string{"B982-YTG4-ZS2F-2C55DX", "B982-YTG4-ZS2F-2C55D-2222"} {
		_, err := Decode(s)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCodewordTooLong)

		var cerr *CodewordError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, Length+1, cerr.Symbols)
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"B982-YTG4-ZS2F-2C55",
		"b982-ytg4-zs2f-2c55d",
		"B982-YTG4-ZS2F-2C55E",
		"0000-1111-IIII-OOOOO",
	}
	for _, s := range inputs {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrCodewordInvalid, s)
		assert.NotErrorIs(t, err, ErrCodewordTooLong, s)
	}
}

func TestParse_SingleSubstitution(t *testing.T) {
	for _, v := range vectors {
		body := []byte(v.body)
		for i, c := range body {
			if c == '-' {
				continue
			}
			for j := 0; j < len(Alphabet); j++ {
				if Alphabet[j] == c {
					continue
				}
				corrupt := append([]byte(nil), body...)
				corrupt[i] = Alphabet[j]
				_, err := Decode(string(corrupt))
				if !errors.Is(err, ErrCodewordInvalid) {
					t.Fatalf("Decode(%q) = %v, want ErrCodewordInvalid", corrupt, err)
				}
			}
		}
	}
}

func TestDecode_Overflow(t *testing.T) {
	// 2^64 and 32^13-1 carry valid parity but do not fit in a uint64.
	for _, s := range []string{"2222-2222-TMT9-J2222", "ZZZZ-ZZZZ-HFTQ-ZZZZZ"} {
		cw, err := Parse(s)
		require.NoError(t, err)
		assert.True(t, cw.Valid())

		_, err = Decode(s)
		assert.ErrorIs(t, err, ErrOverflow)
	}
}

func TestConcurrentUse(t *testing.T) {
	var g errgroup.Group
	for w := 0; w < 8; w++ {
		w := uint64(w)
		g.Go(func() error {
			for i := uint64(0); i < 1000; i++ {
				id := i*0x9E3779B97F4A7C15 + w
				got, err := Decode(Encode(id))
				if err != nil {
					return err
				}
				if got != id {
					return errors.New("round trip mismatch")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Encode(399812073269533888)
	}
}

func BenchmarkDecode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Decode("B982-YTG4-ZS2F-2C55D")
	}
}
