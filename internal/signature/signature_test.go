package signature_test

import (
	"encoding/hex"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/shoppay/internal/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		secret := gofakeit.Password(true, true, true, true, false, 32)
		message := []byte(gofakeit.LetterN(uint(gofakeit.Number(1, 256))))

		ok, err := signature.Verify(secret, message, signature.Sign(secret, message))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyRejectsEverySingleByteMutation(t *testing.T) {
	secret := "whsec_" + gofakeit.LetterN(24)
	message := []byte(`{"event":"payment.captured"}`)

	sig := signature.Sign(secret, message)
	raw, err := hex.DecodeString(sig)
	require.NoError(t, err)

	for i := range raw {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0x01

		ok, err := signature.Verify(secret, message, hex.EncodeToString(mutated))
		require.NoError(t, err)
		assert.False(t, ok, "mutation at byte %d accepted", i)
	}

	// mutate the hex text itself as well
	for i := range sig {
		b := []byte(sig)
		if b[i] == 'a' {
			b[i] = 'b'
		} else {
			b[i] = 'a'
		}

		ok, err := signature.Verify(secret, message, string(b))
		require.NoError(t, err)
		assert.False(t, ok, "mutation at char %d accepted", i)
	}
}

func TestVerify(t *testing.T) {
	secret := "key_secret"
	message := []byte("order_1|pay_1")
	valid := signature.Sign(secret, message)

	tests := []struct {
		name      string
		secret    string
		message   []byte
		signature string
		want      bool
		wantError error
	}{
		{name: "valid: ok", secret: secret, message: message, signature: valid, want: true},
		{name: "upper case hex: ok", secret: secret, message: message, signature: upper(valid), want: true},
		{name: "other message: false", secret: secret, message: []byte("order_1|pay_2"), signature: valid},
		{name: "other secret: false", secret: "other", message: message, signature: valid},
		{name: "not hex: false", secret: secret, message: message, signature: "zz"},
		{name: "truncated: false", secret: secret, message: message, signature: valid[:32]},
		{name: "empty signature: false", secret: secret, message: message, signature: ""},
		{name: "missing secret: error", secret: "", message: message, signature: valid, wantError: signature.ErrMissingSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := signature.Verify(tt.secret, tt.message, tt.signature)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerifyPayment(t *testing.T) {
	secret := "rzp_secret"
	sig := signature.Sign(secret, []byte("order_ABC|pay_XYZ"))

	ok, err := signature.VerifyPayment(secret, "order_ABC", "pay_XYZ", sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = signature.VerifyPayment(secret, "order_XYZ", "pay_ABC", sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWebhookUsesRawBytes(t *testing.T) {
	secret := "whsec"
	body := []byte(`{"event": "payment.captured",  "payload": {}}`)
	sig := signature.Sign(secret, body)

	ok, err := signature.VerifyWebhook(secret, body, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	// same JSON, different whitespace
	ok, err = signature.VerifyWebhook(secret, []byte(`{"event":"payment.captured","payload":{}}`), sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
