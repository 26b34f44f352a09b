package ticket

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	_ "image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func mockEncoderSuccess(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
	return []byte("qr:" + content), nil
}

func mockEncoderFailure(content string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
	return nil, errors.New("QR code generation failed")
}

func testIdentity() Identity {
	return Identity{
		ClubID:   "c1",
		EventID:  "e1",
		UserID:   "u1",
		FullName: "Ada Lovelace",
	}
}

func TestEncode_RendersPNG(t *testing.T) {
	t.Parallel()

	tk, err := Encode(testIdentity())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(tk.PNG, pngSignature), "ticket image should be a png")
	assert.True(t, strings.HasPrefix(tk.DataURL(), "data:image/png;base64,"))

	png, err := PNGFromDataURL(tk.DataURL())
	require.NoError(t, err)
	assert.Equal(t, tk.PNG, png)
}

func TestEncode_PayloadShape(t *testing.T) {
	t.Parallel()

	enc := NewEncoderWith(mockEncoderSuccess, 64)

	tk, err := enc.Encode(testIdentity())
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"club_id":"c1","event_id":"e1","user_id":"u1","fullname":"Ada Lovelace","is_used":false}`,
		string(tk.JSON),
	)
	assert.Equal(t, "qr:"+string(tk.JSON), string(tk.PNG))
	assert.False(t, tk.Payload.IsUsed)
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	identities := []Identity{
		testIdentity(),
		{ClubID: "club-42", EventID: "9f1c", UserID: "user-7", FullName: "Zoë \"Z\" O'Neil"},
		{ClubID: "1", EventID: "2", UserID: "3", FullName: "名前"},
	}

	enc := NewEncoderWith(mockEncoderSuccess, 64)

	for _, id := range identities {
		tk, err := enc.Encode(id)
		require.NoError(t, err)

		res := Decode(string(tk.JSON))
		require.Equal(t, KindValid, res.Kind)
		assert.Equal(t, Payload{
			ClubID:   id.ClubID,
			EventID:  id.EventID,
			UserID:   id.UserID,
			FullName: id.FullName,
			IsUsed:   false,
		}, res.Payload)
		assert.Empty(t, res.Missing)
	}
}

func readQR(t *testing.T, png []byte) string {
	t.Helper()

	img, _, err := image.Decode(bytes.NewReader(png))
	require.NoError(t, err)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)

	res, err := zxingqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)

	return res.GetText()
}

func TestEncode_ImageScansToPayload(t *testing.T) {
	t.Parallel()

	identities := []Identity{
		testIdentity(),
		{ClubID: "club-42", EventID: "9f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b", UserID: "user-7", FullName: `Zoe "Z" O'Neil`},
	}

	for _, id := range identities {
		tk, err := Encode(id)
		require.NoError(t, err)

		text := readQR(t, tk.PNG)
		assert.Equal(t, string(tk.JSON), text)

		res := Decode(text)
		require.Equal(t, KindValid, res.Kind)
		assert.Equal(t, id.UserID, res.Payload.UserID)
		assert.Equal(t, id.FullName, res.Payload.FullName)
		assert.False(t, res.Payload.IsUsed)
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	t.Run("Renderer fails", func(t *testing.T) {
		t.Parallel()

		tk, err := NewEncoderWith(mockEncoderFailure, 64).Encode(testIdentity())
		assert.Error(t, err)
		assert.Nil(t, tk)
		assert.Contains(t, err.Error(), "QR code generation failed")
	})

	t.Run("Incomplete identity", func(t *testing.T) {
		t.Parallel()

		id := testIdentity()
		id.FullName = ""

		tk, err := NewEncoderWith(mockEncoderSuccess, 64).Encode(id)
		assert.ErrorIs(t, err, ErrInvalidIdentity)
		assert.Nil(t, tk)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		raw             string
		expectedKind    Kind
		expectedMissing []string
		check           func(t *testing.T, res ScanResult)
	}{
		{
			name:         "Valid ticket",
			raw:          `{"club_id":"c1","event_id":"e1","user_id":"u1","fullname":"Ada","is_used":false}`,
			expectedKind: KindValid,
			check: func(t *testing.T, res ScanResult) {
				assert.Equal(t, "Ada", res.Payload.FullName)
			},
		},
		{
			name:         "Not JSON at all",
			raw:          "not-json-at-all",
			expectedKind: KindUnparseable,
			check: func(t *testing.T, res ScanResult) {
				assert.Equal(t, "not-json-at-all", res.Raw)
				assert.Equal(t, NotAvailable, res.Diagnostics()[FieldClubID])
			},
		},
		{
			name:         "JSON scalar",
			raw:          `"just a string"`,
			expectedKind: KindUnparseable,
		},
		{
			name:         "JSON null",
			raw:          `null`,
			expectedKind: KindUnparseable,
		},
		{
			name:            "Missing fields",
			raw:             `{"user_id":"u1","event_id":"e1"}`,
			expectedKind:    KindMissingFields,
			expectedMissing: []string{FieldClubID, FieldFullName, FieldIsUsed},
			check: func(t *testing.T, res ScanResult) {
				diag := res.Diagnostics()
				assert.Equal(t, "u1", diag[FieldUserID])
				assert.Equal(t, "e1", diag[FieldEventID])
				assert.Equal(t, NotAvailable, diag[FieldClubID])
				assert.Equal(t, NotAvailable, diag[FieldIsUsed])
			},
		},
		{
			name:         "Numeric ids",
			raw:          `{"club_id":7,"event_id":8,"user_id":9,"fullname":"N","is_used":true}`,
			expectedKind: KindValid,
			check: func(t *testing.T, res ScanResult) {
				assert.Equal(t, "7", res.Payload.ClubID)
				assert.True(t, res.Payload.IsUsed)
			},
		},
		{
			name:            "Null and empty fields count as missing",
			raw:             `{"club_id":null,"event_id":"","user_id":"u1","fullname":"N","is_used":"no"}`,
			expectedKind:    KindMissingFields,
			expectedMissing: []string{FieldClubID, FieldEventID, FieldIsUsed},
		},
		{
			name:         "Surrounding whitespace",
			raw:          "  {\"club_id\":\"c\",\"event_id\":\"e\",\"user_id\":\"u\",\"fullname\":\"f\",\"is_used\":false}\n",
			expectedKind: KindValid,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var res ScanResult
			assert.NotPanics(t, func() { res = Decode(tc.raw) })

			assert.Equal(t, tc.expectedKind, res.Kind)
			assert.Equal(t, tc.raw, res.Raw)
			if tc.expectedMissing != nil {
				assert.Equal(t, tc.expectedMissing, res.Missing)
			}
			if tc.check != nil {
				tc.check(t, res)
			}
		})
	}
}

func TestScanResult_MarshalsKind(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Decode("raw-id"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"unparseable"`)
}

func TestPNGFromDataURL_Rejects(t *testing.T) {
	t.Parallel()

	_, err := PNGFromDataURL("data:image/jpeg;base64,AAAA")
	assert.Error(t, err)

	_, err = PNGFromDataURL("")
	assert.Error(t, err)
}
