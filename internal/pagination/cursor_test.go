package pagination

import (
	"testing"
	"time"

	apperr "github.com/noelps-git/tastemates/pkg/errors"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Cursor{CreatedNano: 1724900000123456789, MessageID: 42}

	token, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if out != in {
		t.Errorf("Decode() = %+v, want %+v", out, in)
	}
}

func TestFromTimeKeepsFullPrecision(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 30, 15, 869202172, time.UTC)

	token, err := Encode(FromTime(ts, 7))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !out.Time().Equal(ts) {
		t.Errorf("Time() = %v, want %v", out.Time(), ts)
	}
	if out.MessageID != 7 {
		t.Errorf("MessageID = %d, want 7", out.MessageID)
	}
}

func TestDecode_EmptyToken(t *testing.T) {
	c, err := Decode("")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if c != (Cursor{}) {
		t.Errorf("Decode(\"\") = %+v, want zero cursor", c)
	}
}

func TestDecode_BareMillis(t *testing.T) {
	c, err := Decode("1724900000123")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if c.CreatedNano != 1724900000123*int64(time.Millisecond) || c.MessageID != 0 {
		t.Errorf("Decode() = %+v, want bare-millis timestamp only", c)
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode("!!not-a-cursor!!")
	if err == nil {
		t.Fatal("Decode() expected error for garbage token")
	}
	appErr := apperr.As(err)
	if appErr == nil || appErr.Code != apperr.ErrCodeValidation {
		t.Errorf("Decode() error = %v, want %s", err, apperr.ErrCodeValidation)
	}
}
