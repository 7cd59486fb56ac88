package primitives

import "testing"

func TestParseBigInt(t *testing.T) {
	t.Run("parses large decimal strings without overflow", func(t *testing.T) {
		n, err := ParseBigInt("field", "18446744073709551616") // 2^64
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "18446744073709551616" {
			t.Fatalf("got %s", n.String())
		}
	})

	t.Run("empty string is fatal", func(t *testing.T) {
		if _, err := ParseBigInt("field", ""); err == nil {
			t.Fatal("expected error for empty string")
		}
	})

	t.Run("non-numeric is fatal", func(t *testing.T) {
		if _, err := ParseBigInt("field", "abc"); err == nil {
			t.Fatal("expected error for non-numeric string")
		}
	})
}

func TestParseMinInt(t *testing.T) {
	t.Run("accepts value at the minimum", func(t *testing.T) {
		if _, err := ParseMinInt("power", "1", 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects value below the minimum", func(t *testing.T) {
		if _, err := ParseMinInt("power", "0", 1); err == nil {
			t.Fatal("expected error for value below minimum")
		}
	})
}

func TestParseNonNegativeInt(t *testing.T) {
	t.Run("rejects negative", func(t *testing.T) {
		if _, err := ParseNonNegativeInt("round", "-1"); err == nil {
			t.Fatal("expected error for negative value")
		}
	})

	t.Run("accepts zero", func(t *testing.T) {
		n, err := ParseNonNegativeInt("round", "0")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.Sign() != 0 {
			t.Fatalf("expected zero, got %s", n.String())
		}
	})
}
