package primitives

import "testing"

func TestParseHash32Hex(t *testing.T) {
	valid := "0011223344556677889900112233445566778899001122334455667788990011"

	t.Run("valid 32 bytes", func(t *testing.T) {
		h, err := ParseHash32Hex("hash", valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(h.Bytes()) != 32 {
			t.Fatalf("expected 32 bytes, got %d", len(h.Bytes()))
		}
	})

	t.Run("wrong length is fatal", func(t *testing.T) {
		if _, err := ParseHash32Hex("hash", "AABB"); err == nil {
			t.Fatal("expected error for short hash")
		}
	})

	t.Run("odd hex length is fatal", func(t *testing.T) {
		if _, err := ParseHash32Hex("hash", valid[:63]); err == nil {
			t.Fatal("expected error for odd-length hex")
		}
	})
}
