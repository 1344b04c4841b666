package lib

import "testing"

func TestFindFirstSet64(t *testing.T) {
	if x := Bit64(0).Findfirstset(); x != -1 {
		t.Errorf("expected %v, got %v", -1, x)
	} else if x = Bit64(0x8000000000000000).Findfirstset(); x != 63 {
		t.Errorf("expected %v, got %v", 63, x)
	} else if x = Bit64(0x10).Findfirstset(); x != 4 {
		t.Errorf("expected %v, got %v", 4, x)
	}
}

func TestFindFirstClear64(t *testing.T) {
	if x := Bit64(0xffffffffffffffff).Findfirstclear(); x != -1 {
		t.Errorf("expected %v, got %v", -1, x)
	} else if x = Bit64(0).Findfirstclear(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x = Bit64(0xff).Findfirstclear(); x != 8 {
		t.Errorf("expected %v, got %v", 8, x)
	}
}

func TestClearbit64(t *testing.T) {
	for i := uint8(0); i < 64; i++ {
		if x := (Bit64(1) << i).Clearbit(i); x != 0 {
			t.Errorf("expected %v, got %v", 0, x)
		}
	}
}

func TestSetbit64(t *testing.T) {
	for i := uint8(0); i < 64; i++ {
		if x := Bit64(0).Setbit(i); x != (Bit64(1) << i) {
			t.Errorf("expected %v, got %v", Bit64(1)<<i, x)
		} else if x.Isset(i) == false {
			t.Errorf("expected bit %v to be set", i)
		}
	}
}

func TestZerosin64(t *testing.T) {
	if x := Bit64(0).Zeros(); x != 64 {
		t.Errorf("expected %v, got %v", 64, x)
	} else if x = Bit64(0xaaaaaaaaaaaaaaaa).Zeros(); x != 32 {
		t.Errorf("expected %v, got %v", 32, x)
	} else if x = Bit64(0x5555555555555555).Ones(); x != 32 {
		t.Errorf("expected %v, got %v", 32, x)
	}
}

func BenchmarkFindFSet64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Bit64(0x8000000000000000).Findfirstset()
	}
}

func BenchmarkClearbit64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Bit64(0x8000000000000000).Clearbit(63)
	}
}

func BenchmarkSetbit64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Bit64(0x80).Setbit(63)
	}
}
